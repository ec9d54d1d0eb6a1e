package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/logics/pkg/logics"
)

const (
	historyFile = ".logics_history"
	prompt      = "logics> "
	replHelp    = `Enter an expression to evaluate it, or "name = expr" to bind a variable.
  :vars    show the bound variables
  :help    show this help
  :quit    exit (Ctrl+D works too)
`
)

// assignment matches "name = expr" but not "name == expr".
var assignment = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)?$`)

var errQuit = errors.New("quit")

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.newSession()
			if err != nil {
				return err
			}
			return s.loop(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// session keeps the bindings of an interactive session.
type session struct {
	opts []logics.Option
	env  *logics.Environment
}

func (a *app) newSession() (*session, error) {
	vars := maps.Clone(a.settings.Vars)
	if vars == nil {
		vars = make(map[string]any)
	}
	given, err := a.variables()
	if err != nil {
		return nil, err
	}
	maps.Copy(vars, given)

	env, err := logics.NewEnvironment(vars)
	if err != nil {
		return nil, err
	}
	return &session{opts: a.programOptions(), env: env}, nil
}

// handle processes one input line and returns what to print.
func (s *session) handle(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return "", nil
	case line == ":quit" || line == ":q":
		return "", errQuit
	case line == ":help":
		return replHelp, nil
	case line == ":vars":
		return s.env.Dict().Repr() + "\n", nil
	case strings.HasPrefix(line, ":"):
		return "", fmt.Errorf("unknown command %s, type :help", line)
	}

	if m := assignment.FindStringSubmatch(line); m != nil {
		name, expr := m[1], m[2]
		if strings.TrimSpace(expr) == "" {
			return "", fmt.Errorf("missing expression for %s", name)
		}
		prog, err := logics.Compile(expr, s.opts...)
		if err != nil {
			return "", err
		}
		v, _, err := prog.RunEnvironment(ctx, s.env)
		if err != nil {
			return "", err
		}
		s.env.Set(name, v)
		return "", nil
	}

	prog, err := logics.Compile(line, s.opts...)
	if err != nil {
		return "", err
	}
	v, ok, err := prog.RunEnvironment(ctx, s.env)
	if err != nil || !ok {
		return "", err
	}
	return v.Repr() + "\n", nil
}

func (s *session) loop(ctx context.Context, stdout, stderr io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprint(stdout, replHelp)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return nil
		}
		if err != nil {
			return err
		}

		out, err := s.handle(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		fmt.Fprint(stdout, out)
	}
}
