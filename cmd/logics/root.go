package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/logics/pkg/logics"
	"github.com/randalmurphal/logics/pkg/logics/config"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

// app holds state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	vars       []string
	useEnv     bool

	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "logics",
		Short:        "Evaluate Logics expressions and render templates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "settings file (.yaml, .yml or .json)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides the settings file")
	flags.StringArrayVarP(&a.vars, "var", "v", nil, "bind a variable as name=value; a .json or .yaml file value is loaded")
	flags.BoolVarP(&a.useEnv, "env", "e", false, "bind the process environment as variables")

	cmd.AddCommand(newEvalCmd(a), newRenderCmd(a), newReplCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.settings = config.Default()
	if a.configPath != "" {
		s, err := config.FromFile(a.configPath)
		if err != nil {
			return err
		}
		a.settings = s
	}
	if a.logLevel != "" {
		a.settings.LogLevel = a.logLevel
		if err := a.settings.Validate(); err != nil {
			return err
		}
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: a.settings.SlogLevel(),
	}))
	return nil
}

func (a *app) programOptions() []logics.Option {
	return []logics.Option{
		logics.WithSettings(a.settings),
		logics.WithLogger(a.logger),
		logics.WithName("cli"),
	}
}

// variables collects the bindings given on the command line. The process
// environment comes first so that -v can override it.
func (a *app) variables() (map[string]any, error) {
	vars := make(map[string]any)
	if a.useEnv {
		for _, kv := range os.Environ() {
			if name, val, ok := strings.Cut(kv, "="); ok {
				vars[name] = val
			}
		}
	}
	for _, arg := range a.vars {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q: want name=value", arg)
		}
		v, err := loadVariable(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		vars[name] = v
	}
	return vars, nil
}

// loadVariable decodes raw as a JSON or YAML file if it names one, and
// returns it as a plain string otherwise.
func loadVariable(raw string) (value.Value, error) {
	ext := strings.ToLower(filepath.Ext(raw))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return value.String(raw), nil
	}
	data, err := os.ReadFile(raw)
	if os.IsNotExist(err) {
		return value.String(raw), nil
	}
	if err != nil {
		return value.Null, err
	}
	if ext == ".json" {
		return value.FromJSON(data)
	}
	return value.FromYAML(data)
}

// source returns the contents of arg if it names a readable file, and arg
// itself otherwise.
func source(arg string) string {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		if data, err := os.ReadFile(arg); err == nil {
			return string(data)
		}
	}
	return arg
}
