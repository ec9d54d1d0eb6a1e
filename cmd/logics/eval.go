package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/logics/pkg/logics"
)

type evalOptions struct {
	json bool
	ast  bool
}

func newEvalCmd(a *app) *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval EXPR|FILE",
		Short: "Evaluate an expression and print its result",
		Long: `Evaluate an expression and print the repr of its result.

The argument is read as a file if one exists at that path, and is used as
the expression otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(cmd, opts, source(args[0]))
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.ast, "ast", false, "print the syntax tree instead of evaluating")
	return cmd
}

func (a *app) eval(cmd *cobra.Command, opts *evalOptions, src string) error {
	prog, err := logics.Compile(src, a.programOptions()...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.ast {
		if root := prog.Root(); root != nil {
			return root.Dump(out)
		}
		return nil
	}

	vars, err := a.variables()
	if err != nil {
		return err
	}
	v, ok, err := prog.Run(cmd.Context(), vars)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if opts.json {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err = fmt.Fprintln(out, v.Repr())
	return err
}
