package main

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/logics/pkg/logics/template"
)

type renderOptions struct {
	open  string
	close string
	empty string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render TEMPLATE|FILE",
		Short: "Render a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, opts, source(args[0]))
		},
	}
	cmd.Flags().StringVar(&opts.open, "open", template.DefaultOpen, "opening tag delimiter")
	cmd.Flags().StringVar(&opts.close, "close", template.DefaultClose, "closing tag delimiter")
	cmd.Flags().StringVar(&opts.empty, "empty", "", "text rendered for None values")
	return cmd
}

func (a *app) render(cmd *cobra.Command, opts *renderOptions, src string) error {
	tpl, err := template.New(src,
		template.WithDelimiters(opts.open, opts.close),
		template.WithEmptyValue(opts.empty),
		template.WithProgramOptions(a.programOptions()...),
	)
	if err != nil {
		return err
	}

	// Templates render against an environment, so settings variables are
	// merged here instead of by each expression.
	vars := maps.Clone(a.settings.Vars)
	if vars == nil {
		vars = make(map[string]any)
	}
	given, err := a.variables()
	if err != nil {
		return err
	}
	maps.Copy(vars, given)

	out, err := tpl.Render(cmd.Context(), vars)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
