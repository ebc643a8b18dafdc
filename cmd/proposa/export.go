package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/render"
)

func newExportCmd(app *appContext) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "export <document-id>",
		Short: "Export a proposal or template as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := renderPage(cmd, app, "export document", args[0], opts)
			if err != nil {
				return err
			}
			markdown, err := render.Markdown(page)
			if err != nil {
				return newCommandError("export document", "converting to Markdown", err, "Try 'proposa render' to inspect the HTML.")
			}
			return writeOutput(cmd, "export document", opts.output, []byte(markdown))
		},
	}
	opts.register(cmd)

	return cmd
}
