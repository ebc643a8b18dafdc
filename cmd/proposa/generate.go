package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/editor"
)

type generateOptions struct {
	documentFlag
	prompt string
}

func newGenerateCmd(app *appContext) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <document-id> <block-id> <field-key>",
		Short: "Fill a text field with generated prose",
		Long: `Fill a text field with generated prose.

The prompt is sent to the configured text generation service and the reply
replaces the field's value. When no API key is configured, or the service
fails, the field receives an explanatory message instead.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.prompt) == "" {
				return newCommandError("generate text", "reading prompt", errors.New("prompt is empty"), "Pass --prompt \"...\".")
			}
			var text string
			err := editDocument(cmd, app, "generate text", args[0], opts.template, func(s *editor.Session) error {
				var err error
				text, err = s.Generate(cmd.Context(), args[1], args[2], opts.prompt)
				if err != nil {
					return newCommandError("generate text", fmt.Sprintf("filling %s", args[2]), err, "Run 'proposa block fields "+args[0]+" "+args[1]+"' to see the text fields.")
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	opts.documentFlag.register(cmd)
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "What to write about")

	return cmd
}
