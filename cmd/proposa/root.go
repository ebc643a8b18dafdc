package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath    string
	workspacePath string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(newAppContext(&rootFlags{}))
}

func newRootCmdFor(app *appContext) *cobra.Command {
	flags := app.flags

	cmd := &cobra.Command{
		Use:           "proposa",
		Short:         "Proposa builds, themes and shares client proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default ~/.proposa/config.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.workspacePath, "workspace", "w", "", "Workspace file (overrides the settings file)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newProposalCmd(app))
	cmd.AddCommand(newTemplateCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newClientCmd(app))
	cmd.AddCommand(newBlockCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newGenerateCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
