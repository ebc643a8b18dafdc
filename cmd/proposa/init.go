package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/config"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

type initOptions struct {
	seed  bool
	force bool
}

func newInitCmd(app *appContext) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the settings file and an empty or demo workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Fill the workspace with demo clients, templates and proposals")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite a workspace that already has content")

	return cmd
}

func runInit(cmd *cobra.Command, app *appContext, opts *initOptions) error {
	ctx, err := app.settings(cmd, "init")
	if err != nil {
		return err
	}

	path, _, err := app.configPath()
	if err != nil {
		return newCommandError("init", "determining settings path", err, "Ensure your HOME directory is set correctly.")
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if err := config.Save(path, *app.cfg); err != nil {
			return newCommandError("init", "writing settings", err, "Check that you can write to "+path+".")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote settings to %s\n", path)
	}

	if _, err := app.open(cmd, "init"); err != nil {
		return err
	}
	current := app.store.Snapshot()
	if !opts.force && (len(current.Proposals) > 0 || len(current.Templates) > 0 || len(current.Clients) > 0) {
		return newCommandError("init", "preparing workspace "+app.store.Path(), errors.New("workspace already has content"), "Pass --force to replace it.")
	}

	file := workspace.Empty()
	if opts.seed {
		if file, err = workspace.Seed(); err != nil {
			return newCommandError("init", "loading demo data", err, "This is a bug; please report it.")
		}
	}
	if err := app.store.Replace(file); err != nil {
		return newCommandError("init", "preparing workspace", err, "This is a bug; please report it.")
	}
	if err := app.save(ctx, "init"); err != nil {
		return err
	}

	app.log.Info(ctx, "workspace initialised", "path", app.store.Path(), "seed", opts.seed)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Workspace ready at %s\n", app.store.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "  %d clients, %d templates, %d proposals, %d themes\n",
		len(file.Clients), len(file.Templates), len(file.Proposals), len(file.Themes))
	return nil
}
