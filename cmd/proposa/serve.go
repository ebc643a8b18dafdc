package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/render"
	"github.com/alexisbeaulieu97/proposa/internal/server"
)

type serveOptions struct {
	addr    string
	noWatch bool
}

func newServeCmd(app *appContext) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve shared proposals and collect approvals",
		Long: `Serve shared proposals and collect approvals.

Clients open /p/<token> to read a proposal and sign it. Every visit counts
as a view. Drafts can be checked at /preview/proposal/<id> and
/preview/template/<id> without counting views.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (defaults to server.addr in the settings file)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the workspace when its file changes")

	return cmd
}

func runServe(cmd *cobra.Command, app *appContext, opts *serveOptions) error {
	ctx, err := app.open(cmd, "serve")
	if err != nil {
		return err
	}

	addr := app.cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	renderer, err := render.New(render.Options{Locale: app.cfg.Locale})
	if err != nil {
		return newCommandError("serve", "loading page templates", err, "Check the locale in the settings file.")
	}
	srv, err := server.New(server.Options{
		Addr:     addr,
		Store:    app.store,
		Renderer: renderer,
		Logger:   app.log,
		Currency: app.cfg.Currency,
		Watch:    app.cfg.Server.Watch && !opts.noWatch,
		Now:      app.now,
	})
	if err != nil {
		return newCommandError("serve", "creating server", err, "This is a bug; please report it.")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return newCommandError("serve", "listening on "+addr, err, "Pick a free address with --addr.")
	}
	return nil
}
