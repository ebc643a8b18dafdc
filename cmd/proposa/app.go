package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/assist"
	"github.com/alexisbeaulieu97/proposa/internal/config"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
	"github.com/alexisbeaulieu97/proposa/internal/logger"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

// appContext bundles the services a command needs. They are created lazily
// so that flags are parsed first.
type appContext struct {
	flags *rootFlags

	cfg   *config.Config
	store *workspace.Store
	log   *logger.Logger

	// backend overrides the text generation backend built from settings.
	backend assist.Backend
	now     func() time.Time
}

func newAppContext(flags *rootFlags) *appContext {
	return &appContext{flags: flags, now: func() time.Time { return time.Now().UTC() }}
}

func (a *appContext) configPath() (string, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", err
	}
	path := a.flags.configPath
	if path == "" {
		path = config.DefaultPath(home)
	}
	return config.ExpandHome(path, home), home, nil
}

// settings loads the settings file and the logger.
func (a *appContext) settings(cmd *cobra.Command, operation string) (context.Context, error) {
	if a.cfg == nil {
		path, home, err := a.configPath()
		if err != nil {
			return nil, newCommandError(operation, "determining settings path", err, "Ensure your HOME directory is set correctly.")
		}
		cfg, err := config.Load(path, home)
		if err != nil {
			return nil, newCommandError(operation, "loading settings", err, fmt.Sprintf("Fix %s or remove it to use the defaults.", path))
		}
		if a.flags.workspacePath != "" {
			cfg.Workspace = config.ExpandHome(a.flags.workspacePath, home)
		}
		a.cfg = cfg
	}

	if a.log == nil {
		level := a.cfg.Log.Level
		if a.flags.verbose {
			level = "debug"
		}
		log, err := logger.New(logger.Options{
			Level:         level,
			HumanReadable: a.cfg.Log.Human,
			Writer:        cmd.ErrOrStderr(),
			Component:     "command." + operation,
		})
		if err != nil {
			return nil, newCommandError(operation, "creating logger", err, "Use one of trace, debug, info, warn or error as log level.")
		}
		a.log = log
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithCorrelationID(ctx, logger.NewCorrelationID()), nil
}

// open loads settings and the workspace.
func (a *appContext) open(cmd *cobra.Command, operation string) (context.Context, error) {
	ctx, err := a.settings(cmd, operation)
	if err != nil {
		return nil, err
	}
	if a.store == nil {
		store, err := workspace.Open(a.cfg.Workspace)
		if err != nil {
			a.log.Error(ctx, "workspace load failed", "path", a.cfg.Workspace, "error", err)
			return nil, newCommandError(operation, fmt.Sprintf("loading workspace %s", a.cfg.Workspace), err, "Fix the workspace file or run 'proposa init' to create one.")
		}
		a.store = store
	}
	a.log.Debug(ctx, "workspace loaded", "path", a.cfg.Workspace)
	return ctx, nil
}

func (a *appContext) save(ctx context.Context, operation string) error {
	if err := a.store.Save(); err != nil {
		a.log.Error(ctx, "workspace save failed", "path", a.store.Path(), "error", err)
		return newCommandError(operation, "saving workspace", err, "Check disk space and file permissions, then retry.")
	}
	return nil
}

// assistant builds the text generator from settings.
func (a *appContext) assistant() *assist.Assistant {
	backend := a.backend
	if backend == nil {
		backend = assist.FromEnv(a.cfg.Assist.APIKeyEnv, assist.OpenAIOptions{
			BaseURL:     a.cfg.Assist.BaseURL,
			Model:       a.cfg.Assist.Model,
			Temperature: a.cfg.Assist.Temperature,
		})
	}
	return assist.New(backend, a.log)
}

func (a *appContext) editorOptions() editor.Options {
	return editor.Options{Generator: a.assistant(), Now: a.now}
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error { return e.cause }
