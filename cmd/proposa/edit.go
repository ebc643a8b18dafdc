package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
	"github.com/alexisbeaulieu97/proposa/internal/logger"
	"github.com/alexisbeaulieu97/proposa/internal/tui"
)

func newEditCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:   "edit <document-id>",
		Short: "Open the interactive block editor",
		Long: `Open the interactive block editor for a proposal or template.

Keys: j/k move, enter edits, a adds a block, d deletes it, v previews,
s saves and q quits. In a field list, g fills a text field from a prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], doc.template)
		},
	}
	doc.register(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, app *appContext, id string, template bool) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return newCommandError("edit document", "starting the editor", errors.New("not a terminal"), "Use 'proposa block' commands in scripts.")
	}

	ctx, err := app.open(cmd, "edit document")
	if err != nil {
		return err
	}
	app.log.Info(ctx, "opening editor", "id", id, "template", template)

	// The alternate screen owns the terminal until the program exits.
	log := app.log
	app.log = logger.Nop()
	defer func() { app.log = log }()

	_, session, err := openSession(cmd, app, "edit document", id, template)
	if err != nil {
		return err
	}

	model := tui.NewModel(session, tui.Options{
		Save: func(s *editor.Session) error {
			if err := commitSession(app, s); err != nil {
				return err
			}
			return app.store.Save()
		},
		Preview: func(blocks []block.Block) (string, error) {
			return app.previewMarkdown(session.Title(), blocks)
		},
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		log.Error(ctx, "editor failed", "error", err)
		return newCommandError("edit document", "running the editor", err, "Check that your terminal supports full screen programs.")
	}

	if m, ok := final.(tui.Model); ok && m.Session().Dirty() {
		log.Warn(ctx, "editor closed with unsaved changes", "id", id)
	}
	log.Info(ctx, "editor closed", "id", id)
	return nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
