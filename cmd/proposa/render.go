package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/render"
)

type renderOptions struct {
	documentFlag
	theme  string
	output string
}

func (o *renderOptions) register(cmd *cobra.Command) {
	o.documentFlag.register(cmd)
	cmd.Flags().StringVar(&o.theme, "theme", "", "Render with this theme instead of the document's")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write to this file instead of stdout")
}

func newRenderCmd(app *appContext) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document-id>",
		Short: "Render a proposal or template to themed HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := renderPage(cmd, app, "render document", args[0], opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd, "render document", opts.output, page)
		},
	}
	opts.register(cmd)

	return cmd
}

// renderPage renders the document named by id with its resolved theme.
func renderPage(cmd *cobra.Command, app *appContext, operation, id string, opts *renderOptions) ([]byte, error) {
	ctx, err := app.open(cmd, operation)
	if err != nil {
		return nil, err
	}

	doc := render.Document{Currency: app.cfg.Currency}
	themeID := opts.theme
	if opts.template {
		tpl, err := app.store.Template(id)
		if err != nil {
			return nil, newCommandError(operation, fmt.Sprintf("looking up template %q", id), err, "Run 'proposa template list' to see template ids.")
		}
		doc.Title, doc.Blocks = tpl.Title, tpl.Blocks
	} else {
		p, err := app.store.Proposal(id)
		if err != nil {
			return nil, newCommandError(operation, fmt.Sprintf("looking up proposal %q", id), err, "Run 'proposa proposal list' to see proposal ids, or pass --template.")
		}
		doc.Title, doc.Blocks, doc.Currency = p.Title, p.Blocks, p.Currency
		doc.ClientName = app.store.ClientName(p.ClientID)
		if themeID == "" {
			themeID = p.ThemeID
		}
	}
	doc.Theme = app.store.ResolveTheme(themeID)

	page, err := app.renderBlocks(doc)
	if err != nil {
		return nil, newCommandError(operation, "rendering "+id, err, "Check the document blocks with 'proposa block list "+id+"'.")
	}
	app.log.Debug(ctx, "document rendered", "id", id, "theme", doc.Theme.ID, "bytes", len(page))
	return page, nil
}

func (a *appContext) renderBlocks(doc render.Document) ([]byte, error) {
	renderer, err := render.New(render.Options{Locale: a.cfg.Locale})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// previewMarkdown renders blocks with the default theme and converts them
// for the terminal.
func (a *appContext) previewMarkdown(title string, blocks []block.Block) (string, error) {
	page, err := a.renderBlocks(render.Document{
		Title:    title,
		Blocks:   blocks,
		Theme:    a.store.ResolveTheme(""),
		Currency: a.cfg.Currency,
	})
	if err != nil {
		return "", err
	}
	return render.Markdown(page)
}

func writeOutput(cmd *cobra.Command, operation, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newCommandError(operation, "writing "+path, err, "Check that the directory exists and is writable.")
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", path)
	return nil
}
