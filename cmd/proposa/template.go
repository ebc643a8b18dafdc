package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/library"
)

func newTemplateCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "t"},
		Short:   "Manage reusable proposal templates",
	}

	cmd.AddCommand(newTemplateListCmd(app))
	cmd.AddCommand(newTemplateSaveCmd(app))
	cmd.AddCommand(newTemplatePullCmd(app))
	cmd.AddCommand(newTemplateDeleteCmd(app))

	return cmd
}

func newTemplateListCmd(app *appContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "list templates"); err != nil {
				return err
			}
			templates := app.store.Templates()
			if jsonOutput {
				return writeJSON(cmd, templates)
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates yet.")
				fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'proposa template save <proposal-id>' or 'proposa template pull <repo>' to add some.")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tTITLE\tCATEGORY\tBLOCKS\tDESCRIPTION")
			for _, t := range templates {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.Title, t.Category, len(t.Blocks), truncate(t.Description, 60))
			}
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type templateSaveOptions struct {
	title       string
	description string
	category    string
}

func newTemplateSaveCmd(app *appContext) *cobra.Command {
	opts := &templateSaveOptions{}

	cmd := &cobra.Command{
		Use:   "save <proposal-id>",
		Short: "Save a proposal's blocks as a new template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "save template")
			if err != nil {
				return err
			}
			p, err := app.store.Proposal(args[0])
			if err != nil {
				return newCommandError("save template", fmt.Sprintf("looking up proposal %q", args[0]), err, "Run 'proposa proposal list' to see proposal ids.")
			}
			tpl, err := document.SaveAsTemplate(p, document.TemplateOptions{
				Title:       opts.title,
				Description: opts.description,
				Category:    opts.category,
			})
			if err != nil {
				return newCommandError("save template", "building template", err, "Pass --description and --category.")
			}
			if err := app.store.AddTemplate(tpl); err != nil {
				return newCommandError("save template", "adding template", err, "Check the proposal blocks with 'proposa block list "+p.ID+"'.")
			}
			if err := app.save(ctx, "save template"); err != nil {
				return err
			}
			app.log.Info(ctx, "template saved", "template", tpl.ID, "proposal", p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved template '%s' (%s)\n", tpl.Title, tpl.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Template title (defaults to \"<proposal title> (Copy)\")")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Template description")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Template category")

	return cmd
}

type templatePullOptions struct {
	ref   string
	depth int
}

func newTemplatePullCmd(app *appContext) *cobra.Command {
	opts := &templatePullOptions{}

	cmd := &cobra.Command{
		Use:   "pull [repository]",
		Short: "Import templates from a git repository",
		Long: `Import templates from a git repository.

Every templates/*.yaml file in the repository is decoded as one template.
Imported templates and their blocks get fresh ids, so pulling the same
repository twice yields two independent copies.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatePull(cmd, app, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ref, "ref", "", "Branch to pull (defaults to the settings library ref)")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "Clone depth, 0 for full history")

	return cmd
}

func runTemplatePull(cmd *cobra.Command, app *appContext, opts *templatePullOptions, args []string) error {
	ctx, err := app.open(cmd, "pull templates")
	if err != nil {
		return err
	}

	src := library.Source{URL: app.cfg.Library.URL, Ref: app.cfg.Library.Ref, Depth: opts.depth}
	if len(args) == 1 {
		src.URL = args[0]
		src.Ref = ""
	}
	if opts.ref != "" {
		src.Ref = opts.ref
	}
	if src.URL == "" {
		return newCommandError("pull templates", "choosing repository", errors.New("no repository given"), "Pass a repository URL or set library.url in the settings file.")
	}

	app.log.Info(ctx, "pulling templates", "url", src.URL, "ref", src.Ref)
	result, err := library.Pull(ctx, src)
	if err != nil {
		return newCommandError("pull templates", "reading "+src.URL, err, "Check the repository URL and that it has a templates/ directory.")
	}

	for _, tpl := range library.Fresh(result.Templates, uuid.NewString) {
		if err := app.store.AddTemplate(tpl); err != nil {
			return newCommandError("pull templates", fmt.Sprintf("adding template %q", tpl.Title), err, "Fix the template in the repository and pull again.")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  + %s (%d blocks)\n", tpl.Title, len(tpl.Blocks))
	}
	if err := app.save(ctx, "pull templates"); err != nil {
		return err
	}

	app.log.Info(ctx, "templates pulled", "count", len(result.Templates), "commit", result.Commit)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d templates from %s@%s\n", len(result.Templates), src.URL, shortCommit(result.Commit))
	return nil
}

func newTemplateDeleteCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <template-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "delete template")
			if err != nil {
				return err
			}
			if err := app.store.RemoveTemplate(args[0]); err != nil {
				return newCommandError("delete template", fmt.Sprintf("removing template %q", args[0]), err, "Run 'proposa template list' to see template ids.")
			}
			if err := app.save(ctx, "delete template"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted template %s\n", args[0])
			return nil
		},
	}
}

func shortCommit(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
