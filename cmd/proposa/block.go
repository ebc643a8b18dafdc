package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
	"github.com/alexisbeaulieu97/proposa/internal/tui"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// documentFlag selects whether the first argument names a template.
type documentFlag struct {
	template bool
}

func (f *documentFlag) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.template, "template", false, "The id names a template instead of a proposal")
}

func newBlockCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "block",
		Aliases: []string{"blocks", "b"},
		Short:   "Edit the blocks of a proposal or template",
	}

	cmd.AddCommand(newBlockListCmd(app))
	cmd.AddCommand(newBlockTypesCmd())
	cmd.AddCommand(newBlockAddCmd(app))
	cmd.AddCommand(newBlockRemoveCmd(app))
	cmd.AddCommand(newBlockFieldsCmd(app))
	cmd.AddCommand(newBlockSetCmd(app))
	cmd.AddCommand(newBlockItemCmd(app))

	return cmd
}

// openSession loads the document named by id into an editing session.
func openSession(cmd *cobra.Command, app *appContext, operation, id string, template bool) (context.Context, *editor.Session, error) {
	ctx, err := app.open(cmd, operation)
	if err != nil {
		return nil, nil, err
	}
	if template {
		tpl, err := app.store.Template(id)
		if err != nil {
			return nil, nil, newCommandError(operation, fmt.Sprintf("looking up template %q", id), err, "Run 'proposa template list' to see template ids.")
		}
		return ctx, editor.NewTemplateSession(tpl, app.editorOptions()), nil
	}
	p, err := app.store.Proposal(id)
	if err != nil {
		return nil, nil, newCommandError(operation, fmt.Sprintf("looking up proposal %q", id), err, "Run 'proposa proposal list' to see proposal ids, or pass --template.")
	}
	return ctx, editor.NewProposalSession(p, app.editorOptions()), nil
}

// commitSession writes the session's working copy back to the store. It
// does not save the workspace file.
func commitSession(app *appContext, s *editor.Session) error {
	if s.Kind() == editor.KindTemplate {
		tpl, err := s.CommitTemplate()
		if err != nil {
			return err
		}
		return app.store.UpdateTemplate(tpl)
	}
	p, err := s.CommitProposal()
	if err != nil {
		return err
	}
	return app.store.UpdateProposal(p)
}

// editDocument runs fn inside a session and persists the result.
func editDocument(cmd *cobra.Command, app *appContext, operation, id string, template bool, fn func(*editor.Session) error) error {
	ctx, session, err := openSession(cmd, app, operation, id, template)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	if err := commitSession(app, session); err != nil {
		return newCommandError(operation, "committing changes", err, "Fix the reported field and retry.")
	}
	if err := app.save(ctx, operation); err != nil {
		return err
	}
	app.log.Debug(ctx, "document updated", "id", id, "kind", session.Kind())
	return nil
}

func newBlockListCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:   "list <document-id>",
		Short: "List the blocks of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(cmd, app, "list blocks", args[0], doc.template)
			if err != nil {
				return err
			}
			blocks := session.Blocks()
			if len(blocks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No blocks yet. Run 'proposa block add "+args[0]+" <type>' to add one.")
				return nil
			}
			return writeBlocks(cmd.OutOrStdout(), blocks)
		},
	}
	doc.register(cmd)

	return cmd
}

func writeBlocks(out io.Writer, blocks []block.Block) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tID\tTYPE\tSUMMARY")
	for i, b := range blocks {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i+1, b.ID(), b.Variant(), truncate(tui.Summary(b), 50))
	}
	return writer.Flush()
}

func newBlockTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the block types that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "TYPE\tNAME")
			for _, v := range block.Variants() {
				fmt.Fprintf(writer, "%s\t%s\n", v, v.Label())
			}
			return writer.Flush()
		},
	}
}

func parseVariant(name string) (block.Variant, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for _, v := range block.Variants() {
		if string(v) == normalized || strings.EqualFold(v.Label(), name) {
			return v, nil
		}
	}
	return "", proposaerrors.NewValidationError("type", fmt.Sprintf("unknown block type %q", name), nil)
}

func newBlockAddCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:   "add <document-id> <type>",
		Short: "Append a block with default content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := parseVariant(args[1])
			if err != nil {
				return newCommandError("add block", "choosing block type", err, "Run 'proposa block types' to see the available types.")
			}
			var added block.Block
			err = editDocument(cmd, app, "add block", args[0], doc.template, func(s *editor.Session) error {
				added, err = s.AddBlock(variant)
				if err != nil {
					return newCommandError("add block", "creating block", err, "Run 'proposa block types' to see the available types.")
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s block %s\n", variant.Label(), added.ID())
			return nil
		},
	}
	doc.register(cmd)

	return cmd
}

func newBlockRemoveCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:     "rm <document-id> <block-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a block",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := editDocument(cmd, app, "remove block", args[0], doc.template, func(s *editor.Session) error {
				if err := s.DeleteBlock(args[1]); err != nil {
					return newCommandError("remove block", fmt.Sprintf("removing block %q", args[1]), err, "Run 'proposa block list "+args[0]+"' to see block ids.")
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed block %s\n", args[1])
			return nil
		},
	}
	doc.register(cmd)

	return cmd
}

func newBlockFieldsCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:   "fields <document-id> <block-id>",
		Short: "Show the editable fields of a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(cmd, app, "show fields", args[0], doc.template)
			if err != nil {
				return err
			}
			form, err := session.Form(args[1])
			if err != nil {
				return newCommandError("show fields", fmt.Sprintf("opening block %q", args[1]), err, "Run 'proposa block list "+args[0]+"' to see block ids.")
			}
			writeForm(cmd.OutOrStdout(), form)
			return nil
		},
	}
	doc.register(cmd)

	return cmd
}

func writeForm(out io.Writer, form editor.Form) {
	fmt.Fprintf(out, "%s (%s)\n\n", form.Label, form.BlockID)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "KEY\tKIND\tVALUE")
	for _, f := range form.Fields {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", f.Key, fieldKind(f), truncate(f.Value(), 60))
	}
	for _, list := range form.Lists {
		fmt.Fprintf(writer, "%s\tlist\t%d items\n", list.Key, len(list.Items))
		for _, item := range list.Items {
			for _, f := range item.Fields {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", f.Key, fieldKind(f), truncate(f.Value(), 60))
			}
			for _, s := range item.Strings {
				fmt.Fprintf(writer, "%s\tstrings\t%s\n", s.Key, truncate(strings.Join(s.Values(), "; "), 60))
			}
		}
	}
	_ = writer.Flush()
}

func fieldKind(f editor.Field) string {
	if len(f.Options) > 0 {
		return string(f.Kind) + "(" + strings.Join(f.Options, "|") + ")"
	}
	return string(f.Kind)
}

func newBlockSetCmd(app *appContext) *cobra.Command {
	doc := &documentFlag{}

	cmd := &cobra.Command{
		Use:   "set <document-id> <block-id> <field-key> <value>",
		Short: "Set one field of a block",
		Long: `Set one field of a block.

Field keys are listed by 'proposa block fields'. Fields of list items use
<list>.<item-id>.<name>. For a list of strings, such as feature bullets, the
value replaces every entry; separate entries with newlines.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockID, key, value := args[1], args[2], args[3]
			err := editDocument(cmd, app, "set field", args[0], doc.template, func(s *editor.Session) error {
				form, err := s.Form(blockID)
				if err != nil {
					return newCommandError("set field", fmt.Sprintf("opening block %q", blockID), err, "Run 'proposa block list "+args[0]+"' to see block ids.")
				}
				if field, ok := form.Lookup(key); ok {
					if err := field.Set(value); err != nil {
						return newCommandError("set field", fmt.Sprintf("setting %s", key), err, "Run 'proposa block fields "+args[0]+" "+blockID+"' to see the field kinds.")
					}
					return nil
				}
				if strs, ok := form.LookupStrings(key); ok {
					return replaceStrings(strs, value)
				}
				return newCommandError("set field", fmt.Sprintf("setting %s", key), proposaerrors.NewNotFoundError("field", key), "Run 'proposa block fields "+args[0]+" "+blockID+"' to see the field keys.")
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s\n", key)
			return nil
		},
	}
	doc.register(cmd)

	return cmd
}

func replaceStrings(strs editor.Strings, value string) error {
	for range strs.Values() {
		if err := strs.Remove(0); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := strs.Add(line); err != nil {
			return err
		}
	}
	return nil
}

func newBlockItemCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add or remove items of a block list",
	}

	addDoc := &documentFlag{}
	add := &cobra.Command{
		Use:   "add <document-id> <block-id> <list-key>",
		Short: "Append an item with default values",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var itemID string
			err := editDocument(cmd, app, "add item", args[0], addDoc.template, func(s *editor.Session) error {
				list, err := blockList(s, args[0], args[1], args[2], "add item")
				if err != nil {
					return err
				}
				if itemID, err = list.Add(); err != nil {
					return newCommandError("add item", "appending to "+args[2], err, "Check the block with 'proposa block fields'.")
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added item %s\n", itemID)
			return nil
		},
	}
	addDoc.register(add)

	rmDoc := &documentFlag{}
	rm := &cobra.Command{
		Use:   "rm <document-id> <block-id> <list-key> <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := editDocument(cmd, app, "remove item", args[0], rmDoc.template, func(s *editor.Session) error {
				list, err := blockList(s, args[0], args[1], args[2], "remove item")
				if err != nil {
					return err
				}
				for _, item := range list.Items {
					if item.ID == args[3] {
						return item.Remove()
					}
				}
				return newCommandError("remove item", "removing "+args[3], proposaerrors.NewNotFoundError("item", args[3]), "Run 'proposa block fields "+args[0]+" "+args[1]+"' to see item ids.")
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed item %s\n", args[3])
			return nil
		},
	}
	rmDoc.register(rm)

	cmd.AddCommand(add, rm)
	return cmd
}

func blockList(s *editor.Session, docID, blockID, key, operation string) (editor.List, error) {
	form, err := s.Form(blockID)
	if err != nil {
		return editor.List{}, newCommandError(operation, fmt.Sprintf("opening block %q", blockID), err, "Run 'proposa block list "+docID+"' to see block ids.")
	}
	list, ok := form.List(key)
	if !ok {
		return editor.List{}, newCommandError(operation, "finding list "+key, proposaerrors.NewNotFoundError("list", key), "Run 'proposa block fields "+docID+" "+blockID+"' to see the lists of the block.")
	}
	return list, nil
}
