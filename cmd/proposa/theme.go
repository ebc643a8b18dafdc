package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/theme"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

func newThemeCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme",
		Aliases: []string{"themes"},
		Short:   "Manage themes and choose the default",
	}

	var jsonOutput bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "list themes"); err != nil {
				return err
			}
			themes := app.store.Themes()
			if jsonOutput {
				return writeJSON(cmd, themes)
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tPRIMARY\tBACKGROUND\tFONTS\tDEFAULT")
			for _, t := range themes {
				background := t.Colors.Background
				if t.Colors.BackgroundType == theme.BackgroundGradient {
					background = "gradient"
				}
				def := ""
				if t.IsDefault {
					def = "*"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s / %s\t%s\n", t.ID, t.Name, t.Colors.Primary, background, t.Fonts.Heading, t.Fonts.Body, def)
			}
			return writer.Flush()
		},
	}
	list.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	def := &cobra.Command{
		Use:   "default <theme-id>",
		Short: "Make a theme the workspace default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "set default theme")
			if err != nil {
				return err
			}
			if err := app.store.SetDefaultTheme(args[0]); err != nil {
				return newCommandError("set default theme", fmt.Sprintf("selecting theme %q", args[0]), err, "Run 'proposa theme list' to see theme ids.")
			}
			if err := app.save(ctx, "set default theme"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now the default theme\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, def, newThemeAddCmd(app), newThemeEditCmd(app), newThemeRemoveCmd(app), newThemePresetsCmd())
	return cmd
}

// themeFlags are the editable theme properties shared by add and edit. Only
// flags the user set are applied.
type themeFlags struct {
	name        string
	primary     string
	background  string
	text        string
	heading     string
	card        string
	headingFont string
	bodyFont    string
	preset      string
	gradient    string
	solid       bool
	makeDefault bool
}

func (f *themeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.primary, "primary", "", "Primary color")
	flags.StringVar(&f.background, "background", "", "Background color")
	flags.StringVar(&f.text, "text", "", "Body text color")
	flags.StringVar(&f.heading, "heading", "", "Heading color")
	flags.StringVar(&f.card, "card", "", "Card background color")
	flags.StringVar(&f.headingFont, "heading-font", "", "Heading font family")
	flags.StringVar(&f.bodyFont, "body-font", "", "Body font family")
	flags.StringVar(&f.preset, "preset", "", "Use a gradient preset as background (see 'proposa theme presets')")
	flags.StringVar(&f.gradient, "gradient", "", "Use a CSS linear-gradient as background")
	flags.BoolVar(&f.solid, "solid", false, "Use the flat background color")
	flags.BoolVar(&f.makeDefault, "default", false, "Make this the default theme")
	cmd.MarkFlagsMutuallyExclusive("preset", "gradient", "solid")
}

func (f *themeFlags) apply(cmd *cobra.Command, t *theme.Theme) error {
	changed := cmd.Flags().Changed
	set := func(flag string, dst *string, value string) {
		if changed(flag) {
			*dst = value
		}
	}
	set("primary", &t.Colors.Primary, f.primary)
	set("background", &t.Colors.Background, f.background)
	set("text", &t.Colors.Text, f.text)
	set("heading", &t.Colors.Heading, f.heading)
	set("card", &t.Colors.CardBackground, f.card)
	set("heading-font", &t.Fonts.Heading, f.headingFont)
	set("body-font", &t.Fonts.Body, f.bodyFont)

	switch {
	case changed("preset"):
		gradient, ok := theme.PresetGradient(f.preset)
		if !ok {
			return fmt.Errorf("unknown gradient preset %q", f.preset)
		}
		t.Colors.BackgroundType = theme.BackgroundGradient
		t.Colors.BackgroundGradient = gradient
	case changed("gradient"):
		t.Colors.BackgroundType = theme.BackgroundGradient
		t.Colors.BackgroundGradient = f.gradient
	case f.solid:
		t.Colors.BackgroundType = theme.BackgroundSolid
		t.Colors.BackgroundGradient = ""
	}
	if f.makeDefault {
		t.IsDefault = true
	}
	return nil
}

func newThemeAddCmd(app *appContext) *cobra.Command {
	flags := &themeFlags{}
	var id, from string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a theme, starting from the default theme or --from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "add theme")
			if err != nil {
				return err
			}
			themes := app.store.Themes()
			base := themes.Resolve("")
			if from != "" {
				var ok bool
				if base, ok = themes.Get(from); !ok {
					return newCommandError("add theme", fmt.Sprintf("copying theme %q", from), fmt.Errorf("theme %s not found", from), "Run 'proposa theme list' to see theme ids.")
				}
			}

			t := base
			t.Name = args[0]
			t.ID = id
			if t.ID == "" {
				t.ID = workspace.NewSlugID("theme", args[0])
			}
			if _, exists := themes.Get(t.ID); exists {
				return newCommandError("add theme", fmt.Sprintf("creating theme %q", t.ID), fmt.Errorf("theme %s already exists", t.ID), "Use 'proposa theme edit' to change it.")
			}
			t.IsDefault = false
			if err := flags.apply(cmd, &t); err != nil {
				return newCommandError("add theme", "reading flags", err, "Run 'proposa theme presets' to see preset names.")
			}
			if err := app.store.UpsertTheme(t); err != nil {
				return newCommandError("add theme", fmt.Sprintf("saving theme %q", t.Name), err, "Colors must be valid CSS colors, for example #4f46e5.")
			}
			if err := app.save(ctx, "add theme"); err != nil {
				return err
			}
			app.log.Info(ctx, "theme created", "theme", t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created theme '%s' (%s)\n", t.Name, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Theme id (derived from the name when empty)")
	cmd.Flags().StringVar(&from, "from", "", "Theme id to copy colors and fonts from")
	flags.register(cmd)
	return cmd
}

func newThemeEditCmd(app *appContext) *cobra.Command {
	flags := &themeFlags{}

	cmd := &cobra.Command{
		Use:   "edit <theme-id>",
		Short: "Change a theme's name, colors, fonts or background",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "edit theme")
			if err != nil {
				return err
			}
			t, ok := app.store.Themes().Get(args[0])
			if !ok {
				return newCommandError("edit theme", fmt.Sprintf("looking up theme %q", args[0]), fmt.Errorf("theme %s not found", args[0]), "Run 'proposa theme list' to see theme ids.")
			}
			if cmd.Flags().Changed("name") {
				t.Name = flags.name
			}
			if err := flags.apply(cmd, &t); err != nil {
				return newCommandError("edit theme", "reading flags", err, "Run 'proposa theme presets' to see preset names.")
			}
			if err := app.store.UpsertTheme(t); err != nil {
				return newCommandError("edit theme", fmt.Sprintf("saving theme %q", t.ID), err, "Colors must be valid CSS colors, for example #4f46e5.")
			}
			if err := app.save(ctx, "edit theme"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated theme '%s'\n", t.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.name, "name", "", "Display name")
	flags.register(cmd)
	return cmd
}

func newThemeRemoveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <theme-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a theme; documents using it fall back to the default",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "remove theme")
			if err != nil {
				return err
			}
			if err := app.store.RemoveTheme(args[0]); err != nil {
				return newCommandError("remove theme", fmt.Sprintf("deleting theme %q", args[0]), err, "Run 'proposa theme list' to see theme ids.")
			}
			if err := app.save(ctx, "remove theme"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed theme %s\n", args[0])
			return nil
		},
	}
}

func newThemePresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List background gradient presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tGRADIENT")
			for _, p := range theme.Presets() {
				fmt.Fprintf(writer, "%s\t%s\n", p.Name, p.Gradient)
			}
			return writer.Flush()
		},
	}
}
