package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/document"
)

func newClientCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage the clients proposals are addressed to",
	}

	var jsonOutput bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "list clients"); err != nil {
				return err
			}
			clients := app.store.Clients()
			if jsonOutput {
				return writeJSON(cmd, clients)
			}
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients yet. Run 'proposa client add <name>' to add one.")
				return nil
			}
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tCOMPANY\tEMAIL")
			for _, c := range clients {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.Email)
			}
			return writer.Flush()
		},
	}
	list.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	client := document.Client{}
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "add client")
			if err != nil {
				return err
			}
			client.Name = args[0]
			added, err := app.store.AddClient(client)
			if err != nil {
				return newCommandError("add client", fmt.Sprintf("adding client %q", args[0]), err, "Use a unique --id and a valid --email.")
			}
			if err := app.save(ctx, "add client"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added client %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}
	add.Flags().StringVar(&client.ID, "id", "", "Client id (derived from the name when empty)")
	add.Flags().StringVar(&client.Company, "company", "", "Company name")
	add.Flags().StringVar(&client.Email, "email", "", "Contact email")
	add.Flags().StringVar(&client.Phone, "phone", "", "Contact phone")
	add.Flags().StringVar(&client.Notes, "notes", "", "Free form notes")

	cmd.AddCommand(list, add)
	return cmd
}
