package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/money"
)

func newProposalCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"proposals", "p"},
		Short:   "Create, inspect and share proposals",
	}

	cmd.AddCommand(newProposalListCmd(app))
	cmd.AddCommand(newProposalShowCmd(app))
	cmd.AddCommand(newProposalNewCmd(app))
	cmd.AddCommand(newProposalDeleteCmd(app))
	cmd.AddCommand(newProposalShareCmd(app))
	cmd.AddCommand(newProposalTransitionCmd(app, "send", "Mark a draft as sent", func(p *document.Proposal, now time.Time) error {
		return p.Send(now)
	}))
	cmd.AddCommand(newProposalTransitionCmd(app, "reject", "Close a proposal without approval", func(p *document.Proposal, now time.Time) error {
		return p.Reject(now)
	}))
	cmd.AddCommand(newProposalCommentCmd(app))
	cmd.AddCommand(newProposalStatusCmd(app))

	return cmd
}

type proposalListOptions struct {
	jsonOutput bool
	status     string
}

func newProposalListCmd(app *appContext) *cobra.Command {
	opts := &proposalListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "list proposals"); err != nil {
				return err
			}
			return runProposalList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.status, "status", "", "Only show proposals in this status")

	return cmd
}

func runProposalList(cmd *cobra.Command, app *appContext, opts *proposalListOptions) error {
	var proposals []document.Proposal
	for _, p := range app.store.Proposals() {
		if opts.status == "" || strings.EqualFold(string(p.Status), opts.status) {
			proposals = append(proposals, p)
		}
	}
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].LastActivity.After(proposals[j].LastActivity)
	})

	if opts.jsonOutput {
		return writeJSON(cmd, proposals)
	}
	if len(proposals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No proposals yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'proposa proposal new --title <title> --client <client-id>' to create one.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tCLIENT\tSTATUS\tVALUE\tVIEWS\tLAST ACTIVITY")
	for _, p := range proposals {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID,
			p.Title,
			app.store.ClientName(p.ClientID),
			p.Status,
			formatValue(p.Value, p.Currency, app.cfg.Locale),
			p.TotalViews,
			formatRelativeTime(app.now(), p.LastActivity),
		)
	}
	return writer.Flush()
}

type proposalShowOptions struct {
	jsonOutput bool
}

func newProposalShowCmd(app *appContext) *cobra.Command {
	opts := &proposalShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <proposal-id>",
		Short: "Show a proposal and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "show proposal"); err != nil {
				return err
			}
			p, err := app.store.Proposal(args[0])
			if err != nil {
				return newCommandError("show proposal", fmt.Sprintf("looking up proposal %q", args[0]), err, "Run 'proposa proposal list' to see proposal ids.")
			}
			if opts.jsonOutput {
				return writeJSON(cmd, p)
			}
			renderProposal(cmd, app, p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderProposal(cmd *cobra.Command, app *appContext, p document.Proposal) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Proposal: %s\n", p.ID)
	fmt.Fprintf(out, "Title:    %s\n", p.Title)
	fmt.Fprintf(out, "Client:   %s\n", app.store.ClientName(p.ClientID))
	fmt.Fprintf(out, "Status:   %s\n", p.Status)
	fmt.Fprintf(out, "Value:    %s\n", formatValue(p.Value, p.Currency, app.cfg.Locale))
	fmt.Fprintf(out, "Theme:    %s\n", app.store.ResolveTheme(p.ThemeID).Name)
	fmt.Fprintf(out, "Views:    %d\n", p.TotalViews)
	if p.PublicLink != "" {
		fmt.Fprintf(out, "Link:     %s\n", app.cfg.PublicURL(p.PublicLink))
	}
	fmt.Fprintf(out, "Created:  %s\n", p.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Activity: %s\n", p.LastActivity.Format(time.RFC3339))

	fmt.Fprintf(out, "\nBlocks (%d):\n", len(p.Blocks))
	writeBlocks(out, p.Blocks)

	if p.Approval != nil {
		fmt.Fprintf(out, "\nApproved %s by %s\n", p.Approval.SignedAt.Format(time.RFC3339), valueOrFallback(p.Approval.Signer.Name, "(unnamed signer)"))
	}
	if len(p.Comments) > 0 {
		fmt.Fprintf(out, "\nComments (%d):\n", len(p.Comments))
		for _, c := range p.Comments {
			fmt.Fprintf(out, "  [%s] %s (%s): %s\n", c.Timestamp.Format("2006-01-02"), c.Author, c.AuthorType, c.Content)
		}
	}
}

type proposalNewOptions struct {
	title     string
	clientID  string
	newClient string
	template  string
	theme     string
	currency  string
	value     float64
}

func newProposalNewCmd(app *appContext) *cobra.Command {
	opts := &proposalNewOptions{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a draft proposal, optionally from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProposalNew(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Proposal title (defaults to the template title)")
	cmd.Flags().StringVarP(&opts.clientID, "client", "c", "", "Client id")
	cmd.Flags().StringVar(&opts.newClient, "new-client", "", "Create a client with this name and use it")
	cmd.Flags().StringVar(&opts.template, "template", "", "Template id to copy blocks from")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme id (defaults to the workspace default)")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "ISO 4217 currency (defaults to the settings currency)")
	cmd.Flags().Float64Var(&opts.value, "value", 0, "Estimated value")
	cmd.MarkFlagsOneRequired("client", "new-client")
	cmd.MarkFlagsMutuallyExclusive("client", "new-client")

	return cmd
}

func runProposalNew(cmd *cobra.Command, app *appContext, opts *proposalNewOptions) error {
	ctx, err := app.open(cmd, "create proposal")
	if err != nil {
		return err
	}

	currency := opts.currency
	if currency == "" {
		currency = app.cfg.Currency
	}
	popts := document.ProposalOptions{
		Title:    opts.title,
		ClientID: opts.clientID,
		ThemeID:  opts.theme,
		Currency: currency,
		Value:    opts.value,
		Now:      app.now(),
	}

	var p document.Proposal
	if opts.template != "" {
		tpl, err := app.store.Template(opts.template)
		if err != nil {
			return newCommandError("create proposal", fmt.Sprintf("looking up template %q", opts.template), err, "Run 'proposa template list' to see template ids.")
		}
		p = document.InstantiateFromTemplate(tpl, popts)
	} else {
		p = document.NewProposal(popts)
	}

	if opts.newClient != "" {
		client, err := app.store.AddClient(document.Client{Name: opts.newClient})
		if err != nil {
			return newCommandError("create proposal", fmt.Sprintf("adding client %q", opts.newClient), err, "Pick another name or pass an existing id with --client.")
		}
		p.ClientID = client.ID
		app.log.Info(ctx, "client created", "client", client.ID)
	}

	if err := app.store.AddProposal(p); err != nil {
		return newCommandError("create proposal", fmt.Sprintf("adding proposal %q", p.Title), err, "Provide a title and an existing client id ('proposa client list').")
	}
	if err := app.save(ctx, "create proposal"); err != nil {
		return err
	}

	app.log.Info(ctx, "proposal created", "proposal", p.ID, "template", opts.template)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created proposal '%s' (%s) with %d blocks\n", p.Title, p.ID, len(p.Blocks))
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun 'proposa edit %s' to edit it.\n", p.ID)
	return nil
}

func newProposalDeleteCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <proposal-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a proposal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "delete proposal")
			if err != nil {
				return err
			}
			if err := app.store.RemoveProposal(args[0]); err != nil {
				return newCommandError("delete proposal", fmt.Sprintf("removing proposal %q", args[0]), err, "Run 'proposa proposal list' to see proposal ids.")
			}
			if err := app.save(ctx, "delete proposal"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted proposal %s\n", args[0])
			return nil
		},
	}
}

func newProposalShareCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "share <proposal-id>",
		Short: "Print the public link of a proposal, creating it on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "share proposal")
			if err != nil {
				return err
			}
			var token string
			if _, err := app.store.MutateProposal(args[0], func(p *document.Proposal) error {
				token = p.Share(document.NewShareToken)
				return nil
			}); err != nil {
				return newCommandError("share proposal", fmt.Sprintf("sharing proposal %q", args[0]), err, "Run 'proposa proposal list' to see proposal ids.")
			}
			if err := app.save(ctx, "share proposal"); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.cfg.PublicURL(token))
			return nil
		},
	}
}

func newProposalTransitionCmd(app *appContext, verb, short string, transition func(*document.Proposal, time.Time) error) *cobra.Command {
	operation := verb + " proposal"
	return &cobra.Command{
		Use:   verb + " <proposal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, operation)
			if err != nil {
				return err
			}
			p, err := app.store.MutateProposal(args[0], func(p *document.Proposal) error {
				return transition(p, app.now())
			})
			if err != nil {
				return newCommandError(operation, fmt.Sprintf("updating proposal %q", args[0]), err, "Check the proposal status with 'proposa proposal status "+args[0]+"'.")
			}
			if err := app.save(ctx, operation); err != nil {
				return err
			}
			app.log.Info(ctx, "proposal status changed", "proposal", p.ID, "status", p.Status)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", p.ID, p.Status)
			return nil
		},
	}
}

type proposalCommentOptions struct {
	author   string
	internal bool
}

func newProposalCommentCmd(app *appContext) *cobra.Command {
	opts := &proposalCommentOptions{}

	cmd := &cobra.Command{
		Use:   "comment <proposal-id> <message>",
		Short: "Record feedback on a sent proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := app.open(cmd, "comment on proposal")
			if err != nil {
				return err
			}
			kind := document.AuthorClient
			if opts.internal {
				kind = document.AuthorInternal
			}
			p, err := app.store.MutateProposal(args[0], func(p *document.Proposal) error {
				_, err := p.RecordComment(opts.author, kind, args[1], app.now())
				return err
			})
			if err != nil {
				return newCommandError("comment on proposal", fmt.Sprintf("commenting on %q", args[0]), err, "Only sent proposals that are still open take comments.")
			}
			if err := app.save(ctx, "comment on proposal"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Comment added; %s is now %s\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.author, "author", "Client", "Comment author")
	cmd.Flags().BoolVar(&opts.internal, "internal", false, "Mark the comment as an internal note")

	return cmd
}

type proposalStatus struct {
	ID         string          `json:"id"`
	Status     document.Status `json:"status"`
	TotalViews int             `json:"total_views"`
	PublicURL  string          `json:"public_url,omitempty"`
	Approved   bool            `json:"approved"`
	SignedAt   *time.Time      `json:"signed_at,omitempty"`
	Signer     string          `json:"signer,omitempty"`
	Role       string          `json:"role,omitempty"`
}

func newProposalStatusCmd(app *appContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <proposal-id>",
		Short: "Show the lifecycle and approval status of a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.open(cmd, "show status"); err != nil {
				return err
			}
			p, err := app.store.Proposal(args[0])
			if err != nil {
				return newCommandError("show status", fmt.Sprintf("looking up proposal %q", args[0]), err, "Run 'proposa proposal list' to see proposal ids.")
			}

			status := proposalStatus{ID: p.ID, Status: p.Status, TotalViews: p.TotalViews}
			if p.PublicLink != "" {
				status.PublicURL = app.cfg.PublicURL(p.PublicLink)
			}
			if p.Approval != nil {
				status.Approved = true
				signedAt := p.Approval.SignedAt
				status.SignedAt = &signedAt
				status.Signer = p.Approval.Signer.Name
				status.Role = p.Approval.Signer.Role
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s (%d views)\n", status.ID, status.Status, status.TotalViews)
			if status.PublicURL != "" {
				fmt.Fprintf(out, "Link: %s\n", status.PublicURL)
			}
			if status.Approved {
				fmt.Fprintf(out, "Signed %s by %s", status.SignedAt.Format(time.RFC3339), valueOrFallback(status.Signer, "(unnamed signer)"))
				if status.Role != "" {
					fmt.Fprintf(out, ", %s", status.Role)
				}
				fmt.Fprintln(out)
			} else {
				fmt.Fprintln(out, "Not signed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func formatValue(amount float64, currency, locale string) string {
	f, err := money.NewFormatter(currency, locale)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	return f.FormatCompact(amount)
}

func formatRelativeTime(now, ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := now.Sub(ts)
	switch {
	case delta < time.Minute:
		return "just now"
	case delta < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	case delta < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}
	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func writeJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
