package document

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/money"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// ProposalOptions carries the values a new proposal takes from its creator
// rather than from a template.
type ProposalOptions struct {
	Title    string
	ClientID string
	ThemeID  string
	Currency string
	Value    float64
	Now      time.Time
	NewID    func() string
}

func (o ProposalOptions) id() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

func (o ProposalOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now().UTC()
	}
	return o.Now
}

func (o ProposalOptions) currency() string {
	if strings.TrimSpace(o.Currency) == "" {
		return money.DefaultCurrency
	}
	return strings.ToUpper(o.Currency)
}

// NewProposal creates an empty draft.
func NewProposal(opts ProposalOptions) Proposal {
	now := opts.now()
	return Proposal{
		ID:           opts.id(),
		Title:        opts.Title,
		ClientID:     opts.ClientID,
		Status:       StatusDraft,
		Value:        opts.Value,
		Currency:     opts.currency(),
		CreatedAt:    now,
		LastActivity: now,
		ThemeID:      opts.ThemeID,
		Blocks:       []block.Block{},
	}
}

// InstantiateFromTemplate creates a draft whose blocks are a deep copy of the
// template's. Later edits to either side are invisible to the other. When
// opts.Title is empty the template title is used.
func InstantiateFromTemplate(tpl Template, opts ProposalOptions) Proposal {
	p := NewProposal(opts)
	if strings.TrimSpace(p.Title) == "" {
		p.Title = tpl.Title
	}
	p.Blocks = block.CloneAll(tpl.Blocks)
	if p.Blocks == nil {
		p.Blocks = []block.Block{}
	}
	return p
}

// ApplyTemplate replaces a proposal's title and blocks with a deep copy of
// the template, keeping every proposal-only field.
func (p *Proposal) ApplyTemplate(tpl Template, now time.Time) {
	p.Title = tpl.Title
	p.Blocks = block.CloneAll(tpl.Blocks)
	p.LastActivity = now
}

// TemplateOptions configures SaveAsTemplate.
type TemplateOptions struct {
	Title       string
	Description string
	Category    string
	NewID       func() string
}

// SaveAsTemplate copies a proposal's title and blocks into a new template.
// Proposal-only fields are discarded.
func SaveAsTemplate(p Proposal, opts TemplateOptions) (Template, error) {
	if strings.TrimSpace(opts.Description) == "" {
		return Template{}, proposaerrors.NewValidationError("description", "description is required", nil)
	}
	if strings.TrimSpace(opts.Category) == "" {
		return Template{}, proposaerrors.NewValidationError("category", "category is required", nil)
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = p.Title + " (Copy)"
	}
	id := uuid.NewString()
	if opts.NewID != nil {
		id = opts.NewID()
	}

	return Template{
		ID:          id,
		Title:       title,
		Description: opts.Description,
		Category:    opts.Category,
		Blocks:      block.CloneAll(p.Blocks),
	}, nil
}

// Share returns the proposal's public token, assigning one from newToken the
// first time. An existing token is never replaced.
func (p *Proposal) Share(newToken func() string) string {
	if p.PublicLink == "" {
		if newToken == nil {
			newToken = NewShareToken
		}
		p.PublicLink = newToken()
	}
	return p.PublicLink
}

// NewShareToken returns a random, URL safe token.
func NewShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
