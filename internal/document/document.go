// Package document holds the proposal and template containers and their
// lifecycle rules.
package document

import (
	"slices"
	"time"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/validation"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Client is the party a proposal is addressed to.
type Client struct {
	ID      string `yaml:"id" json:"id" validate:"required"`
	Name    string `yaml:"name" json:"name" validate:"required,max=200"`
	Company string `yaml:"company,omitempty" json:"company,omitempty"`
	Email   string `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Notes   string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Validate checks required client fields.
func (c Client) Validate() error {
	return validation.Struct(c)
}

// Signer identifies the person approving a proposal. Both fields are optional.
type Signer struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Role string `yaml:"role,omitempty" json:"role,omitempty"`
}

// Approval records a client's signed acceptance.
type Approval struct {
	SignedAt  time.Time `yaml:"signed_at" json:"signed_at"`
	Signature string    `yaml:"signature" json:"signature"`
	Signer    Signer    `yaml:"signer,omitempty" json:"signer,omitempty"`
}

// AuthorType tells client comments apart from internal notes.
type AuthorType string

const (
	AuthorClient   AuthorType = "client"
	AuthorInternal AuthorType = "internal"
)

// Comment is feedback left on a proposal.
type Comment struct {
	ID         string     `yaml:"id" json:"id"`
	Author     string     `yaml:"author" json:"author"`
	AuthorType AuthorType `yaml:"author_type" json:"author_type"`
	Content    string     `yaml:"content" json:"content"`
	Timestamp  time.Time  `yaml:"timestamp" json:"timestamp"`
	Resolved   bool       `yaml:"resolved,omitempty" json:"resolved,omitempty"`
}

// Proposal is a client-facing document with a lifecycle.
type Proposal struct {
	ID           string        `yaml:"id" json:"id" validate:"required"`
	Title        string        `yaml:"title" json:"title" validate:"required,max=200"`
	ClientID     string        `yaml:"client_id" json:"client_id" validate:"required"`
	Status       Status        `yaml:"status" json:"status" validate:"required,oneof=Draft Sent Viewed Commented Approved Rejected"`
	TotalViews   int           `yaml:"total_views" json:"total_views" validate:"min=0"`
	Value        float64       `yaml:"value" json:"value" validate:"min=0"`
	Currency     string        `yaml:"currency" json:"currency" validate:"required,iso4217"`
	CreatedAt    time.Time     `yaml:"created_at" json:"created_at"`
	LastActivity time.Time     `yaml:"last_activity" json:"last_activity"`
	PublicLink   string        `yaml:"public_link,omitempty" json:"public_link,omitempty"`
	ThemeID      string        `yaml:"theme_id,omitempty" json:"theme_id,omitempty"`
	Blocks       []block.Block `yaml:"blocks" json:"blocks"`
	Approval     *Approval     `yaml:"approval,omitempty" json:"approval,omitempty"`
	Comments     []Comment     `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// Template is a reusable block layout.
type Template struct {
	ID          string        `yaml:"id" json:"id" validate:"required"`
	Title       string        `yaml:"title" json:"title" validate:"required,max=200"`
	Description string        `yaml:"description" json:"description" validate:"required"`
	Category    string        `yaml:"category" json:"category" validate:"required"`
	Blocks      []block.Block `yaml:"blocks" json:"blocks"`
}

// Validate checks the proposal fields. No state is changed.
func (p Proposal) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateBlocks(p.Blocks)
}

// Validate checks the template fields.
func (t Template) Validate() error {
	if err := validation.Struct(t); err != nil {
		return err
	}
	return validateBlocks(t.Blocks)
}

func validateBlocks(blocks []block.Block) error {
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.ID() == "" {
			return proposaerrors.NewValidationError("blocks", "block without id", nil)
		}
		if seen[b.ID()] {
			return proposaerrors.NewValidationError("blocks", "duplicate block id "+b.ID(), nil)
		}
		seen[b.ID()] = true
	}
	return nil
}

// Clone returns a deep copy of the proposal.
func (p Proposal) Clone() Proposal {
	out := p
	out.Blocks = block.CloneAll(p.Blocks)
	out.Comments = slices.Clone(p.Comments)
	if p.Approval != nil {
		approval := *p.Approval
		out.Approval = &approval
	}
	return out
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.Blocks = block.CloneAll(t.Blocks)
	return out
}
