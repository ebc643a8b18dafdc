// Package editor mutates a private working copy of a proposal or template.
// Nothing reaches the caller's document until Commit is called.
package editor

import (
	"context"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/icons"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Kind tells proposal sessions from template sessions.
type Kind string

const (
	KindProposal Kind = "proposal"
	KindTemplate Kind = "template"
)

// Generator produces prose for a prompt. Implementations report failures in
// the returned text rather than as errors.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Options configures a Session.
type Options struct {
	Icons     *icons.Registry
	Generator Generator
	NewID     block.IDFunc
	Now       func() time.Time
}

// Session is an editing session over one document. It is not safe for
// concurrent use.
type Session struct {
	kind     Kind
	proposal document.Proposal
	template document.Template
	dirty    bool

	icons     *icons.Registry
	generator Generator
	newID     block.IDFunc
	now       func() time.Time
	picker    *IconPicker
}

// NewProposalSession starts editing a deep copy of p.
func NewProposalSession(p document.Proposal, opts Options) *Session {
	s := newSession(KindProposal, opts)
	s.proposal = p.Clone()
	return s
}

// NewTemplateSession starts editing a deep copy of t.
func NewTemplateSession(t document.Template, opts Options) *Session {
	s := newSession(KindTemplate, opts)
	s.template = t.Clone()
	return s
}

func newSession(kind Kind, opts Options) *Session {
	s := &Session{
		kind:      kind,
		icons:     opts.Icons,
		generator: opts.Generator,
		newID:     opts.NewID,
		now:       opts.Now,
	}
	if s.icons == nil {
		s.icons = icons.Default()
	}
	if s.newID == nil {
		s.newID = block.NewID
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	s.picker = &IconPicker{icons: s.icons}
	return s
}

// Kind reports what the session edits.
func (s *Session) Kind() Kind { return s.kind }

// Dirty reports whether the working copy changed since the session started
// or was last committed.
func (s *Session) Dirty() bool { return s.dirty }

// Title returns the working title.
func (s *Session) Title() string {
	if s.kind == KindTemplate {
		return s.template.Title
	}
	return s.proposal.Title
}

// SetTitle changes the working title.
func (s *Session) SetTitle(title string) {
	if s.kind == KindTemplate {
		s.template.Title = title
	} else {
		s.proposal.Title = title
	}
	s.touch()
}

// SetClient changes the client of a proposal session.
func (s *Session) SetClient(clientID string) error {
	if s.kind != KindProposal {
		return proposaerrors.NewValidationError("client_id", "templates have no client", nil)
	}
	s.proposal.ClientID = clientID
	s.touch()
	return nil
}

// SetTheme changes the theme of a proposal session.
func (s *Session) SetTheme(themeID string) error {
	if s.kind != KindProposal {
		return proposaerrors.NewValidationError("theme_id", "templates have no theme", nil)
	}
	s.proposal.ThemeID = themeID
	s.touch()
	return nil
}

// SetDescription changes the description of a template session.
func (s *Session) SetDescription(description string) error {
	if s.kind != KindTemplate {
		return proposaerrors.NewValidationError("description", "proposals have no description", nil)
	}
	s.template.Description = description
	s.touch()
	return nil
}

// SetCategory changes the category of a template session.
func (s *Session) SetCategory(category string) error {
	if s.kind != KindTemplate {
		return proposaerrors.NewValidationError("category", "proposals have no category", nil)
	}
	s.template.Category = category
	s.touch()
	return nil
}

// Proposal returns a deep copy of the working proposal for previews.
func (s *Session) Proposal() document.Proposal { return s.proposal.Clone() }

// Template returns a deep copy of the working template for previews.
func (s *Session) Template() document.Template { return s.template.Clone() }

// Blocks returns a deep copy of the working blocks in document order.
func (s *Session) Blocks() []block.Block {
	return block.CloneAll(*s.blocks())
}

// AddBlock appends a block of the given variant with default content.
func (s *Session) AddBlock(v block.Variant) (block.Block, error) {
	b, err := block.NewWithIDs(v, s.newID)
	if err != nil {
		return block.Block{}, proposaerrors.NewValidationError("type", err.Error(), err)
	}
	blocks := s.blocks()
	*blocks = append(*blocks, b)
	s.touch()
	return block.Clone(b), nil
}

// DeleteBlock removes the block with the given id.
func (s *Session) DeleteBlock(id string) error {
	blocks := s.blocks()
	i := block.Index(*blocks, id)
	if i < 0 {
		return proposaerrors.NewNotFoundError("block", id)
	}
	*blocks = append((*blocks)[:i:i], (*blocks)[i+1:]...)
	s.touch()
	return nil
}

// ApplyTemplate replaces the working title and blocks with a deep copy of
// tpl. Only proposal sessions accept it.
func (s *Session) ApplyTemplate(tpl document.Template) error {
	if s.kind != KindProposal {
		return proposaerrors.NewValidationError("template", "templates cannot apply another template", nil)
	}
	s.proposal.ApplyTemplate(tpl, s.now())
	s.touch()
	return nil
}

// Validate checks what a save requires: a title, and a client for proposals.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.Title()) == "" {
		return proposaerrors.NewValidationError("title", "title is required", nil)
	}
	if s.kind == KindProposal && strings.TrimSpace(s.proposal.ClientID) == "" {
		return proposaerrors.NewValidationError("client_id", "a client must be selected", nil)
	}
	return nil
}

// CommitProposal validates the working proposal and returns a deep copy for
// saving. LastActivity is bumped.
func (s *Session) CommitProposal() (document.Proposal, error) {
	if s.kind != KindProposal {
		return document.Proposal{}, proposaerrors.NewValidationError("kind", "session edits a template", nil)
	}
	if err := s.Validate(); err != nil {
		return document.Proposal{}, err
	}
	s.proposal.LastActivity = s.now()
	s.dirty = false
	return s.proposal.Clone(), nil
}

// CommitTemplate validates the working template and returns a deep copy for
// saving.
func (s *Session) CommitTemplate() (document.Template, error) {
	if s.kind != KindTemplate {
		return document.Template{}, proposaerrors.NewValidationError("kind", "session edits a proposal", nil)
	}
	if err := s.Validate(); err != nil {
		return document.Template{}, err
	}
	s.dirty = false
	return s.template.Clone(), nil
}

// Generate asks the generator for prose and writes it into a text field of
// a block, replacing the field's value.
func (s *Session) Generate(ctx context.Context, blockID, fieldKey, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", proposaerrors.NewValidationError("prompt", "prompt is required", nil)
	}
	if s.generator == nil {
		return "", proposaerrors.NewValidationError("prompt", "no text generator configured", nil)
	}
	form, err := s.Form(blockID)
	if err != nil {
		return "", err
	}
	field, ok := form.Lookup(fieldKey)
	if !ok {
		return "", proposaerrors.NewNotFoundError("field", fieldKey)
	}
	if !field.Generative() {
		return "", proposaerrors.NewValidationError(fieldKey, "field does not take generated text", nil)
	}
	text := s.generator.Generate(ctx, prompt)
	if err := field.Set(text); err != nil {
		return "", err
	}
	return text, nil
}

// Icons returns the picker bound to this session.
func (s *Session) Icons() *IconPicker { return s.picker }

func (s *Session) blocks() *[]block.Block {
	if s.kind == KindTemplate {
		return &s.template.Blocks
	}
	return &s.proposal.Blocks
}

func (s *Session) block(id string) (block.Block, bool) {
	blocks := *s.blocks()
	i := block.Index(blocks, id)
	if i < 0 {
		return block.Block{}, false
	}
	return blocks[i], true
}

func (s *Session) touch() { s.dirty = true }

// editBlock runs fn against the working block with the given id.
func (s *Session) editBlock(id string, fn func(*block.Block) error) error {
	blocks := *s.blocks()
	i := block.Index(blocks, id)
	if i < 0 {
		return proposaerrors.NewNotFoundError("block", id)
	}
	if err := fn(&blocks[i]); err != nil {
		return err
	}
	s.touch()
	return nil
}

// editList is editBlock for item edits. fn reports whether the item was
// found; a miss leaves the block untouched.
func (s *Session) editList(blockID, itemID string, fn func(*block.Block) (bool, error)) error {
	blocks := *s.blocks()
	i := block.Index(blocks, blockID)
	if i < 0 {
		return proposaerrors.NewNotFoundError("block", blockID)
	}
	next := blocks[i]
	found, err := fn(&next)
	if err != nil {
		return err
	}
	if !found {
		return proposaerrors.NewNotFoundError("item", itemID)
	}
	blocks[i] = next
	s.touch()
	return nil
}
