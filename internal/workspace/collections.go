package workspace

import (
	"strings"

	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/theme"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Clients lists every client.
func (s *Store) Clients() []document.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]document.Client(nil), s.data.Clients...)
}

// Client looks a client up by id.
func (s *Store) Client(id string) (document.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return document.Client{}, proposaerrors.NewNotFoundError("client", id)
}

// ClientName returns the display name for a client id, or "" when unknown.
func (s *Store) ClientName(id string) string {
	c, err := s.Client(id)
	if err != nil {
		return ""
	}
	if c.Company != "" {
		return c.Name + " (" + c.Company + ")"
	}
	return c.Name
}

// AddClient validates and stores a new client. An empty id is derived from
// the client name. The stored client is returned.
func (s *Store) AddClient(c document.Client) (document.Client, error) {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = NewSlugID("client", c.Name)
	}
	if err := c.Validate(); err != nil {
		return document.Client{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Clients {
		if existing.ID == c.ID {
			return document.Client{}, proposaerrors.NewValidationError("id", "client "+c.ID+" already exists", nil)
		}
	}
	s.data.Clients = append(s.data.Clients, c)
	return c, nil
}

// Themes returns a copy of the theme collection.
func (s *Store) Themes() theme.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(theme.Collection(nil), s.data.Themes...)
}

// ResolveTheme picks the theme a document renders with.
func (s *Store) ResolveTheme(id string) theme.Theme {
	return s.Themes().Resolve(id)
}

// SetDefaultTheme makes id the only default theme.
func (s *Store) SetDefaultTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Themes.SetDefault(id)
}

// UpsertTheme validates and stores t.
func (s *Store) UpsertTheme(t theme.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Themes.Upsert(t)
}

// RemoveTheme deletes a theme. Proposals pointing at it fall back through
// theme resolution.
func (s *Store) RemoveTheme(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Themes.Remove(id)
}

// Templates lists every template.
func (s *Store) Templates() []document.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]document.Template, 0, len(s.data.Templates))
	for _, t := range s.data.Templates {
		out = append(out, t.Clone())
	}
	return out
}

// Template looks a template up by id.
func (s *Store) Template(id string) (document.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.data.Templates {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return document.Template{}, proposaerrors.NewNotFoundError("template", id)
}

// AddTemplate validates and stores a new template.
func (s *Store) AddTemplate(t document.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.Templates {
		if existing.ID == t.ID {
			return proposaerrors.NewValidationError("id", "template "+t.ID+" already exists", nil)
		}
	}
	s.data.Templates = append(s.data.Templates, t.Clone())
	return nil
}

// UpdateTemplate replaces a stored template.
func (s *Store) UpdateTemplate(t document.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Templates {
		if s.data.Templates[i].ID == t.ID {
			s.data.Templates[i] = t.Clone()
			return nil
		}
	}
	return proposaerrors.NewNotFoundError("template", t.ID)
}

// RemoveTemplate deletes a template. Proposals created from it are untouched.
func (s *Store) RemoveTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.data.Templates {
		if t.ID == id {
			s.data.Templates = append(s.data.Templates[:i:i], s.data.Templates[i+1:]...)
			return nil
		}
	}
	return proposaerrors.NewNotFoundError("template", id)
}

// Proposals lists every proposal.
func (s *Store) Proposals() []document.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]document.Proposal, 0, len(s.data.Proposals))
	for _, p := range s.data.Proposals {
		out = append(out, p.Clone())
	}
	return out
}

// Proposal looks a proposal up by id.
func (s *Store) Proposal(id string) (document.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.proposalIndex(id); i >= 0 {
		return s.data.Proposals[i].Clone(), nil
	}
	return document.Proposal{}, proposaerrors.NewNotFoundError("proposal", id)
}

// ProposalByLink resolves a public share token.
func (s *Store) ProposalByLink(token string) (document.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.linkIndex(token); i >= 0 {
		return s.data.Proposals[i].Clone(), nil
	}
	return document.Proposal{}, proposaerrors.NewNotFoundError("proposal link", token)
}

// AddProposal validates and stores a new proposal. Its client must exist.
func (s *Store) AddProposal(p document.Proposal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proposalIndex(p.ID) >= 0 {
		return proposaerrors.NewValidationError("id", "proposal "+p.ID+" already exists", nil)
	}
	if err := s.checkProposalRefs(p); err != nil {
		return err
	}
	s.data.Proposals = append(s.data.Proposals, p.Clone())
	return nil
}

// UpdateProposal replaces a stored proposal.
func (s *Store) UpdateProposal(p document.Proposal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.proposalIndex(p.ID)
	if i < 0 {
		return proposaerrors.NewNotFoundError("proposal", p.ID)
	}
	if err := s.checkProposalRefs(p); err != nil {
		return err
	}
	s.data.Proposals[i] = p.Clone()
	return nil
}

// MutateProposal applies fn to the stored proposal under the write lock.
// The change is kept only when fn succeeds.
func (s *Store) MutateProposal(id string, fn func(*document.Proposal) error) (document.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateAt(s.proposalIndex(id), id, fn)
}

// MutateProposalByLink is MutateProposal addressed by share token.
func (s *Store) MutateProposalByLink(token string, fn func(*document.Proposal) error) (document.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateAt(s.linkIndex(token), token, fn)
}

func (s *Store) mutateAt(i int, key string, fn func(*document.Proposal) error) (document.Proposal, error) {
	if i < 0 {
		return document.Proposal{}, proposaerrors.NewNotFoundError("proposal", key)
	}
	next := s.data.Proposals[i].Clone()
	if err := fn(&next); err != nil {
		return document.Proposal{}, err
	}
	if err := next.Validate(); err != nil {
		return document.Proposal{}, err
	}
	s.data.Proposals[i] = next
	return next.Clone(), nil
}

// RemoveProposal deletes a proposal.
func (s *Store) RemoveProposal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.proposalIndex(id)
	if i < 0 {
		return proposaerrors.NewNotFoundError("proposal", id)
	}
	s.data.Proposals = append(s.data.Proposals[:i:i], s.data.Proposals[i+1:]...)
	return nil
}

func (s *Store) proposalIndex(id string) int {
	for i := range s.data.Proposals {
		if s.data.Proposals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) linkIndex(token string) int {
	if token == "" {
		return -1
	}
	for i := range s.data.Proposals {
		if s.data.Proposals[i].PublicLink == token {
			return i
		}
	}
	return -1
}

func (s *Store) checkProposalRefs(p document.Proposal) error {
	found := false
	for _, c := range s.data.Clients {
		if c.ID == p.ClientID {
			found = true
			break
		}
	}
	if !found {
		return proposaerrors.NewNotFoundError("client", p.ClientID)
	}
	if p.PublicLink != "" {
		if i := s.linkIndex(p.PublicLink); i >= 0 && s.data.Proposals[i].ID != p.ID {
			return proposaerrors.NewValidationError("public_link", "link "+p.PublicLink+" is already in use", nil)
		}
	}
	return nil
}
