package theme

import (
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Collection is an ordered list of themes with at most one default.
type Collection []Theme

// Get returns the theme with the given id.
func (c Collection) Get(id string) (Theme, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Default returns the default-flagged theme, if any.
func (c Collection) Default() (Theme, bool) {
	for _, t := range c {
		if t.IsDefault {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve picks the theme to render with: the exact id when present, else the
// default, else the first theme, else the built-in fallback. It never fails.
func (c Collection) Resolve(id string) Theme {
	if id != "" {
		if t, ok := c.Get(id); ok {
			return t
		}
	}
	if t, ok := c.Default(); ok {
		return t
	}
	if len(c) > 0 {
		return c[0]
	}
	return Fallback()
}

// SetDefault flags the theme with the given id as default and clears the flag
// everywhere else in the same step.
func (c Collection) SetDefault(id string) error {
	if _, ok := c.Get(id); !ok {
		return proposaerrors.NewNotFoundError("theme", id)
	}
	for i := range c {
		c[i].IsDefault = c[i].ID == id
	}
	return nil
}

// Upsert validates t and inserts or replaces it by id. A default-flagged theme
// takes the default away from every other theme.
func (c *Collection) Upsert(t Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	themes := *c
	replaced := false
	for i := range themes {
		if themes[i].ID == t.ID {
			themes[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		themes = append(themes, t)
	}
	if t.IsDefault {
		for i := range themes {
			themes[i].IsDefault = themes[i].ID == t.ID
		}
	}
	*c = themes
	return nil
}

// Remove deletes the theme with the given id.
func (c *Collection) Remove(id string) error {
	themes := *c
	for i := range themes {
		if themes[i].ID == id {
			*c = append(themes[:i:i], themes[i+1:]...)
			return nil
		}
	}
	return proposaerrors.NewNotFoundError("theme", id)
}

// Validate checks every theme and the single-default rule.
func (c Collection) Validate() error {
	defaults := 0
	seen := make(map[string]bool, len(c))
	for _, t := range c {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return proposaerrors.NewValidationError("themes", "duplicate theme id "+t.ID, nil)
		}
		seen[t.ID] = true
		if t.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return proposaerrors.NewValidationError("themes", "more than one default theme", nil)
	}
	return nil
}
