package editor

import (
	"github.com/alexisbeaulieu97/proposa/internal/icons"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// IconPicker offers the registry's icon names to one pending selection.
type IconPicker struct {
	icons    *icons.Registry
	onSelect func(string) error
}

// Open arms the picker. A second Open replaces the pending callback.
func (p *IconPicker) Open(onSelect func(name string) error) {
	p.onSelect = onSelect
}

// OpenFor arms the picker to write into an icon field.
func (p *IconPicker) OpenFor(field Field) error {
	if field.Kind != KindIcon {
		return proposaerrors.NewValidationError(field.Key, "field is not an icon", nil)
	}
	p.Open(field.Set)
	return nil
}

// IsOpen reports whether a selection is pending.
func (p *IconPicker) IsOpen() bool { return p.onSelect != nil }

// Options lists every selectable icon name.
func (p *IconPicker) Options() []string { return p.icons.Names() }

// Glyph returns the glyph shown for name.
func (p *IconPicker) Glyph(name string) string { return p.icons.Lookup(name) }

// Select delivers name to the pending callback and closes the picker. Unknown
// names are rejected and leave the picker open.
func (p *IconPicker) Select(name string) error {
	if p.onSelect == nil {
		return proposaerrors.NewValidationError("icon", "icon picker is not open", nil)
	}
	if !p.icons.Has(name) {
		return proposaerrors.NewValidationError("icon", "unknown icon "+name, nil)
	}
	fn := p.onSelect
	p.onSelect = nil
	return fn(name)
}

// Close discards the pending selection.
func (p *IconPicker) Close() { p.onSelect = nil }
