// Package theme models visual themes and the style-variable contract the
// renderer consumes.
package theme

import (
	"github.com/alexisbeaulieu97/proposa/internal/validation"
)

// BackgroundType selects between a flat background color and a gradient.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
)

// DefaultFont is the font stack used when a theme leaves fonts empty.
const DefaultFont = "'Plus Jakarta Sans', system-ui, sans-serif"

// Colors holds the palette of a theme. BackgroundGradient is ignored unless
// BackgroundType is gradient.
type Colors struct {
	Primary            string         `yaml:"primary" json:"primary" validate:"required,csscolor"`
	Background         string         `yaml:"background" json:"background" validate:"required,csscolor"`
	Text               string         `yaml:"text" json:"text" validate:"required,csscolor"`
	Heading            string         `yaml:"heading" json:"heading" validate:"required,csscolor"`
	CardBackground     string         `yaml:"card_background" json:"card_background" validate:"required,csscolor"`
	BackgroundType     BackgroundType `yaml:"background_type" json:"background_type" validate:"omitempty,oneof=solid gradient"`
	BackgroundGradient string         `yaml:"background_gradient,omitempty" json:"background_gradient,omitempty" validate:"gradient"`
}

// Fonts holds CSS font-family values.
type Fonts struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

// Theme is a named set of colors and fonts.
type Theme struct {
	ID        string `yaml:"id" json:"id" validate:"required"`
	Name      string `yaml:"name" json:"name" validate:"required,max=100"`
	Colors    Colors `yaml:"colors" json:"colors"`
	Fonts     Fonts  `yaml:"fonts" json:"fonts"`
	IsDefault bool   `yaml:"is_default,omitempty" json:"is_default,omitempty"`
}

// Validate checks ids, names and color values.
func (t Theme) Validate() error {
	return validation.Struct(t)
}

// Fallback is returned by Resolve when a collection is empty.
func Fallback() Theme {
	return Theme{
		ID:   "builtin",
		Name: "Professional",
		Colors: Colors{
			Primary:        "#4f46e5",
			Background:     "#f8fafc",
			Text:           "#334155",
			Heading:        "#1e293b",
			CardBackground: "#ffffff",
			BackgroundType: BackgroundSolid,
		},
		Fonts: Fonts{Heading: DefaultFont, Body: DefaultFont},
	}
}
