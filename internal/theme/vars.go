package theme

import (
	"fmt"
	"strings"
)

// Style variable names exposed to rendered documents.
const (
	VarPrimary    = "--primary-color"
	VarBackground = "--bg-color"
	VarText       = "--text-color"
	VarHeading    = "--heading-color"
	VarCard       = "--card-bg-color"
	VarFontHead   = "--font-heading"
	VarFontBody   = "--font-body"
)

// Var is a single CSS custom property.
type Var struct {
	Name  string
	Value string
}

// Vars maps a theme onto the style-variable contract, in a fixed order.
func Vars(t Theme) []Var {
	return []Var{
		{Name: VarPrimary, Value: t.Colors.Primary},
		{Name: VarBackground, Value: t.Colors.Background},
		{Name: VarText, Value: t.Colors.Text},
		{Name: VarHeading, Value: t.Colors.Heading},
		{Name: VarCard, Value: t.Colors.CardBackground},
		{Name: VarFontHead, Value: fontOrDefault(t.Fonts.Heading)},
		{Name: VarFontBody, Value: fontOrDefault(t.Fonts.Body)},
	}
}

// Declarations renders Vars as a semicolon separated declaration list
// suitable for a style attribute.
func Declarations(t Theme) string {
	var b strings.Builder
	for i, v := range Vars(t) {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s: %s;", v.Name, v.Value)
	}
	return b.String()
}

// Background returns the page background value: the gradient when the theme
// is gradient typed and the gradient is set, the background variable
// otherwise.
func Background(t Theme) string {
	if t.Colors.BackgroundType == BackgroundGradient && strings.TrimSpace(t.Colors.BackgroundGradient) != "" {
		return t.Colors.BackgroundGradient
	}
	return "var(" + VarBackground + ")"
}

func fontOrDefault(font string) string {
	if strings.TrimSpace(font) == "" {
		return DefaultFont
	}
	return font
}
