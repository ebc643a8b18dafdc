package theme

import "strings"

// Preset is a named background gradient offered by theme editors.
type Preset struct {
	Name     string
	Gradient string
}

var presets = []Preset{
	{Name: "Sunrise", Gradient: "linear-gradient(to right, #ffecd2 0%, #fcb69f 100%)"},
	{Name: "Ocean", Gradient: "linear-gradient(to right, #2193b0, #6dd5ed)"},
	{Name: "Neon", Gradient: "linear-gradient(to right top, #d16ba5, #c777b9, #ba83ca, #aa8fd8, #9a9ae1, #8aa7ec, #79b3f4, #69bff8, #52cffe, #41dfff, #46eefa, #5ffbf1)"},
	{Name: "Deep Purple", Gradient: "linear-gradient(to right, #8e2de2, #4a00e0)"},
	{Name: "Sunset", Gradient: "linear-gradient(to right, #ff7e5f, #feb47b)"},
	{Name: "Starry Night", Gradient: "linear-gradient(to right top, #051937, #004d7a, #008793, #00bf72, #a8eb12)"},
}

// Presets returns the gradient presets in display order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// PresetGradient looks up a preset by name, ignoring case. Hyphens match
// spaces, so "deep-purple" finds "Deep Purple".
func PresetGradient(name string) (string, bool) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", " ")
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p.Gradient, true
		}
	}
	return "", false
}

// Builtin returns the stock theme collection. Professional is the default.
func Builtin() Collection {
	font := Fonts{Heading: DefaultFont, Body: DefaultFont}
	return Collection{
		{
			ID:   "dark",
			Name: "Dark",
			Colors: Colors{
				Primary:        "#FBBF24",
				Background:     "#111827",
				Text:           "#d1d5db",
				Heading:        "#ffffff",
				CardBackground: "#1f2937",
				BackgroundType: BackgroundSolid,
			},
			Fonts: font,
		},
		{
			ID:   "professional",
			Name: "Professional",
			Colors: Colors{
				Primary:        "#4f46e5",
				Background:     "#f8fafc",
				Text:           "#334155",
				Heading:        "#1e293b",
				CardBackground: "#ffffff",
				BackgroundType: BackgroundSolid,
			},
			Fonts:     font,
			IsDefault: true,
		},
		{
			ID:   "creative",
			Name: "Creative",
			Colors: Colors{
				Primary:        "#db2777",
				Background:     "#fff1f2",
				Text:           "#500724",
				Heading:        "#831843",
				CardBackground: "#ffffff",
				BackgroundType: BackgroundSolid,
			},
			Fonts: font,
		},
		{
			ID:   "ocean",
			Name: "Ocean Gradient",
			Colors: Colors{
				Primary:            "#ffffff",
				Background:         "#2193b0",
				Text:               "#e0f2fe",
				Heading:            "#ffffff",
				CardBackground:     "rgba(255, 255, 255, 0.1)",
				BackgroundType:     BackgroundGradient,
				BackgroundGradient: "linear-gradient(to right, #2193b0, #6dd5ed)",
			},
			Fonts: font,
		},
		{
			ID:   "sunrise",
			Name: "Sunrise Gradient",
			Colors: Colors{
				Primary:            "#c2410c",
				Background:         "#ffecd2",
				Text:               "#44403c",
				Heading:            "#78350f",
				CardBackground:     "rgba(255, 255, 255, 0.6)",
				BackgroundType:     BackgroundGradient,
				BackgroundGradient: "linear-gradient(to right, #ffecd2 0%, #fcb69f 100%)",
			},
			Fonts: font,
		},
	}
}
