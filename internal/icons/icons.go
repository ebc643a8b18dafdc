// Package icons maps symbolic icon names to glyphs usable in both the HTML
// renderer and the terminal editor.
package icons

import (
	"sort"
	"strings"
)

// Fallback is rendered for names the registry does not know.
const Fallback = "•"

// Registry is a read-only name → glyph lookup.
type Registry struct {
	glyphs map[string]string
	names  []string
}

// New builds a registry from the supplied name → glyph table.
func New(glyphs map[string]string) *Registry {
	r := &Registry{glyphs: make(map[string]string, len(glyphs))}
	for name, glyph := range glyphs {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r.glyphs[name] = glyph
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Default returns the built-in registry.
func Default() *Registry {
	return New(builtin)
}

// Glyph returns the glyph for name and whether the name is known.
func (r *Registry) Glyph(name string) (string, bool) {
	if r == nil {
		return Fallback, false
	}
	glyph, ok := r.glyphs[name]
	if !ok {
		return Fallback, false
	}
	return glyph, true
}

// Lookup returns the glyph for name, or Fallback.
func (r *Registry) Lookup(name string) string {
	glyph, _ := r.Glyph(name)
	return glyph
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Glyph(name)
	return ok
}

// Names lists every registered name in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

var builtin = map[string]string{
	"Award":          "🏆",
	"BarChart":       "📊",
	"Bell":           "🔔",
	"BookOpen":       "📖",
	"Bot":            "🤖",
	"Briefcase":      "💼",
	"Camera":         "📷",
	"Check":          "✓",
	"CheckCircle":    "✅",
	"Clock":          "🕒",
	"Code":           "⌨",
	"CopyPlus":       "⧉",
	"CreditCard":     "💳",
	"DollarSign":     "$",
	"Download":       "⬇",
	"ExternalLink":   "↗",
	"Eye":            "👁",
	"FileText":       "📄",
	"GitBranch":      "⑂",
	"Headphones":     "🎧",
	"Image":          "🖼",
	"LayoutTemplate": "▦",
	"Lightbulb":      "💡",
	"Mail":           "✉",
	"MapPin":         "📍",
	"MessageSquare":  "💬",
	"Music":          "🎵",
	"Package":        "📦",
	"PackageCheck":   "📦",
	"Palette":        "🎨",
	"Phone":          "☎",
	"Settings":       "⚙",
	"Shield":         "🛡",
	"ShieldCheck":    "🛡",
	"Signal":         "📶",
	"Star":           "★",
	"Target":         "🎯",
	"ThumbsUp":       "👍",
	"Truck":          "🚚",
	"Users":          "👥",
	"Video":          "🎬",
	"Zap":            "⚡",
}
