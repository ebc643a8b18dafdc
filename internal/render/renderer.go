// Package render turns documents into themed HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/icons"
	"github.com/alexisbeaulieu97/proposa/internal/money"
	"github.com/alexisbeaulieu97/proposa/internal/signature"
	"github.com/alexisbeaulieu97/proposa/internal/theme"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Document is everything the renderer reads. Rendering never modifies it.
type Document struct {
	Title      string
	ClientName string
	Blocks     []block.Block
	Theme      theme.Theme
	Currency   string
}

// Public adds the approval section of the share view.
type Public struct {
	ApproveURL string
	Approved   bool
	SignedAt   time.Time
	SignerName string
	// Signature is a PNG data URL.
	Signature string
}

// Options configures a Renderer.
type Options struct {
	Icons  *icons.Registry
	Locale string
}

// Renderer renders documents with html/template. It is safe for concurrent
// use.
type Renderer struct {
	tmpl   *template.Template
	icons  *icons.Registry
	locale string
	lang   string
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	reg := opts.Icons
	if reg == nil {
		reg = icons.Default()
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	base, _ := tag.Base()

	r := &Renderer{icons: reg, locale: locale, lang: base.String()}
	printer := message.NewPrinter(tag)

	funcs := template.FuncMap{
		"icon":       reg.Lookup,
		"side":       ImageSide,
		"paragraphs": paragraphs,
		"layout":     bannerLayout,
		"number": func(v float64) string {
			return printer.Sprint(v)
		},
	}

	tmpl, err := template.New("proposa").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// ImageSide is the layout class of the row at index i in an alternating
// image/text block: even rows put the image on the right.
func ImageSide(i int) string {
	if i%2 == 0 {
		return "image-right"
	}
	return "image-left"
}

type blockData struct {
	ID      string
	Index   int
	Content block.Content
	Money   *money.Formatter
}

type fallbackData struct {
	ID   string
	Tag  block.Variant
	Text string
}

type pageData struct {
	Lang       string
	Title      string
	ClientName string
	ThemeID    string
	ThemeCSS   template.CSS
	Blocks     []template.HTML
	Public     *publicData
}

type publicData struct {
	ApproveURL string
	Approved   bool
	SignedAt   string
	SignerName string
	Signature  template.URL
	Width      int
	Height     int
	Ink        string
	InkWidth   float64
}

// Render writes doc as a standalone HTML page, print stylesheet included.
func (r *Renderer) Render(w io.Writer, doc Document) error {
	return r.render(w, doc, nil)
}

// RenderPublic writes the share view of doc, with the approval section.
func (r *Renderer) RenderPublic(w io.Writer, doc Document, pub Public) error {
	data := &publicData{
		ApproveURL: pub.ApproveURL,
		Approved:   pub.Approved,
		SignerName: pub.SignerName,
		Signature:  signatureURL(pub.Signature),
		Width:      signature.DefaultWidth,
		Height:     signature.DefaultHeight,
		Ink:        fmt.Sprintf("#%02x%02x%02x", signature.InkColor.R, signature.InkColor.G, signature.InkColor.B),
		InkWidth:   signature.InkWidth,
	}
	if !pub.SignedAt.IsZero() {
		data.SignedAt = pub.SignedAt.Format("January 2, 2006 15:04 MST")
	}
	return r.render(w, doc, data)
}

// RenderNotFound writes the page shown for unknown share tokens.
func (r *Renderer) RenderNotFound(w io.Writer) error {
	var buf bytes.Buffer
	data := pageData{Lang: r.lang, ThemeCSS: themeCSS(theme.Fallback())}
	if err := r.tmpl.ExecuteTemplate(&buf, "notfound", data); err != nil {
		return fmt.Errorf("render not found page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderBlock renders a single block fragment. Blocks without a dedicated
// template render as a fallback showing their tag and text.
func (r *Renderer) RenderBlock(b block.Block, index int, formatter *money.Formatter) (template.HTML, error) {
	var buf bytes.Buffer
	name := "block:" + string(b.Variant())

	if _, unknown := b.Content().(block.Unknown); unknown || r.tmpl.Lookup(name) == nil {
		data := fallbackData{ID: b.ID(), Tag: b.Variant(), Text: fallbackText(b.Content())}
		if err := r.tmpl.ExecuteTemplate(&buf, "block:fallback", data); err != nil {
			return "", fmt.Errorf("render block %s: %w", b.ID(), err)
		}
		return template.HTML(buf.String()), nil
	}

	data := blockData{ID: b.ID(), Index: index, Content: b.Content(), Money: formatter}
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render block %s (%s): %w", b.ID(), b.Variant(), err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) render(w io.Writer, doc Document, pub *publicData) error {
	formatter, err := money.NewFormatter(doc.Currency, r.locale)
	if err != nil {
		return err
	}

	fragments := make([]template.HTML, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		fragment, err := r.RenderBlock(b, i, formatter)
		if err != nil {
			return err
		}
		fragments = append(fragments, fragment)
	}

	data := pageData{
		Lang:       r.lang,
		Title:      doc.Title,
		ClientName: doc.ClientName,
		ThemeID:    doc.Theme.ID,
		ThemeCSS:   themeCSS(doc.Theme),
		Blocks:     fragments,
		Public:     pub,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func fallbackText(c block.Content) string {
	if u, ok := c.(block.Unknown); ok {
		return u.Text()
	}
	return ""
}

var cssReplacer = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "", "\\", "", "\"", "")

func cssValue(v string) string {
	return strings.TrimSpace(cssReplacer.Replace(v))
}

// themeCSS maps the theme onto custom properties on :root and sets the page
// background once.
func themeCSS(t theme.Theme) template.CSS {
	var b strings.Builder
	b.WriteString(":root {")
	for _, v := range theme.Vars(t) {
		fmt.Fprintf(&b, " %s: %s;", v.Name, cssValue(v.Value))
	}
	b.WriteString(" }\nbody { background: ")
	b.WriteString(cssValue(theme.Background(t)))
	b.WriteString("; background-attachment: fixed; }")
	return template.CSS(b.String())
}

func signatureURL(s string) template.URL {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(s, prefix) {
		return ""
	}
	for _, r := range s[len(prefix):] {
		if !isBase64(r) {
			return ""
		}
	}
	return template.URL(s)
}

func isBase64(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '/' || r == '='
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func bannerLayout(l block.BannerLayout) string {
	if l.Valid() {
		return string(l)
	}
	return string(block.LayoutLeft)
}
