package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/theme"
)

func seqIDs(prefix string) block.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{})
	require.NoError(t, err)
	return r
}

func renderDoc(t *testing.T, r *Renderer, doc Document) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, doc))
	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return page
}

func mustBlock(t *testing.T, v block.Variant) block.Block {
	t.Helper()
	b, err := block.NewWithIDs(v, seqIDs(string(v)))
	require.NoError(t, err)
	return b
}

func TestRenderEveryDefaultBlockUnderEveryTheme(t *testing.T) {
	r := newRenderer(t)

	for _, th := range theme.Builtin() {
		for _, v := range block.Variants() {
			t.Run(th.ID+"/"+string(v), func(t *testing.T) {
				b := mustBlock(t, v)
				page := renderDoc(t, r, Document{Title: "Doc", Blocks: []block.Block{b}, Theme: th})

				section := page.Find(`[data-variant="` + string(v) + `"]`)
				assert.Equal(t, 1, section.Length())
				assert.Zero(t, page.Find(".block-fallback").Length())

				css := page.Find("style#theme").Text()
				assert.Contains(t, css, "--primary-color: "+th.Colors.Primary+";")
				assert.Contains(t, css, "--font-heading:")
				html, err := page.Html()
				require.NoError(t, err)
				assert.NotContains(t, html, "ZgotmplZ")
			})
		}
	}
}

func TestRenderReflectsEditedContent(t *testing.T) {
	r := newRenderer(t)
	cover := mustBlock(t, block.VariantCover)
	require.NoError(t, block.Edit(&cover, func(c *block.Cover) {
		c.Title = "Graduation Party 2025"
		c.Details[0].Value = "Aragon Polytechnic"
	}))
	cards := mustBlock(t, block.VariantFourColumnIconCards)
	require.NoError(t, block.Edit(&cards, func(c *block.FourColumnIconCards) {
		c.Cards = block.UpdateAt(c.Cards, 2, func(card *block.IconCard) { card.Title = "Lighting" })
	}))

	page := renderDoc(t, r, Document{Title: "Doc", Blocks: []block.Block{cover, cards}, Theme: theme.Fallback()})

	assert.Equal(t, "Graduation Party 2025", page.Find(".cover h1").Text())
	assert.Contains(t, page.Find(".cover-details").Text(), "Aragon Polytechnic")
	assert.Equal(t, "Lighting", page.Find(".icon-card h3").Eq(2).Text())
}

func TestTextWithRightImageAlternates(t *testing.T) {
	r := newRenderer(t)
	b := block.FromContent("rows", block.TextWithRightImage{Rows: []block.ImageRow{
		{Key: block.Key{ID: "a"}, Title: "A"},
		{Key: block.Key{ID: "b"}, Title: "B"},
		{Key: block.Key{ID: "c"}, Title: "C"},
		{Key: block.Key{ID: "d"}, Title: "D"},
	}})

	page := renderDoc(t, r, Document{Title: "Doc", Blocks: []block.Block{b}, Theme: theme.Fallback()})

	rows := page.Find(".rows .row")
	require.Equal(t, 4, rows.Length())
	expected := []string{"image-right", "image-left", "image-right", "image-left"}
	rows.Each(func(i int, s *goquery.Selection) {
		assert.True(t, s.HasClass(expected[i]), "row %d", i)
	})
}

func TestThemeSwitchLeavesBlocksUntouched(t *testing.T) {
	r := newRenderer(t)
	themes := theme.Builtin()
	var blocks []block.Block
	for _, v := range block.Variants() {
		blocks = append(blocks, mustBlock(t, v))
	}
	snapshot := block.CloneAll(blocks)

	dark := renderDoc(t, r, Document{Title: "Doc", Blocks: blocks, Theme: themes.Resolve("dark")})
	ocean := renderDoc(t, r, Document{Title: "Doc", Blocks: blocks, Theme: themes.Resolve("ocean")})

	assert.Equal(t, snapshot, blocks)

	darkMain, err := dark.Find("main").Html()
	require.NoError(t, err)
	oceanMain, err := ocean.Find("main").Html()
	require.NoError(t, err)
	assert.Equal(t, darkMain, oceanMain)
	assert.NotEqual(t, dark.Find("style#theme").Text(), ocean.Find("style#theme").Text())
}

func TestGradientBackground(t *testing.T) {
	r := newRenderer(t)
	ocean, _ := theme.Builtin().Get("ocean")
	dark, _ := theme.Builtin().Get("dark")

	page := renderDoc(t, r, Document{Title: "Doc", Theme: ocean})
	assert.Contains(t, page.Find("style#theme").Text(), "background: linear-gradient(to right, #2193b0, #6dd5ed);")

	page = renderDoc(t, r, Document{Title: "Doc", Theme: dark})
	assert.Contains(t, page.Find("style#theme").Text(), "background: var(--bg-color);")
}

func TestUnknownBlockFallback(t *testing.T) {
	r := newRenderer(t)
	b := block.FromContent("u1", block.Unknown{Tag: "CAROUSEL", Fields: map[string]any{"text": "Slides here"}})

	page := renderDoc(t, r, Document{Title: "Doc", Blocks: []block.Block{b}, Theme: theme.Fallback()})

	fallback := page.Find(".block-fallback")
	require.Equal(t, 1, fallback.Length())
	attr, _ := fallback.Attr("data-variant")
	assert.Equal(t, "CAROUSEL", attr)
	assert.Contains(t, fallback.Text(), "CAROUSEL")
	assert.Contains(t, fallback.Text(), "Slides here")
}

func TestPrintStylesheetAndToolbar(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Document{Title: "Doc", Theme: theme.Fallback()}))

	out := buf.String()
	assert.Contains(t, out, "@media print")
	assert.Contains(t, out, ".no-print { display: none !important; }")

	page, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	button := page.Find(".toolbar.no-print button.download")
	require.Equal(t, 1, button.Length())
	onclick, _ := button.Attr("onclick")
	assert.Equal(t, "window.print()", onclick)
}

func TestLineItemsTotals(t *testing.T) {
	r := newRenderer(t)
	b := block.FromContent("li", block.LineItems{
		TaxRate: 10,
		Items: []block.LineItem{
			{Key: block.Key{ID: "1"}, Description: "Design", Quantity: 2, UnitPrice: 1000, Taxable: true},
		},
	})

	page := renderDoc(t, r, Document{Title: "Doc", Blocks: []block.Block{b}, Theme: theme.Fallback(), Currency: "USD"})

	assert.Contains(t, page.Find(".subtotal").Text(), "2,000")
	assert.Contains(t, page.Find(".tax").Text(), "200")
	assert.Contains(t, page.Find(".total").Text(), "2,200")
}

func TestRenderEscapesContent(t *testing.T) {
	r := newRenderer(t)
	b := block.FromContent("t", block.PlainText{Text: `<script>alert("x")</script>`})

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Document{Title: "<b>Title</b>", Blocks: []block.Block{b}, Theme: theme.Fallback()}))

	out := buf.String()
	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;b&gt;Title&lt;/b&gt;")
}

func TestRenderRejectsUnknownCurrency(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, Document{Title: "Doc", Theme: theme.Fallback(), Currency: "NOPE"})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderPublicShowsApprovalPad(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.RenderPublic(&buf, Document{Title: "Doc", Theme: theme.Fallback()}, Public{ApproveURL: "/p/tok/approve"}))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Find("#approval canvas#signature-pad").Length())
	assert.Contains(t, page.Find("#approval script").Text(), `"/p/tok/approve"`)
}

func TestRenderPublicShowsApprovedState(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	pub := Public{
		Approved:   true,
		SignedAt:   time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		SignerName: "Ana",
		Signature:  "data:image/png;base64,iVBORw0KGgo=",
	}
	require.NoError(t, r.RenderPublic(&buf, Document{Title: "Doc", Theme: theme.Fallback()}, pub))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Zero(t, page.Find("canvas").Length())
	assert.Contains(t, page.Find(".approved-at").Text(), "Ana")
	src, _ := page.Find("img.signature").Attr("src")
	assert.Equal(t, pub.Signature, src)
}

func TestSignatureURLRejectsNonPNG(t *testing.T) {
	assert.Empty(t, string(signatureURL("javascript:alert(1)")))
	assert.Empty(t, string(signatureURL("data:image/png;base64,<script>")))
}

func TestRenderNotFound(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.RenderNotFound(&buf))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Proposal not found", page.Find("h1").Text())
}

func TestImageSide(t *testing.T) {
	assert.Equal(t, "image-right", ImageSide(0))
	assert.Equal(t, "image-left", ImageSide(1))
	assert.Equal(t, "image-right", ImageSide(2))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, paragraphs("one\r\n\r\n\n\ntwo\n"))
	assert.Nil(t, paragraphs("  "))
}
