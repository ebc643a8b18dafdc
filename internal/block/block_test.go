package block

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestNewBuildsDefaultsForEveryVariant(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			b, err := New(v)
			require.NoError(t, err)
			assert.NotEmpty(t, b.ID())
			assert.Equal(t, v, b.Variant())
			require.NotNil(t, b.Content())
			assert.True(t, v.Known())
			assert.NotEqual(t, string(v), v.Label())
		})
	}
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	_, err := New(Variant("CAROUSEL"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAROUSEL")
}

func TestNewWithIDsAssignsDistinctItemIDs(t *testing.T) {
	b, err := NewWithIDs(VariantFourColumnIconCards, seqIDs("id"))
	require.NoError(t, err)

	cards, ok := As[FourColumnIconCards](b)
	require.True(t, ok)
	require.Len(t, cards.Cards, 4)

	seen := map[string]bool{b.ID(): true}
	for _, card := range cards.Cards {
		assert.NotEmpty(t, card.ID)
		assert.False(t, seen[card.ID], "duplicate id %s", card.ID)
		seen[card.ID] = true
	}
}

func TestDefaultContentMatchesVariantShape(t *testing.T) {
	ids := seqIDs("x")

	content, err := DefaultContent(VariantCover, ids)
	require.NoError(t, err)
	cover := content.(Cover)
	assert.Equal(t, "PROPOSAL", cover.SuperTitle)
	assert.Equal(t, "Client", cover.Details[0].Label)

	content, err = DefaultContent(VariantIncludedItemsWithPrice, ids)
	require.NoError(t, err)
	included := content.(IncludedItemsWithPrice)
	assert.Zero(t, included.Price)
	assert.Equal(t, "Total Cost", included.PriceTitle)

	content, err = DefaultContent(VariantPromoBanner, ids)
	require.NoError(t, err)
	assert.Equal(t, LayoutLeft, content.(PromoBanner).Banners[0].Layout)

	content, err = DefaultContent(VariantPriceTable, ids)
	require.NoError(t, err)
	table := content.(PriceTable)
	require.Len(t, table.Packages, 3)
	assert.Equal(t, 50.0, table.Packages[0].Price)
	assert.Equal(t, []string{"Feature 1"}, table.Packages[0].Features)
	assert.True(t, table.Packages[1].Featured)
}

func TestEditMergesScalarFields(t *testing.T) {
	b, err := NewWithIDs(VariantCover, seqIDs("c"))
	require.NoError(t, err)
	id := b.ID()

	err = Edit(&b, func(c *Cover) {
		c.Title = "Acme Rollout"
	})
	require.NoError(t, err)

	cover, _ := As[Cover](b)
	assert.Equal(t, "Acme Rollout", cover.Title)
	assert.Equal(t, "Description", cover.Subtitle)
	assert.Equal(t, id, b.ID())
	assert.Equal(t, VariantCover, b.Variant())
}

func TestEditRejectsVariantMismatch(t *testing.T) {
	b, err := New(VariantPlainText)
	require.NoError(t, err)

	called := false
	err = Edit(&b, func(*Cover) { called = true })
	require.ErrorIs(t, err, ErrVariantMismatch)
	assert.False(t, called)
	assert.Equal(t, VariantPlainText, b.Variant())
}

func TestIndexFindsBlockByID(t *testing.T) {
	a := FromContent("a", PlainText{Text: "one"})
	b := FromContent("b", SectionHeader{Text: "two"})
	blocks := []Block{a, b}

	assert.Equal(t, 1, Index(blocks, "b"))
	assert.Equal(t, -1, Index(blocks, "missing"))
}

func TestLineItemsTotals(t *testing.T) {
	items := LineItems{
		TaxRate: 10,
		Items: []LineItem{
			{Description: "Design", Quantity: 2, UnitPrice: 100, Taxable: true},
			{Description: "Hosting", Quantity: 1, UnitPrice: 50},
		},
	}
	assert.InDelta(t, 250, items.Subtotal(), 0.001)
	assert.InDelta(t, 20, items.Tax(), 0.001)
	assert.InDelta(t, 270, items.Total(), 0.001)
}

func TestUnknownText(t *testing.T) {
	u := Unknown{Tag: "CAROUSEL", Fields: map[string]any{"text": "hello", "n": 3}}
	assert.Equal(t, Variant("CAROUSEL"), u.Variant())
	assert.Equal(t, "hello", u.Text())
	assert.Empty(t, Unknown{Tag: "X"}.Text())
	assert.False(t, Variant("CAROUSEL").Known())
	assert.Equal(t, "CAROUSEL", Variant("CAROUSEL").Label())
}
