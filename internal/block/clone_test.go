package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsolatesNestedLists(t *testing.T) {
	original, err := NewWithIDs(VariantFourColumnFeatures, seqIDs("f"))
	require.NoError(t, err)

	copied := Clone(original)
	require.Equal(t, original, copied)

	require.NoError(t, Edit(&copied, func(c *FourColumnFeatures) {
		c.Features[0].Title = "Changed"
		c.Features[0].Bullets[0] = "Changed bullet"
	}))

	features, _ := As[FourColumnFeatures](original)
	assert.Equal(t, "Feature 1", features.Features[0].Title)
	assert.Equal(t, "Bullet point", features.Features[0].Bullets[0])
}

func TestCloneAllPreservesOrderAndIDs(t *testing.T) {
	var blocks []Block
	for _, v := range Variants() {
		b, err := NewWithIDs(v, seqIDs(string(v)))
		require.NoError(t, err)
		blocks = append(blocks, b)
	}

	copies := CloneAll(blocks)
	require.Equal(t, blocks, copies)

	require.NoError(t, Edit(&copies[len(copies)-1], func(c *PriceTable) {
		c.Packages[0].Features[0] = "mutated"
	}))
	table, _ := As[PriceTable](blocks[len(blocks)-1])
	assert.Equal(t, "Feature 1", table.Packages[0].Features[0])

	assert.Nil(t, CloneAll(nil))
}

func TestCloneUnknownCopiesNestedFields(t *testing.T) {
	b := FromContent("u1", Unknown{Tag: "CAROUSEL", Fields: map[string]any{
		"text":   "hi",
		"slides": []any{map[string]any{"title": "one"}},
	}})

	copied := Clone(b)
	u, _ := As[Unknown](copied)
	u.Fields["slides"].([]any)[0].(map[string]any)["title"] = "changed"

	orig, _ := As[Unknown](b)
	assert.Equal(t, "one", orig.Fields["slides"].([]any)[0].(map[string]any)["title"])
}
