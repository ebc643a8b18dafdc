package block

import "slices"

// Clone returns a deep copy of b. The copy shares no slices or maps with the
// original.
func Clone(b Block) Block {
	if b.content == nil {
		return Block{id: b.id}
	}
	return Block{id: b.id, content: b.content.cloneContent()}
}

// CloneAll deep copies a block sequence, preserving order and ids.
func CloneAll(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = Clone(b)
	}
	return out
}

func (c Cover) cloneContent() Content         { return c }
func (c SectionHeader) cloneContent() Content { return c }
func (c PlainText) cloneContent() Content     { return c }
func (c PlainImage) cloneContent() Content    { return c }
func (c CallToAction) cloneContent() Content  { return c }
func (c FooterLight) cloneContent() Content   { return c }
func (c Post) cloneContent() Content          { return c }

func (c LineItems) cloneContent() Content {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c TwoColumnImageText) cloneContent() Content {
	c.Columns = slices.Clone(c.Columns)
	return c
}

func (c FourColumnFeatures) cloneContent() Content {
	c.Features = slices.Clone(c.Features)
	for i := range c.Features {
		c.Features[i].Bullets = slices.Clone(c.Features[i].Bullets)
	}
	return c
}

func (c FourColumnIconCards) cloneContent() Content {
	c.Cards = slices.Clone(c.Cards)
	return c
}

func (c TextWithRightImage) cloneContent() Content {
	c.Rows = slices.Clone(c.Rows)
	return c
}

func (c IncludedItemsWithPrice) cloneContent() Content {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c ProductCategories) cloneContent() Content {
	c.Categories = slices.Clone(c.Categories)
	return c
}

func (c PromoBanner) cloneContent() Content {
	c.Banners = slices.Clone(c.Banners)
	return c
}

func (c FooterDark) cloneContent() Content {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c Portfolio) cloneContent() Content {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c Gallery) cloneContent() Content {
	c.Images = slices.Clone(c.Images)
	return c
}

func (c PriceList) cloneContent() Content {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c PriceTable) cloneContent() Content {
	c.Packages = slices.Clone(c.Packages)
	for i := range c.Packages {
		c.Packages[i].Features = slices.Clone(c.Packages[i].Features)
	}
	return c
}

func (u Unknown) cloneContent() Content {
	return Unknown{Tag: u.Tag, Fields: cloneMap(u.Fields)}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
