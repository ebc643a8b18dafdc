package block

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type wireBlock struct {
	ID      string  `yaml:"id" json:"id"`
	Type    Variant `yaml:"type" json:"type"`
	Content any     `yaml:"content" json:"content"`
}

type contentCodec struct {
	yaml func(*yaml.Node) (Content, error)
	json func(json.RawMessage) (Content, error)
}

func codecFor[C Content]() contentCodec {
	return contentCodec{
		yaml: func(node *yaml.Node) (Content, error) {
			var c C
			if node == nil {
				return c, nil
			}
			if err := node.Decode(&c); err != nil {
				return nil, err
			}
			return c, nil
		},
		json: func(raw json.RawMessage) (Content, error) {
			var c C
			if len(raw) == 0 || string(raw) == "null" {
				return c, nil
			}
			if err := json.Unmarshal(raw, &c); err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

var codecs = map[Variant]contentCodec{
	VariantCover:                  codecFor[Cover](),
	VariantSectionHeader:          codecFor[SectionHeader](),
	VariantPlainText:              codecFor[PlainText](),
	VariantPlainImage:             codecFor[PlainImage](),
	VariantLineItems:              codecFor[LineItems](),
	VariantTwoColumnImageText:     codecFor[TwoColumnImageText](),
	VariantFourColumnFeatures:     codecFor[FourColumnFeatures](),
	VariantFourColumnIconCards:    codecFor[FourColumnIconCards](),
	VariantTextWithRightImage:     codecFor[TextWithRightImage](),
	VariantIncludedItemsWithPrice: codecFor[IncludedItemsWithPrice](),
	VariantProductCategories:      codecFor[ProductCategories](),
	VariantPromoBanner:            codecFor[PromoBanner](),
	VariantCallToAction:           codecFor[CallToAction](),
	VariantFooterLight:            codecFor[FooterLight](),
	VariantFooterDark:             codecFor[FooterDark](),
	VariantPost:                   codecFor[Post](),
	VariantPortfolio:              codecFor[Portfolio](),
	VariantGallery:                codecFor[Gallery](),
	VariantPriceList:              codecFor[PriceList](),
	VariantPriceTable:             codecFor[PriceTable](),
}

func wireContent(c Content) any {
	if u, ok := c.(Unknown); ok {
		return u.Fields
	}
	return c
}

// MarshalYAML encodes the block as {id, type, content}.
func (b Block) MarshalYAML() (interface{}, error) {
	return wireBlock{ID: b.id, Type: b.Variant(), Content: wireContent(b.content)}, nil
}

// UnmarshalYAML decodes the base fields first and then the content shape
// selected by type. Unrecognised types decode into Unknown.
func (b *Block) UnmarshalYAML(value *yaml.Node) error {
	type baseBlock struct {
		ID      string    `yaml:"id"`
		Type    Variant   `yaml:"type"`
		Content yaml.Node `yaml:"content"`
	}

	var base baseBlock
	if err := value.Decode(&base); err != nil {
		return err
	}
	if base.Type == "" {
		return fmt.Errorf("line %d: block %q has no type", value.Line, base.ID)
	}

	var node *yaml.Node
	if !base.Content.IsZero() {
		node = &base.Content
	}

	var content Content
	if codec, ok := codecs[base.Type]; ok {
		decoded, err := codec.yaml(node)
		if err != nil {
			return fmt.Errorf("block %q (%s): %w", base.ID, base.Type, err)
		}
		content = decoded
	} else {
		fields := map[string]any{}
		if node != nil {
			if err := node.Decode(&fields); err != nil {
				return fmt.Errorf("block %q (%s): %w", base.ID, base.Type, err)
			}
		}
		content = Unknown{Tag: base.Type, Fields: fields}
	}

	b.id = base.ID
	b.content = content
	return nil
}

// MarshalJSON encodes the block as {id, type, content}.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireBlock{ID: b.id, Type: b.Variant(), Content: wireContent(b.content)})
}

// UnmarshalJSON mirrors UnmarshalYAML.
func (b *Block) UnmarshalJSON(data []byte) error {
	var base struct {
		ID      string          `json:"id"`
		Type    Variant         `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	if base.Type == "" {
		return fmt.Errorf("block %q has no type", base.ID)
	}

	var content Content
	if codec, ok := codecs[base.Type]; ok {
		decoded, err := codec.json(base.Content)
		if err != nil {
			return fmt.Errorf("block %q (%s): %w", base.ID, base.Type, err)
		}
		content = decoded
	} else {
		fields := map[string]any{}
		if len(base.Content) > 0 && string(base.Content) != "null" {
			if err := json.Unmarshal(base.Content, &fields); err != nil {
				return fmt.Errorf("block %q (%s): %w", base.ID, base.Type, err)
			}
		}
		content = Unknown{Tag: base.Type, Fields: fields}
	}

	b.id = base.ID
	b.content = content
	return nil
}
