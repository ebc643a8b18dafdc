package block

// Variant is the tag identifying which content shape a block holds.
type Variant string

const (
	VariantCover                  Variant = "COVER"
	VariantSectionHeader          Variant = "SECTION_HEADER"
	VariantPlainText              Variant = "TEXT"
	VariantPlainImage             Variant = "IMAGE"
	VariantLineItems              Variant = "ITEMS"
	VariantTwoColumnImageText     Variant = "TWO_COLUMN_IMAGE_TEXT"
	VariantFourColumnFeatures     Variant = "FOUR_COLUMN_FEATURES"
	VariantFourColumnIconCards    Variant = "FOUR_COLUMN_ICON_CARDS"
	VariantTextWithRightImage     Variant = "TEXT_WITH_RIGHT_IMAGE"
	VariantIncludedItemsWithPrice Variant = "INCLUDED_ITEMS_WITH_PRICE"
	VariantProductCategories      Variant = "PRODUCT_CATEGORIES"
	VariantPromoBanner            Variant = "PROMO_BANNER"
	VariantCallToAction           Variant = "CALL_TO_ACTION"
	VariantFooterLight            Variant = "FOOTER"
	VariantFooterDark             Variant = "FOOTER_DARK"
	VariantPost                   Variant = "POST"
	VariantPortfolio              Variant = "PORTFOLIO"
	VariantGallery                Variant = "GALLERY"
	VariantPriceList              Variant = "PRICE_LIST"
	VariantPriceTable             Variant = "PRICE_TABLE"
)

var variantOrder = []Variant{
	VariantCover,
	VariantSectionHeader,
	VariantPlainText,
	VariantPlainImage,
	VariantLineItems,
	VariantTwoColumnImageText,
	VariantFourColumnFeatures,
	VariantFourColumnIconCards,
	VariantTextWithRightImage,
	VariantIncludedItemsWithPrice,
	VariantProductCategories,
	VariantPromoBanner,
	VariantCallToAction,
	VariantFooterLight,
	VariantFooterDark,
	VariantPost,
	VariantPortfolio,
	VariantGallery,
	VariantPriceList,
	VariantPriceTable,
}

var variantLabels = map[Variant]string{
	VariantCover:                  "Cover",
	VariantSectionHeader:          "Section Header",
	VariantPlainText:              "Text",
	VariantPlainImage:             "Image",
	VariantLineItems:              "Line Items",
	VariantTwoColumnImageText:     "Two Columns (Image and Text)",
	VariantFourColumnFeatures:     "Four Columns (Features)",
	VariantFourColumnIconCards:    "Four Columns (Icon Cards)",
	VariantTextWithRightImage:     "Text with Image",
	VariantIncludedItemsWithPrice: "Included Items with Price",
	VariantProductCategories:      "Product Categories",
	VariantPromoBanner:            "Promo Banner",
	VariantCallToAction:           "Call to Action",
	VariantFooterLight:            "Footer (Light)",
	VariantFooterDark:             "Footer (Dark)",
	VariantPost:                   "Post",
	VariantPortfolio:              "Portfolio",
	VariantGallery:                "Gallery",
	VariantPriceList:              "Price List",
	VariantPriceTable:             "Price Table",
}

// Variants lists every known variant in palette order.
func Variants() []Variant {
	return append([]Variant(nil), variantOrder...)
}

// Known reports whether v is one of the built-in variants.
func (v Variant) Known() bool {
	_, ok := variantLabels[v]
	return ok
}

// Label returns the human readable name of the variant.
func (v Variant) Label() string {
	if label, ok := variantLabels[v]; ok {
		return label
	}
	return string(v)
}

func (v Variant) String() string {
	return string(v)
}
