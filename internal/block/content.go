package block

// Content is the closed set of block content shapes. Each implementation
// belongs to exactly one Variant.
type Content interface {
	Variant() Variant
	cloneContent() Content
}

// Key carries the identity of a list item. It is assigned when the item is
// appended and never changes afterwards.
type Key struct {
	ID string `yaml:"id" json:"id"`
}

// ItemID returns the item identity.
func (k Key) ItemID() string { return k.ID }

func (k *Key) setItemID(id string) { k.ID = id }

// Detail is a label/value pair shown on the cover.
type Detail struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Cover struct {
	SuperTitle string    `yaml:"super_title" json:"super_title"`
	Title      string    `yaml:"title" json:"title"`
	Subtitle   string    `yaml:"subtitle" json:"subtitle"`
	ImageURL   string    `yaml:"image_url" json:"image_url"`
	Details    [3]Detail `yaml:"details" json:"details"`
}

type SectionHeader struct {
	Text string `yaml:"text" json:"text"`
}

type PlainText struct {
	Text string `yaml:"text" json:"text"`
}

type PlainImage struct {
	ImageURL string `yaml:"image_url" json:"image_url"`
	Caption  string `yaml:"caption" json:"caption"`
}

// LineItem is one priced row of a LineItems block.
type LineItem struct {
	Key         `yaml:",inline"`
	Description string  `yaml:"description" json:"description"`
	Quantity    float64 `yaml:"quantity" json:"quantity"`
	UnitPrice   float64 `yaml:"unit_price" json:"unit_price"`
	Taxable     bool    `yaml:"taxable" json:"taxable"`
}

// Amount is quantity × unit price.
func (li LineItem) Amount() float64 { return li.Quantity * li.UnitPrice }

type LineItems struct {
	Items   []LineItem `yaml:"items" json:"items"`
	TaxRate float64    `yaml:"tax_rate" json:"tax_rate"`
}

// Subtotal sums every line amount.
func (c LineItems) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Amount()
	}
	return total
}

// Tax applies TaxRate (a percentage) to taxable lines only.
func (c LineItems) Tax() float64 {
	var taxable float64
	for _, item := range c.Items {
		if item.Taxable {
			taxable += item.Amount()
		}
	}
	return taxable * c.TaxRate / 100
}

// Total is Subtotal plus Tax.
func (c LineItems) Total() float64 { return c.Subtotal() + c.Tax() }

type Column struct {
	Key      `yaml:",inline"`
	Title    string `yaml:"title" json:"title"`
	Text     string `yaml:"text" json:"text"`
	ImageURL string `yaml:"image_url" json:"image_url"`
}

type TwoColumnImageText struct {
	Columns []Column `yaml:"columns" json:"columns"`
}

type Feature struct {
	Key      `yaml:",inline"`
	Title    string   `yaml:"title" json:"title"`
	Icon     string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	ImageURL string   `yaml:"image_url" json:"image_url"`
	Bullets  []string `yaml:"bullets" json:"bullets"`
}

type FourColumnFeatures struct {
	Features []Feature `yaml:"features" json:"features"`
}

type IconCard struct {
	Key   `yaml:",inline"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
	Icon  string `yaml:"icon" json:"icon"`
}

type FourColumnIconCards struct {
	Cards []IconCard `yaml:"cards" json:"cards"`
}

// ImageRow is one alternating row of a TextWithRightImage block.
type ImageRow struct {
	Key      `yaml:",inline"`
	Title    string `yaml:"title" json:"title"`
	Text     string `yaml:"text" json:"text"`
	ImageURL string `yaml:"image_url" json:"image_url"`
	Icon     string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

type TextWithRightImage struct {
	Rows []ImageRow `yaml:"rows" json:"rows"`
}

type IncludedItem struct {
	Key  `yaml:",inline"`
	Icon string `yaml:"icon" json:"icon"`
	Text string `yaml:"text" json:"text"`
}

type IncludedItemsWithPrice struct {
	Items         []IncludedItem `yaml:"items" json:"items"`
	Price         float64        `yaml:"price" json:"price"`
	PriceTitle    string         `yaml:"price_title" json:"price_title"`
	PriceSubtitle string         `yaml:"price_subtitle" json:"price_subtitle"`
}

type ProductCategory struct {
	Key      `yaml:",inline"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	ImageURL string `yaml:"image_url" json:"image_url"`
}

type ProductCategories struct {
	Categories []ProductCategory `yaml:"categories" json:"categories"`
}

// BannerLayout positions a promo banner's copy.
type BannerLayout string

const (
	LayoutLeft   BannerLayout = "left"
	LayoutCenter BannerLayout = "center"
	LayoutRight  BannerLayout = "right"
)

// Valid reports whether the layout is one of left, center or right.
func (l BannerLayout) Valid() bool {
	switch l {
	case LayoutLeft, LayoutCenter, LayoutRight:
		return true
	}
	return false
}

type Banner struct {
	Key        `yaml:",inline"`
	SuperTitle string       `yaml:"super_title" json:"super_title"`
	Title      string       `yaml:"title" json:"title"`
	LinkText   string       `yaml:"link_text" json:"link_text"`
	LinkURL    string       `yaml:"link_url" json:"link_url"`
	ImageURL   string       `yaml:"image_url" json:"image_url"`
	Layout     BannerLayout `yaml:"layout" json:"layout"`
}

type PromoBanner struct {
	Banners []Banner `yaml:"banners" json:"banners"`
}

type CallToAction struct {
	Title      string `yaml:"title" json:"title"`
	Subtitle   string `yaml:"subtitle" json:"subtitle"`
	ButtonText string `yaml:"button_text" json:"button_text"`
	ButtonURL  string `yaml:"button_url" json:"button_url"`
	ImageURL   string `yaml:"image_url" json:"image_url"`
}

type FooterLight struct {
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Address string `yaml:"address" json:"address"`
	LogoURL string `yaml:"logo_url" json:"logo_url"`
}

type FooterItem struct {
	Key   `yaml:",inline"`
	Icon  string `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

type FooterDark struct {
	Items []FooterItem `yaml:"items" json:"items"`
}

type Post struct {
	Title    string `yaml:"title" json:"title"`
	ImageURL string `yaml:"image_url" json:"image_url"`
	Body     string `yaml:"body" json:"body"`
}

type PortfolioItem struct {
	Key         `yaml:",inline"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"image_url" json:"image_url"`
}

type Portfolio struct {
	Items []PortfolioItem `yaml:"items" json:"items"`
}

type GalleryImage struct {
	Key      `yaml:",inline"`
	ImageURL string `yaml:"image_url" json:"image_url"`
	Caption  string `yaml:"caption" json:"caption"`
}

type Gallery struct {
	Images []GalleryImage `yaml:"images" json:"images"`
}

type PriceListItem struct {
	Key         `yaml:",inline"`
	Service     string  `yaml:"service" json:"service"`
	Description string  `yaml:"description" json:"description"`
	Price       float64 `yaml:"price" json:"price"`
}

type PriceList struct {
	Items []PriceListItem `yaml:"items" json:"items"`
}

// Package is one column of a PriceTable.
type Package struct {
	Key        `yaml:",inline"`
	Name       string   `yaml:"name" json:"name"`
	Price      float64  `yaml:"price" json:"price"`
	Frequency  string   `yaml:"frequency" json:"frequency"`
	Features   []string `yaml:"features" json:"features"`
	Featured   bool     `yaml:"featured" json:"featured"`
	ButtonText string   `yaml:"button_text" json:"button_text"`
	ButtonURL  string   `yaml:"button_url" json:"button_url"`
}

type PriceTable struct {
	Packages []Package `yaml:"packages" json:"packages"`
}

// Unknown holds content whose tag this build does not recognise. The raw
// fields are preserved so the document survives a load/save cycle.
type Unknown struct {
	Tag    Variant
	Fields map[string]any
}

// Text returns the "text" field when present.
func (u Unknown) Text() string {
	if s, ok := u.Fields["text"].(string); ok {
		return s
	}
	return ""
}

func (Cover) Variant() Variant                  { return VariantCover }
func (SectionHeader) Variant() Variant          { return VariantSectionHeader }
func (PlainText) Variant() Variant              { return VariantPlainText }
func (PlainImage) Variant() Variant             { return VariantPlainImage }
func (LineItems) Variant() Variant              { return VariantLineItems }
func (TwoColumnImageText) Variant() Variant     { return VariantTwoColumnImageText }
func (FourColumnFeatures) Variant() Variant     { return VariantFourColumnFeatures }
func (FourColumnIconCards) Variant() Variant    { return VariantFourColumnIconCards }
func (TextWithRightImage) Variant() Variant     { return VariantTextWithRightImage }
func (IncludedItemsWithPrice) Variant() Variant { return VariantIncludedItemsWithPrice }
func (ProductCategories) Variant() Variant      { return VariantProductCategories }
func (PromoBanner) Variant() Variant            { return VariantPromoBanner }
func (CallToAction) Variant() Variant           { return VariantCallToAction }
func (FooterLight) Variant() Variant            { return VariantFooterLight }
func (FooterDark) Variant() Variant             { return VariantFooterDark }
func (Post) Variant() Variant                   { return VariantPost }
func (Portfolio) Variant() Variant              { return VariantPortfolio }
func (Gallery) Variant() Variant                { return VariantGallery }
func (PriceList) Variant() Variant              { return VariantPriceList }
func (PriceTable) Variant() Variant             { return VariantPriceTable }
func (u Unknown) Variant() Variant              { return u.Tag }
