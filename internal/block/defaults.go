package block

import "fmt"

const (
	placeholderImage = "https://picsum.photos/seed/proposa/800/600"
	coverImage       = "https://i.imgur.com/gY23AhT.jpeg"
	loremShort       = "Describe this point in a sentence or two."
)

// DefaultContent returns the starting content for a variant. Every field the
// renderer or the editor reads is populated; list items receive ids from ids.
func DefaultContent(v Variant, ids IDFunc) (Content, error) {
	switch v {
	case VariantCover:
		return Cover{
			SuperTitle: "PROPOSAL",
			Title:      "Title",
			Subtitle:   "Description",
			ImageURL:   coverImage,
			Details: [3]Detail{
				{Label: "Client", Value: "Client name"},
				{Label: "Activity", Value: "Activity"},
				{Label: "Theme", Value: "Theme"},
			},
		}, nil
	case VariantSectionHeader:
		return SectionHeader{Text: "New Section"}, nil
	case VariantPlainText:
		return PlainText{Text: "Write your content here."}, nil
	case VariantPlainImage:
		return PlainImage{ImageURL: placeholderImage, Caption: ""}, nil
	case VariantLineItems:
		return LineItems{
			Items: []LineItem{
				{Key: Key{ID: ids()}, Description: "Service", Quantity: 1, UnitPrice: 0},
			},
		}, nil
	case VariantTwoColumnImageText:
		cols := make([]Column, 2)
		for i := range cols {
			cols[i] = Column{Key: Key{ID: ids()}, Title: fmt.Sprintf("Column %d", i+1), Text: loremShort, ImageURL: placeholderImage}
		}
		return TwoColumnImageText{Columns: cols}, nil
	case VariantFourColumnFeatures:
		features := make([]Feature, 4)
		for i := range features {
			features[i] = Feature{
				Key:      Key{ID: ids()},
				Title:    fmt.Sprintf("Feature %d", i+1),
				ImageURL: placeholderImage,
				Bullets:  []string{"Bullet point"},
			}
		}
		return FourColumnFeatures{Features: features}, nil
	case VariantFourColumnIconCards:
		icons := []string{"Award", "Lightbulb", "Users", "Star"}
		cards := make([]IconCard, len(icons))
		for i, icon := range icons {
			cards[i] = IconCard{Key: Key{ID: ids()}, Title: fmt.Sprintf("Card %d", i+1), Text: loremShort, Icon: icon}
		}
		return FourColumnIconCards{Cards: cards}, nil
	case VariantTextWithRightImage:
		rows := make([]ImageRow, 2)
		for i := range rows {
			rows[i] = ImageRow{Key: Key{ID: ids()}, Title: fmt.Sprintf("Highlight %d", i+1), Text: loremShort, ImageURL: placeholderImage}
		}
		return TextWithRightImage{Rows: rows}, nil
	case VariantIncludedItemsWithPrice:
		labels := []string{"Initial consultation", "Design and planning", "Delivery"}
		items := make([]IncludedItem, len(labels))
		for i, text := range labels {
			items[i] = IncludedItem{Key: Key{ID: ids()}, Icon: "CheckCircle", Text: text}
		}
		return IncludedItemsWithPrice{
			Items:         items,
			Price:         0,
			PriceTitle:    "Total Cost",
			PriceSubtitle: "One-time payment",
		}, nil
	case VariantProductCategories:
		cats := make([]ProductCategory, 3)
		for i := range cats {
			cats[i] = ProductCategory{Key: Key{ID: ids()}, Title: fmt.Sprintf("Category %d", i+1), Subtitle: "Explore", ImageURL: placeholderImage}
		}
		return ProductCategories{Categories: cats}, nil
	case VariantPromoBanner:
		return PromoBanner{Banners: []Banner{{
			Key:        Key{ID: ids()},
			SuperTitle: "NEW",
			Title:      "Promotion title",
			LinkText:   "Learn more",
			LinkURL:    "#",
			ImageURL:   placeholderImage,
			Layout:     LayoutLeft,
		}}}, nil
	case VariantCallToAction:
		return CallToAction{
			Title:      "Ready to get started?",
			Subtitle:   "Let's work together.",
			ButtonText: "Contact us",
			ButtonURL:  "#",
			ImageURL:   placeholderImage,
		}, nil
	case VariantFooterLight:
		return FooterLight{
			Phone:   "+1 555 0100",
			Email:   "hello@example.com",
			Address: "123 Main St",
			LogoURL: placeholderImage,
		}, nil
	case VariantFooterDark:
		return FooterDark{Items: []FooterItem{
			{Key: Key{ID: ids()}, Icon: "Phone", Title: "Call us", Text: "+1 555 0100"},
			{Key: Key{ID: ids()}, Icon: "Mail", Title: "Write to us", Text: "hello@example.com"},
			{Key: Key{ID: ids()}, Icon: "MapPin", Title: "Visit us", Text: "123 Main St"},
		}}, nil
	case VariantPost:
		return Post{Title: "Post title", ImageURL: placeholderImage, Body: "Write the post body here."}, nil
	case VariantPortfolio:
		items := make([]PortfolioItem, 3)
		for i := range items {
			items[i] = PortfolioItem{Key: Key{ID: ids()}, Title: fmt.Sprintf("Project %d", i+1), Description: loremShort, ImageURL: placeholderImage}
		}
		return Portfolio{Items: items}, nil
	case VariantGallery:
		images := make([]GalleryImage, 3)
		for i := range images {
			images[i] = GalleryImage{Key: Key{ID: ids()}, ImageURL: placeholderImage, Caption: fmt.Sprintf("Image %d", i+1)}
		}
		return Gallery{Images: images}, nil
	case VariantPriceList:
		return PriceList{Items: []PriceListItem{
			{Key: Key{ID: ids()}, Service: "Service", Description: loremShort, Price: 0},
		}}, nil
	case VariantPriceTable:
		names := []string{"Basic", "Standard", "Premium"}
		packages := make([]Package, len(names))
		for i, name := range names {
			packages[i] = Package{
				Key:        Key{ID: ids()},
				Name:       name,
				Price:      50,
				Frequency:  "/month",
				Features:   []string{"Feature 1"},
				Featured:   i == 1,
				ButtonText: "Choose",
				ButtonURL:  "#",
			}
		}
		return PriceTable{Packages: packages}, nil
	default:
		return nil, fmt.Errorf("unknown block variant %q", v)
	}
}
