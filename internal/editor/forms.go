package editor

import (
	"fmt"

	"github.com/alexisbeaulieu97/proposa/internal/block"
)

type formBuilder func(s *Session, blockID string, form *Form)

var formBuilders = map[block.Variant]formBuilder{
	block.VariantCover:                  coverForm,
	block.VariantSectionHeader:          sectionHeaderForm,
	block.VariantPlainText:              plainTextForm,
	block.VariantPlainImage:             plainImageForm,
	block.VariantLineItems:              lineItemsForm,
	block.VariantTwoColumnImageText:     twoColumnForm,
	block.VariantFourColumnFeatures:     featuresForm,
	block.VariantFourColumnIconCards:    iconCardsForm,
	block.VariantTextWithRightImage:     imageRowsForm,
	block.VariantIncludedItemsWithPrice: includedItemsForm,
	block.VariantProductCategories:      categoriesForm,
	block.VariantPromoBanner:            bannersForm,
	block.VariantCallToAction:           callToActionForm,
	block.VariantFooterLight:            footerLightForm,
	block.VariantFooterDark:             footerDarkForm,
	block.VariantPost:                   postForm,
	block.VariantPortfolio:              portfolioForm,
	block.VariantGallery:                galleryForm,
	block.VariantPriceList:              priceListForm,
	block.VariantPriceTable:             priceTableForm,
}

const newImage = "https://picsum.photos/800/600"

func coverForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "super_title", "Super title", plainText, func(c *block.Cover) *string { return &c.SuperTitle }),
		scalar(s, id, "title", "Title", plainText, func(c *block.Cover) *string { return &c.Title }),
		scalar(s, id, "subtitle", "Subtitle", longText, func(c *block.Cover) *string { return &c.Subtitle }),
		scalar(s, id, "image_url", "Image URL", urlText, func(c *block.Cover) *string { return &c.ImageURL }),
	}
	for i := range 3 {
		form.Fields = append(form.Fields,
			scalar(s, id, fmt.Sprintf("details.%d.label", i), fmt.Sprintf("Detail %d label", i+1), plainText,
				func(c *block.Cover) *string { return &c.Details[i].Label }),
			scalar(s, id, fmt.Sprintf("details.%d.value", i), fmt.Sprintf("Detail %d value", i+1), plainText,
				func(c *block.Cover) *string { return &c.Details[i].Value }),
		)
	}
}

func sectionHeaderForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "text", "Heading", plainText, func(c *block.SectionHeader) *string { return &c.Text }),
	}
}

func plainTextForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "text", "Text", longText, func(c *block.PlainText) *string { return &c.Text }),
	}
}

func plainImageForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "image_url", "Image URL", urlText, func(c *block.PlainImage) *string { return &c.ImageURL }),
		scalar(s, id, "caption", "Caption", plainText, func(c *block.PlainImage) *string { return &c.Caption }),
	}
}

func lineItemsForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "tax_rate", "Tax rate (%)", number, func(c *block.LineItems) *float64 { return &c.TaxRate }),
	}
	list := listRef[block.LineItems, block.LineItem]{key: "items", label: "Line items", items: func(c *block.LineItems) *[]block.LineItem { return &c.Items }}
	form.Lists = []List{bindList[block.LineItems, block.LineItem, *block.LineItem](s, id, list,
		func() block.LineItem { return block.LineItem{Description: "New service", Quantity: 1} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.LineItems, block.LineItem, *block.LineItem](s, id, list, item, "description", "Description", plainText, func(p *block.LineItem) *string { return &p.Description }),
				itemScalar[block.LineItems, block.LineItem, *block.LineItem](s, id, list, item, "quantity", "Quantity", number, func(p *block.LineItem) *float64 { return &p.Quantity }),
				itemScalar[block.LineItems, block.LineItem, *block.LineItem](s, id, list, item, "unit_price", "Unit price", number, func(p *block.LineItem) *float64 { return &p.UnitPrice }),
				itemScalar[block.LineItems, block.LineItem, *block.LineItem](s, id, list, item, "taxable", "Taxable", flag, func(p *block.LineItem) *bool { return &p.Taxable }),
			}, nil
		})}
}

func twoColumnForm(s *Session, id string, form *Form) {
	list := listRef[block.TwoColumnImageText, block.Column]{key: "columns", label: "Columns", items: func(c *block.TwoColumnImageText) *[]block.Column { return &c.Columns }}
	form.Lists = []List{bindList[block.TwoColumnImageText, block.Column, *block.Column](s, id, list,
		func() block.Column { return block.Column{Title: "New title", Text: "New text", ImageURL: newImage} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.TwoColumnImageText, block.Column, *block.Column](s, id, list, item, "title", "Title", plainText, func(p *block.Column) *string { return &p.Title }),
				itemScalar[block.TwoColumnImageText, block.Column, *block.Column](s, id, list, item, "text", "Text", longText, func(p *block.Column) *string { return &p.Text }),
				itemScalar[block.TwoColumnImageText, block.Column, *block.Column](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.Column) *string { return &p.ImageURL }),
			}, nil
		})}
}

func featuresForm(s *Session, id string, form *Form) {
	list := listRef[block.FourColumnFeatures, block.Feature]{key: "features", label: "Features", items: func(c *block.FourColumnFeatures) *[]block.Feature { return &c.Features }}
	form.Lists = []List{bindList[block.FourColumnFeatures, block.Feature, *block.Feature](s, id, list,
		func() block.Feature {
			return block.Feature{Title: "New feature", ImageURL: newImage, Bullets: []string{"Item 1"}}
		},
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.FourColumnFeatures, block.Feature, *block.Feature](s, id, list, item, "title", "Title", plainText, func(p *block.Feature) *string { return &p.Title }),
				itemScalar[block.FourColumnFeatures, block.Feature, *block.Feature](s, id, list, item, "icon", "Icon", iconCodec(s.icons, true), func(p *block.Feature) *string { return &p.Icon }),
				itemScalar[block.FourColumnFeatures, block.Feature, *block.Feature](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.Feature) *string { return &p.ImageURL }),
			}, []Strings{
				itemStrings[block.FourColumnFeatures, block.Feature, *block.Feature](s, id, list, item, "bullets", "Bullet points", func(p *block.Feature) *[]string { return &p.Bullets }),
			}
		})}
}

func iconCardsForm(s *Session, id string, form *Form) {
	list := listRef[block.FourColumnIconCards, block.IconCard]{key: "cards", label: "Cards", items: func(c *block.FourColumnIconCards) *[]block.IconCard { return &c.Cards }}
	form.Lists = []List{bindList[block.FourColumnIconCards, block.IconCard, *block.IconCard](s, id, list,
		func() block.IconCard { return block.IconCard{Title: "New title", Text: "New description", Icon: "Lightbulb"} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.FourColumnIconCards, block.IconCard, *block.IconCard](s, id, list, item, "title", "Title", plainText, func(p *block.IconCard) *string { return &p.Title }),
				itemScalar[block.FourColumnIconCards, block.IconCard, *block.IconCard](s, id, list, item, "text", "Text", longText, func(p *block.IconCard) *string { return &p.Text }),
				itemScalar[block.FourColumnIconCards, block.IconCard, *block.IconCard](s, id, list, item, "icon", "Icon", iconCodec(s.icons, false), func(p *block.IconCard) *string { return &p.Icon }),
			}, nil
		})}
}

func imageRowsForm(s *Session, id string, form *Form) {
	list := listRef[block.TextWithRightImage, block.ImageRow]{key: "rows", label: "Rows", items: func(c *block.TextWithRightImage) *[]block.ImageRow { return &c.Rows }}
	form.Lists = []List{bindList[block.TextWithRightImage, block.ImageRow, *block.ImageRow](s, id, list,
		func() block.ImageRow { return block.ImageRow{Title: "New title", Text: "New text", ImageURL: newImage} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.TextWithRightImage, block.ImageRow, *block.ImageRow](s, id, list, item, "title", "Title", plainText, func(p *block.ImageRow) *string { return &p.Title }),
				itemScalar[block.TextWithRightImage, block.ImageRow, *block.ImageRow](s, id, list, item, "text", "Text", longText, func(p *block.ImageRow) *string { return &p.Text }),
				itemScalar[block.TextWithRightImage, block.ImageRow, *block.ImageRow](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.ImageRow) *string { return &p.ImageURL }),
				itemScalar[block.TextWithRightImage, block.ImageRow, *block.ImageRow](s, id, list, item, "icon", "Icon", iconCodec(s.icons, true), func(p *block.ImageRow) *string { return &p.Icon }),
			}, nil
		})}
}

func includedItemsForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "price", "Price", number, func(c *block.IncludedItemsWithPrice) *float64 { return &c.Price }),
		scalar(s, id, "price_title", "Price title", plainText, func(c *block.IncludedItemsWithPrice) *string { return &c.PriceTitle }),
		scalar(s, id, "price_subtitle", "Price subtitle", plainText, func(c *block.IncludedItemsWithPrice) *string { return &c.PriceSubtitle }),
	}
	list := listRef[block.IncludedItemsWithPrice, block.IncludedItem]{key: "items", label: "Included items", items: func(c *block.IncludedItemsWithPrice) *[]block.IncludedItem { return &c.Items }}
	form.Lists = []List{bindList[block.IncludedItemsWithPrice, block.IncludedItem, *block.IncludedItem](s, id, list,
		func() block.IncludedItem { return block.IncludedItem{Text: "New service", Icon: "CheckCircle"} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.IncludedItemsWithPrice, block.IncludedItem, *block.IncludedItem](s, id, list, item, "text", "Text", plainText, func(p *block.IncludedItem) *string { return &p.Text }),
				itemScalar[block.IncludedItemsWithPrice, block.IncludedItem, *block.IncludedItem](s, id, list, item, "icon", "Icon", iconCodec(s.icons, false), func(p *block.IncludedItem) *string { return &p.Icon }),
			}, nil
		})}
}

func categoriesForm(s *Session, id string, form *Form) {
	list := listRef[block.ProductCategories, block.ProductCategory]{key: "categories", label: "Categories", items: func(c *block.ProductCategories) *[]block.ProductCategory { return &c.Categories }}
	form.Lists = []List{bindList[block.ProductCategories, block.ProductCategory, *block.ProductCategory](s, id, list,
		func() block.ProductCategory {
			return block.ProductCategory{Title: "Category", Subtitle: "Products", ImageURL: newImage}
		},
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.ProductCategories, block.ProductCategory, *block.ProductCategory](s, id, list, item, "title", "Title", plainText, func(p *block.ProductCategory) *string { return &p.Title }),
				itemScalar[block.ProductCategories, block.ProductCategory, *block.ProductCategory](s, id, list, item, "subtitle", "Subtitle", plainText, func(p *block.ProductCategory) *string { return &p.Subtitle }),
				itemScalar[block.ProductCategories, block.ProductCategory, *block.ProductCategory](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.ProductCategory) *string { return &p.ImageURL }),
			}, nil
		})}
}

func bannersForm(s *Session, id string, form *Form) {
	list := listRef[block.PromoBanner, block.Banner]{key: "banners", label: "Banners", items: func(c *block.PromoBanner) *[]block.Banner { return &c.Banners }}
	form.Lists = []List{bindList[block.PromoBanner, block.Banner, *block.Banner](s, id, list,
		func() block.Banner {
			return block.Banner{SuperTitle: "OFFER", Title: "Banner title", LinkText: "See more", LinkURL: "#", ImageURL: newImage, Layout: block.LayoutLeft}
		},
		func(item string) ([]Field, []Strings) {
			layout := itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "layout", "Layout", layoutCodec(), func(p *block.Banner) *block.BannerLayout { return &p.Layout })
			layout.Options = []string{string(block.LayoutLeft), string(block.LayoutCenter), string(block.LayoutRight)}
			return []Field{
				itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "super_title", "Super title", plainText, func(p *block.Banner) *string { return &p.SuperTitle }),
				itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "title", "Title", plainText, func(p *block.Banner) *string { return &p.Title }),
				itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "link_text", "Link text", plainText, func(p *block.Banner) *string { return &p.LinkText }),
				itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "link_url", "Link URL", urlText, func(p *block.Banner) *string { return &p.LinkURL }),
				itemScalar[block.PromoBanner, block.Banner, *block.Banner](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.Banner) *string { return &p.ImageURL }),
				layout,
			}, nil
		})}
}

func callToActionForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "title", "Title", plainText, func(c *block.CallToAction) *string { return &c.Title }),
		scalar(s, id, "subtitle", "Subtitle", longText, func(c *block.CallToAction) *string { return &c.Subtitle }),
		scalar(s, id, "button_text", "Button text", plainText, func(c *block.CallToAction) *string { return &c.ButtonText }),
		scalar(s, id, "button_url", "Button URL", urlText, func(c *block.CallToAction) *string { return &c.ButtonURL }),
		scalar(s, id, "image_url", "Image URL", urlText, func(c *block.CallToAction) *string { return &c.ImageURL }),
	}
}

func footerLightForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "phone", "Phone", plainText, func(c *block.FooterLight) *string { return &c.Phone }),
		scalar(s, id, "email", "Email", plainText, func(c *block.FooterLight) *string { return &c.Email }),
		scalar(s, id, "address", "Address", plainText, func(c *block.FooterLight) *string { return &c.Address }),
		scalar(s, id, "logo_url", "Logo URL", urlText, func(c *block.FooterLight) *string { return &c.LogoURL }),
	}
}

func footerDarkForm(s *Session, id string, form *Form) {
	list := listRef[block.FooterDark, block.FooterItem]{key: "items", label: "Footer items", items: func(c *block.FooterDark) *[]block.FooterItem { return &c.Items }}
	form.Lists = []List{bindList[block.FooterDark, block.FooterItem, *block.FooterItem](s, id, list,
		func() block.FooterItem { return block.FooterItem{Icon: "Truck", Title: "Title", Text: "Description"} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.FooterDark, block.FooterItem, *block.FooterItem](s, id, list, item, "icon", "Icon", iconCodec(s.icons, false), func(p *block.FooterItem) *string { return &p.Icon }),
				itemScalar[block.FooterDark, block.FooterItem, *block.FooterItem](s, id, list, item, "title", "Title", plainText, func(p *block.FooterItem) *string { return &p.Title }),
				itemScalar[block.FooterDark, block.FooterItem, *block.FooterItem](s, id, list, item, "text", "Text", plainText, func(p *block.FooterItem) *string { return &p.Text }),
			}, nil
		})}
}

func postForm(s *Session, id string, form *Form) {
	form.Fields = []Field{
		scalar(s, id, "title", "Title", plainText, func(c *block.Post) *string { return &c.Title }),
		scalar(s, id, "image_url", "Image URL", urlText, func(c *block.Post) *string { return &c.ImageURL }),
		scalar(s, id, "body", "Body", longText, func(c *block.Post) *string { return &c.Body }),
	}
}

func portfolioForm(s *Session, id string, form *Form) {
	list := listRef[block.Portfolio, block.PortfolioItem]{key: "items", label: "Projects", items: func(c *block.Portfolio) *[]block.PortfolioItem { return &c.Items }}
	form.Lists = []List{bindList[block.Portfolio, block.PortfolioItem, *block.PortfolioItem](s, id, list,
		func() block.PortfolioItem {
			return block.PortfolioItem{Title: "Project", Description: "Project description.", ImageURL: newImage}
		},
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.Portfolio, block.PortfolioItem, *block.PortfolioItem](s, id, list, item, "title", "Title", plainText, func(p *block.PortfolioItem) *string { return &p.Title }),
				itemScalar[block.Portfolio, block.PortfolioItem, *block.PortfolioItem](s, id, list, item, "description", "Description", longText, func(p *block.PortfolioItem) *string { return &p.Description }),
				itemScalar[block.Portfolio, block.PortfolioItem, *block.PortfolioItem](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.PortfolioItem) *string { return &p.ImageURL }),
			}, nil
		})}
}

func galleryForm(s *Session, id string, form *Form) {
	list := listRef[block.Gallery, block.GalleryImage]{key: "images", label: "Images", items: func(c *block.Gallery) *[]block.GalleryImage { return &c.Images }}
	form.Lists = []List{bindList[block.Gallery, block.GalleryImage, *block.GalleryImage](s, id, list,
		func() block.GalleryImage { return block.GalleryImage{ImageURL: newImage, Caption: "Caption"} },
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.Gallery, block.GalleryImage, *block.GalleryImage](s, id, list, item, "image_url", "Image URL", urlText, func(p *block.GalleryImage) *string { return &p.ImageURL }),
				itemScalar[block.Gallery, block.GalleryImage, *block.GalleryImage](s, id, list, item, "caption", "Caption", plainText, func(p *block.GalleryImage) *string { return &p.Caption }),
			}, nil
		})}
}

func priceListForm(s *Session, id string, form *Form) {
	list := listRef[block.PriceList, block.PriceListItem]{key: "items", label: "Services", items: func(c *block.PriceList) *[]block.PriceListItem { return &c.Items }}
	form.Lists = []List{bindList[block.PriceList, block.PriceListItem, *block.PriceListItem](s, id, list,
		func() block.PriceListItem {
			return block.PriceListItem{Service: "Service", Description: "Service description.", Price: 100}
		},
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.PriceList, block.PriceListItem, *block.PriceListItem](s, id, list, item, "service", "Service", plainText, func(p *block.PriceListItem) *string { return &p.Service }),
				itemScalar[block.PriceList, block.PriceListItem, *block.PriceListItem](s, id, list, item, "description", "Description", longText, func(p *block.PriceListItem) *string { return &p.Description }),
				itemScalar[block.PriceList, block.PriceListItem, *block.PriceListItem](s, id, list, item, "price", "Price", number, func(p *block.PriceListItem) *float64 { return &p.Price }),
			}, nil
		})}
}

func priceTableForm(s *Session, id string, form *Form) {
	list := listRef[block.PriceTable, block.Package]{key: "packages", label: "Packages", items: func(c *block.PriceTable) *[]block.Package { return &c.Packages }}
	form.Lists = []List{bindList[block.PriceTable, block.Package, *block.Package](s, id, list,
		func() block.Package {
			return block.Package{Name: "Package", Price: 50, Frequency: "/month", Features: []string{"Feature 1"}, ButtonText: "Choose", ButtonURL: "#"}
		},
		func(item string) ([]Field, []Strings) {
			return []Field{
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "name", "Name", plainText, func(p *block.Package) *string { return &p.Name }),
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "price", "Price", number, func(p *block.Package) *float64 { return &p.Price }),
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "frequency", "Frequency", plainText, func(p *block.Package) *string { return &p.Frequency }),
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "featured", "Featured", flag, func(p *block.Package) *bool { return &p.Featured }),
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "button_text", "Button text", plainText, func(p *block.Package) *string { return &p.ButtonText }),
				itemScalar[block.PriceTable, block.Package, *block.Package](s, id, list, item, "button_url", "Button URL", urlText, func(p *block.Package) *string { return &p.ButtonURL }),
			}, []Strings{
				itemStrings[block.PriceTable, block.Package, *block.Package](s, id, list, item, "features", "Features", func(p *block.Package) *[]string { return &p.Features }),
			}
		})}
}
