package storefront

import "github.com/mejacafe/storefront/money"

// Product is a catalog entry stored in SQLite and rendered by templates.
// A zero Price is shown as "ask us" on the menu but still orders at Rp 0.
type Product struct {
	Slug        string
	Name        string
	Category    string
	Price       int64
	Image       string
	Description string
	Published   bool
	UpdatedAt   string
}

// PriceLabel is the formatted unit price.
func (p Product) PriceLabel() string {
	return money.Format(p.Price)
}

// Link is the product's detail path.
func (p Product) Link() string {
	return "/product/" + p.Slug + "/"
}

// Image is the metadata of an uploaded product image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "product"
}

// Categories is the menu filter order. "all" shows everything.
var Categories = []string{"all", "meja", "sofa", "set"}
