package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	storefront "github.com/mejacafe/storefront"
	"github.com/mejacafe/storefront/money"
)

// page accumulates HTML and keeps the first write error.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPage(ctx context.Context, w io.Writer) *page {
	return &page{ctx: ctx, w: w}
}

func (p *page) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) attr(name, value string) {
	p.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (p *page) render(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(ctx, w)
		fn(p)
		return p.err
	})
}

// csrfField is the hidden form input echo's CSRF middleware reads.
func csrfField(p *page, token string) {
	p.raw(`<input type="hidden" name="_csrf"`)
	p.attr("value", token)
	p.raw(`>`)
}

// PriceLabel shows "Tanya harga" for products without a list price.
func PriceLabel(price int64) string {
	if price <= 0 {
		return "Tanya harga"
	}
	return money.Format(price)
}

// CategoryLabel is the filter button text.
func CategoryLabel(c string) string {
	switch c {
	case "all":
		return "Semua"
	case "meja":
		return "Meja"
	case "sofa":
		return "Sofa"
	case "set":
		return "Set"
	}
	if c == "" {
		return ""
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

func itoa(n int) string { return strconv.Itoa(n) }

func menuURL(category string) string {
	return "/menu/?category=" + storefront.PathEscape(category)
}

func assetURL(src string) string {
	if strings.HasPrefix(src, "/") || strings.HasPrefix(src, "http") {
		return src
	}
	return "/public/" + storefront.EscapePath(src)
}
