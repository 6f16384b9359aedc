package storefront

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapImageNS = "http://www.google.com/schemas/sitemap-image/1.1"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	ImageNS string       `xml:"xmlns:image,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string         `xml:"loc"`
	LastMod  string         `xml:"lastmod,omitempty"`
	Priority string         `xml:"priority,omitempty"`
	Images   []sitemapImage `xml:"image:image,omitempty"`
}

type sitemapImage struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

// renderSitemap lists the home page, one filtered listing per category
// that has products, and every published product with its photo.
func (a *App) renderSitemap(c echo.Context, products []Product) error {
	base := strings.TrimSuffix(a.Config.URL, "/")
	urls := []sitemapURL{{Loc: base + "/", Priority: "1.0"}}

	for _, cat := range Categories[1:] {
		if len(FilterProducts(products, cat)) == 0 {
			continue
		}
		urls = append(urls, sitemapURL{Loc: base + "/?category=" + PathEscape(cat), Priority: "0.6"})
	}

	for _, p := range products {
		u := sitemapURL{
			Loc:      BuildURL(base, "product", p.Slug),
			LastMod:  p.UpdatedAt,
			Priority: "0.8",
		}
		if img := absoluteURL(base, p.Image); img != "" {
			u.Images = []sitemapImage{{Loc: img, Title: p.Name}}
		}
		urls = append(urls, u)
	}

	sitemap := sitemapURLSet{XMLNS: sitemapNS, ImageNS: sitemapImageNS, URLs: urls}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// absoluteURL resolves a catalog image path against base. Bare paths are
// served from /public/.
func absoluteURL(base, src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "/"):
		return base + EscapePath(src)
	}
	return base + "/public/" + EscapePath(src)
}
