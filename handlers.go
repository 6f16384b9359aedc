package storefront

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mejacafe/storefront/feed"
)

func (a *App) handleHome(c echo.Context) error {
	category := c.QueryParam("category")
	products, err := a.Cache.ListProducts(category)
	if err != nil {
		return err
	}
	cartView, err := a.cartView(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(HomeData{
		Site: a.Config,
		Meta: PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
		},
		Products:   products,
		Category:   activeCategory(category),
		Categories: Categories,
		Cart:       cartView,
		Feed:       a.feedSnapshot(c),
		JsonLD:     WebsiteJsonLD(a.Config),
	}))
}

// handleMenu renders the product grid for one category filter.
func (a *App) handleMenu(c echo.Context) error {
	category := c.QueryParam("category")
	if !isHTMX(c) {
		if category == "" {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return c.Redirect(http.StatusSeeOther, "/?category="+PathEscape(category))
	}
	products, err := a.Cache.ListProducts(category)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Menu(products, activeCategory(category), CsrfToken(c)))
}

func (a *App) handleProduct(c echo.Context) error {
	slug := c.Param("slug")
	product, err := a.Cache.GetProduct(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	related, err := a.Cache.ListProducts(product.Category)
	if err != nil {
		return err
	}
	cartView, err := a.cartView(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Product(ProductData{
		Site: a.Config,
		Meta: PageMeta{
			Title:       product.Name + " | " + a.Config.Name,
			Description: product.Description,
			URL:         BuildURL(a.Config.URL, "product", product.Slug),
			OGType:      "product",
		},
		Product: product,
		Related: withoutProduct(related, product.Slug),
		Cart:    cartView,
		JsonLD:  ProductJsonLD(product, a.Config),
	}))
}

// feedSnapshot is the carousel state for the first paint. A visitor
// without a running carousel sees the loading state.
func (a *App) feedSnapshot(c echo.Context) feed.Snapshot {
	id, err := VisitorID(c)
	if err != nil {
		return feed.Snapshot{Status: feed.StatusLoading}
	}
	carousel, err := a.Hub.Get(id)
	if err != nil {
		return feed.Snapshot{Status: feed.StatusLoading}
	}
	return carousel.Snapshot()
}

func (a *App) handleSitemap(c echo.Context) error {
	products, err := a.Cache.ListProducts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, products)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.loader.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nDisallow: /admin/\nDisallow: /cart/\nDisallow: /api/\nSitemap: "+
		strings.TrimSuffix(a.Config.URL, "/")+"/sitemap.xml\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.WithError(err).WithField("uri", c.Request().RequestURI).Error("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func activeCategory(c string) string {
	if c = normalizeCategory(c); c == "" {
		return "all"
	}
	return c
}

func withoutProduct(products []Product, slug string) []Product {
	var out []Product
	for _, p := range products {
		if p.Slug != slug {
			out = append(out, p)
		}
	}
	return out
}
