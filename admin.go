package storefront

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mejacafe/storefront/money"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminProduct(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if slug == "new" {
		return Render(c, a.Views.AdminFormPartial(Product{Published: true}, CsrfToken(c)))
	}
	product, err := a.Store.GetProductAny(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(product, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Log.WithField("ip", ip).Warn("admin login failed")
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Name+is+required.")
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+name+or+slug.")
	}
	category := normalizeCategory(c.FormValue("category"))
	if !validCategory(category) {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Unknown+category.")
	}
	if err := a.Store.SaveProduct(Product{
		Slug:        slug,
		Name:        name,
		Category:    category,
		Price:       money.Parse(c.FormValue("price")),
		Image:       strings.TrimSpace(c.FormValue("image")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Published:   c.FormValue("published") != "",
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("slug", slug).Info("product saved")
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeleteProduct(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("slug", slug).Info("product deleted")
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	products, err := a.Store.ListAllProducts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(products, msg, CsrfToken(c)))
}

func validCategory(c string) bool {
	for _, known := range Categories[1:] {
		if c == known {
			return true
		}
	}
	return false
}
