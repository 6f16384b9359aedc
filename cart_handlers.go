package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mejacafe/storefront/cart"
	"github.com/mejacafe/storefront/handoff"
)

// NoRecipientNotice is shown when checkout is attempted without a
// configured WhatsApp number.
const NoRecipientNotice = "Pemesanan via WhatsApp belum tersedia."

// CartView is what the cart panel renders.
type CartView struct {
	Summary      cart.Summary
	Notice       string
	ConfirmClear bool
	ClearPrompt  string
	CheckoutURL  string
	Open         bool
	CSRF         string
}

// cartCapture collects what the engine renders and notifies during one
// request so the handler can answer with a single fragment.
type cartCapture struct {
	summary  cart.Summary
	rendered bool
	notice   string
}

func (c *cartCapture) Render(s cart.Summary) {
	c.summary = s
	c.rendered = true
}

func (c *cartCapture) Notify(msg string) { c.notice = msg }

func (a *App) newEngine(items []cart.Item, opts ...cart.Option) *cart.Engine {
	base := []cart.Option{
		cart.WithHeading(a.Config.OrderHeading),
		cart.WithLogger(a.Log.WithField("component", "cart")),
	}
	return cart.New(items, append(base, opts...)...)
}

// cartView loads the visitor's cart without changing it.
func (a *App) cartView(c echo.Context) (CartView, error) {
	id, err := VisitorID(c)
	if err != nil {
		return CartView{}, err
	}
	items, err := a.Carts.Load(c.Request().Context(), id)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Summary: a.newEngine(items).Summary(), CSRF: CsrfToken(c)}, nil
}

// mutateCart applies fn to the visitor's cart as one serialized update.
func (a *App) mutateCart(c echo.Context, fn func(e *cart.Engine)) (CartView, error) {
	id, err := VisitorID(c)
	if err != nil {
		return CartView{}, err
	}
	var capture *cartCapture
	var summary cart.Summary
	err = a.Carts.Update(c.Request().Context(), id, func(items []cart.Item) ([]cart.Item, error) {
		capture = &cartCapture{}
		e := a.newEngine(items, cart.WithRenderer(capture), cart.WithNotifier(capture))
		fn(e)
		summary = e.Summary()
		return e.Items(), nil
	})
	if err != nil {
		return CartView{}, err
	}
	return CartView{Summary: summary, Notice: capture.notice, Open: true, CSRF: CsrfToken(c)}, nil
}

func (a *App) renderCart(c echo.Context, view CartView) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/cart/")
	}
	return Render(c, a.Views.Cart(view))
}

func (a *App) handleCart(c echo.Context) error {
	view, err := a.cartView(c)
	if err != nil {
		return err
	}
	view.Open = true
	return Render(c, a.Views.Cart(view))
}

func (a *App) handleCartAdd(c echo.Context) error {
	slug := c.FormValue("slug")
	product, err := a.Cache.GetProduct(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown product")
		}
		return err
	}
	view, err := a.mutateCart(c, func(e *cart.Engine) {
		e.AddItem(product.Name, product.Price, product.Image)
	})
	if err != nil {
		return err
	}
	return a.renderCart(c, view)
}

func (a *App) handleCartAdjust(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item index")
	}
	delta, err := strconv.Atoi(c.FormValue("delta"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid delta")
	}
	view, err := a.mutateCart(c, func(e *cart.Engine) {
		e.AdjustQuantity(index, delta)
	})
	if err != nil {
		return err
	}
	return a.renderCart(c, view)
}

func (a *App) handleCartRemove(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item index")
	}
	view, err := a.mutateCart(c, func(e *cart.Engine) {
		e.RemoveItem(index)
	})
	if err != nil {
		return err
	}
	return a.renderCart(c, view)
}

func (a *App) handleCartItem(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item index")
	}
	id, err := VisitorID(c)
	if err != nil {
		return err
	}
	items, err := a.Carts.Load(c.Request().Context(), id)
	if err != nil {
		return err
	}
	details, ok := a.newEngine(items).ItemDetails(index)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such item")
	}
	return Render(c, a.Views.CartItemDetails(details))
}

// handleCartClear asks first: without a confirm value it answers with the
// prompt, "yes" empties the cart, anything else leaves it untouched.
func (a *App) handleCartClear(c echo.Context) error {
	confirm := c.FormValue("confirm")
	if confirm == "" {
		view, err := a.cartView(c)
		if err != nil {
			return err
		}
		view.Open = true
		view.ConfirmClear = !view.Summary.Empty
		view.ClearPrompt = cart.ClearPrompt
		return a.renderCart(c, view)
	}
	view, err := a.mutateCart(c, func(e *cart.Engine) {
		e.Clear(cart.ConfirmFunc(func(string) bool { return confirm == "yes" }))
	})
	if err != nil {
		return err
	}
	return a.renderCart(c, view)
}

// handleCartCheckout builds the order message and hands it to WhatsApp.
// htmx callers get the cart fragment plus an event that opens the link in
// a new tab; plain form posts are redirected to the link.
func (a *App) handleCartCheckout(c echo.Context) error {
	id, err := VisitorID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	items, err := a.Carts.Load(ctx, id)
	if err != nil {
		return err
	}

	var link string
	capture := &cartCapture{}
	e := a.newEngine(items,
		cart.WithNotifier(capture),
		cart.WithDispatcher(handoff.Dispatcher{
			Recipient: a.Config.WhatsAppNumber,
			Opener: handoff.OpenFunc(func(_ context.Context, l string) error {
				link = l
				return nil
			}),
		}),
	)
	view := CartView{Summary: e.Summary(), Open: true, CSRF: CsrfToken(c)}

	switch err := e.Checkout(ctx); {
	case errors.Is(err, cart.ErrEmpty):
		view.Notice = capture.notice
		return a.renderCart(c, view)
	case errors.Is(err, handoff.ErrNoRecipient):
		view.Notice = NoRecipientNotice
		return a.renderCart(c, view)
	case err != nil:
		return err
	}

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, link)
	}
	view.CheckoutURL = link
	trigger, err := json.Marshal(map[string]any{"storefront:open": map[string]string{"url": link}})
	if err != nil {
		return err
	}
	c.Response().Header().Set("HX-Trigger", string(trigger))
	return Render(c, a.Views.Cart(view))
}
