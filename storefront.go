// Package storefront is the web front of a furniture cafe shop built with
// Go, Echo, and templ. It serves the catalog, keeps each visitor's cart on
// the server, hands finished orders to WhatsApp, and runs the rotating
// promotional feed.
//
// Callers provide their own templ templates via the ViewFuncs struct, and
// storefront handles the handler logic, middleware, and storage.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/mejacafe/storefront/cart"
	"github.com/mejacafe/storefront/feed"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home             func(data HomeData) templ.Component
	Menu             func(products []Product, active, csrfToken string) templ.Component
	Product          func(data ProductData) templ.Component
	Cart             func(view CartView) templ.Component
	CartItemDetails  func(details string) templ.Component
	Carousel         func(s feed.Snapshot) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(products []Product, message string, csrfToken string) templ.Component
	AdminFormPartial func(product Product, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// HomeData is everything the landing page renders.
type HomeData struct {
	Site       SiteConfig
	Meta       PageMeta
	Products   []Product
	Category   string
	Categories []string
	Cart       CartView
	Feed       feed.Snapshot
	JsonLD     string
}

// ProductData is the product detail page.
type ProductData struct {
	Site    SiteConfig
	Meta    PageMeta
	Product Product
	Related []Product
	Cart    CartView
	JsonLD  string
}

// App is the central storefront application. It wires together the
// catalog, cart store, feed hub, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *ProductCache
	Carts   CartStore
	Hub     *feed.Hub
	Log     *logrus.Logger
	Views   ViewFuncs
	Modules *Registry

	loginLimiter *LoginLimiter
	loader       feed.Loader
	ticker       feed.TickerFunc
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}
	a.Modules = NewRegistry(a.Log)
	return a
}

// Setup opens the catalog, starts the modules, and registers middleware and
// routes. The modules live until Close.
func (a *App) Setup(ctx context.Context) error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("storefront: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("storefront: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("storefront: init store: %w", err)
	}
	a.Store = store
	seeded, err := a.Store.SeedProducts(DefaultProducts())
	if err != nil {
		return fmt.Errorf("storefront: seed catalog: %w", err)
	}
	if seeded {
		a.Log.Info("seeded empty catalog with default products")
	}

	a.Cache = NewProductCache(a.Store, a.Config.ProductCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Carts == nil {
		if a.Config.RedisURL != "" {
			a.Carts = cart.NewRedisStore(cart.NewRedisClient(a.Config.RedisURL), a.Config.CartTTL)
		} else {
			a.Carts = cart.NewMemoryStore(a.Config.CartTTL)
		}
	}
	if a.loader == nil {
		a.loader = feed.NewPoolLoader(feed.DefaultPool(time.Now()), a.Config.FeedMaxPosts,
			feed.WithLatency(a.Config.FeedLatency))
	}
	a.Hub = feed.NewHub(a.newCarousel, a.Config.FeedIdle, a.Log.WithField("component", "feed"))

	a.Modules.Register(a.loginLimiter)
	a.Modules.Register(a.Cache)
	a.Modules.Register(a.Carts)
	a.Modules.Register(a.Hub)
	a.Modules.StartAll(ctx)

	if !a.Modules.Running(a.Carts.Name()) {
		a.Log.WithField("module", a.Carts.Name()).Warn("cart store unavailable, keeping carts in memory")
		a.Carts = cart.NewMemoryStore(a.Config.CartTTL)
		a.Modules.Register(a.Carts)
		a.Modules.StartAll(ctx)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) newCarousel(visitor string) *feed.Carousel {
	opts := []feed.CarouselOption{
		feed.WithCarouselLogger(a.Log.WithFields(logrus.Fields{"component": "feed", "visitor": visitor})),
	}
	if a.ticker != nil {
		opts = append(opts, feed.WithTicker(a.ticker))
	}
	return feed.NewCarousel(a.loader, feed.Config{
		Autoplay:    a.Config.FeedAutoplay,
		Refresh:     a.Config.FeedRefresh,
		FallbackURL: a.Config.InstagramURL,
	}, opts...)
}

// Run sets up the App and serves until ctx is cancelled, then shuts the
// server down gracefully and stops the modules.
func (a *App) Run(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		a.Log.WithField("addr", a.Config.Addr).Info("storefront listening")
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("storefront: shutdown: %w", err)
	}
	a.Log.Info("storefront stopped")
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Client glue for the cart and carousel, served ahead of the static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/storefront.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/menu/", a.handleMenu)
	e.GET("/product/:slug/", a.handleProduct)

	e.GET("/cart/", a.handleCart)
	e.POST("/cart/add/", a.handleCartAdd)
	e.GET("/cart/item/:index/", a.handleCartItem)
	e.POST("/cart/item/:index/adjust/", a.handleCartAdjust)
	e.POST("/cart/item/:index/remove/", a.handleCartRemove)
	e.POST("/cart/clear/", a.handleCartClear)
	e.POST("/cart/checkout/", a.handleCartCheckout)

	e.GET("/feed/", a.handleCarousel)
	e.GET("/api/feed/stream", a.handleFeedStream)
	e.POST("/api/feed/event", a.handleFeedEvent)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/product/:slug/", a.handleAdminProduct)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/product/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close stops the modules and closes the catalog. Call this when the app
// is shutting down.
func (a *App) Close() error {
	a.Modules.StopAll()
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
