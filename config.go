package storefront

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mejacafe/storefront/cart"
	"github.com/mejacafe/storefront/feed"
)

// SiteConfig holds all configuration for a storefront site.
type SiteConfig struct {
	Name        string // Site name (default "Meja Cafe")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/storefront.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	WhatsAppNumber string // Order recipient in international format, digits only
	InstagramURL   string // Shown when the feed cannot load
	OrderHeading   string // First line of the order message

	RedisURL string        // Shared cart store; empty keeps carts in memory
	CartTTL  time.Duration // Idle cart lifetime (default 24h)

	FeedMaxPosts int           // Posts per selection (default 6)
	FeedAutoplay time.Duration // Auto-advance interval (default 5s)
	FeedRefresh  time.Duration // Re-selection interval (default 30s)
	FeedLatency  time.Duration // Simulated load delay (default 800ms)
	FeedIdle     time.Duration // Idle carousel lifetime (default 30min)

	ProductCacheTTL time.Duration // Product cache TTL (default 5min)

	LogLevel  string // logrus level name (default "info")
	LogFormat string // "json" or "text" (default "json")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Meja Cafe"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/storefront.db"
	}
	if c.InstagramURL == "" {
		c.InstagramURL = feed.DefaultFallbackURL
	}
	if c.OrderHeading == "" {
		c.OrderHeading = cart.DefaultTitle
	}
	if c.CartTTL == 0 {
		c.CartTTL = 24 * time.Hour
	}
	if c.FeedMaxPosts <= 0 {
		c.FeedMaxPosts = 6
	}
	if c.FeedAutoplay == 0 {
		c.FeedAutoplay = feed.DefaultAutoplay
	}
	if c.FeedRefresh == 0 {
		c.FeedRefresh = feed.DefaultRefresh
	}
	if c.FeedLatency == 0 {
		c.FeedLatency = 800 * time.Millisecond
	}
	if c.FeedIdle == 0 {
		c.FeedIdle = feed.DefaultIdleTimeout
	}
	if c.ProductCacheTTL == 0 {
		c.ProductCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the logger built from LogLevel and LogFormat.
func WithLogger(l *logrus.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithCartStore replaces the cart store chosen from RedisURL.
func WithCartStore(s CartStore) Option {
	return func(a *App) {
		a.Carts = s
	}
}

// WithLoader replaces the feed loader built from the default pool.
func WithLoader(l feed.Loader) Option {
	return func(a *App) {
		a.loader = l
	}
}

// WithTicker replaces the carousel ticker factory.
func WithTicker(fn feed.TickerFunc) Option {
	return func(a *App) {
		a.ticker = fn
	}
}
