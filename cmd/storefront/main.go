package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	storefront "github.com/mejacafe/storefront"
	"github.com/mejacafe/storefront/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("storefront %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func serve() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := storefront.New(cfg, views.Funcs())
	return app.Run(ctx)
}

func loadConfig() (storefront.SiteConfig, error) {
	cfg := storefront.SiteConfig{
		Name:           os.Getenv("SITE_NAME"),
		URL:            os.Getenv("SITE_URL"),
		Description:    os.Getenv("SITE_DESCRIPTION"),
		Addr:           os.Getenv("ADDR"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
		InstagramURL:   os.Getenv("INSTAGRAM_URL"),
		OrderHeading:   os.Getenv("ORDER_HEADING"),
		RedisURL:       os.Getenv("REDIS_URL"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}

	var err error
	if cfg.FeedMaxPosts, err = envInt("FEED_MAX_POSTS"); err != nil {
		return cfg, err
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CART_TTL", &cfg.CartTTL},
		{"FEED_AUTOPLAY", &cfg.FeedAutoplay},
		{"FEED_REFRESH", &cfg.FeedRefresh},
		{"FEED_LATENCY", &cfg.FeedLatency},
		{"FEED_IDLE", &cfg.FeedIdle},
		{"PRODUCT_CACHE_TTL", &cfg.ProductCacheTTL},
	}
	for _, d := range durations {
		if *d.dst, err = envDuration(d.key); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func envInt(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func printUsage() {
	fmt.Println(`storefront - Meja Cafe web shop

Usage:
  storefront [command]

Commands:
  serve         Run the web server (default)
  version       Print the storefront version
  help          Show this help message

Configuration is read from the environment and an optional .env file:
  ADMIN_PASSWORD, SESSION_SECRET (required)
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, ADDR, DATABASE_PATH, COOKIE_SECURE
  WHATSAPP_NUMBER, INSTAGRAM_URL, ORDER_HEADING, REDIS_URL, CART_TTL
  FEED_MAX_POSTS, FEED_AUTOPLAY, FEED_REFRESH, FEED_LATENCY, FEED_IDLE
  PRODUCT_CACHE_TTL, LOG_LEVEL, LOG_FORMAT`)
}
