package main

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("WHATSAPP_NUMBER", "6281234567890")
	t.Setenv("FEED_MAX_POSTS", "4")
	t.Setenv("FEED_REFRESH", "45s")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.AdminPassword != "secret" || !cfg.CookieSecure || cfg.WhatsAppNumber != "6281234567890" {
		t.Errorf("strings not mapped: %+v", cfg)
	}
	if cfg.FeedMaxPosts != 4 {
		t.Errorf("FeedMaxPosts = %d, want 4", cfg.FeedMaxPosts)
	}
	if cfg.FeedRefresh != 45*time.Second {
		t.Errorf("FeedRefresh = %v, want 45s", cfg.FeedRefresh)
	}
	if cfg.FeedAutoplay != 0 {
		t.Errorf("unset FeedAutoplay = %v, want 0 so defaults apply", cfg.FeedAutoplay)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("FEED_MAX_POSTS", "many")
	if _, err := loadConfig(); err == nil {
		t.Error("bad FEED_MAX_POSTS accepted")
	}
	t.Setenv("FEED_MAX_POSTS", "")
	t.Setenv("CART_TTL", "tomorrow")
	if _, err := loadConfig(); err == nil {
		t.Error("bad CART_TTL accepted")
	}
}
