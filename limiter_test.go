package storefront

import (
	"context"
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(2, time.Minute)
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestLoginLimiterPrune(t *testing.T) {
	limiter := NewLoginLimiter(3, time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.Record("203.0.113.40")
	limiter.Record("203.0.113.41")

	now = now.Add(2 * time.Minute)
	limiter.Record("203.0.113.41")
	limiter.prune()

	if got := limiter.Tracked(); got != 1 {
		t.Errorf("tracked = %d, want 1", got)
	}
}

func TestLoginLimiterLifecycle(t *testing.T) {
	limiter := NewLoginLimiter(3, time.Minute)
	if err := limiter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := limiter.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := limiter.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}
