package feed

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(func(string) *Carousel {
		return NewCarousel(staticLoader(seqOf(3)), Config{}, WithTicker(newFakeClock().NewTicker))
	}, time.Hour, nil)
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { h.Stop() })
	return h
}

func TestHubReusesCarousel(t *testing.T) {
	h := newTestHub(t)
	a, err := h.Get("visitor-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	again, _ := h.Get("visitor-a")
	if a != again {
		t.Error("second Get returned a different carousel")
	}
	b, _ := h.Get("visitor-b")
	if a == b {
		t.Error("visitors share a carousel")
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestHubSweepsIdle(t *testing.T) {
	h := newTestHub(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	h.mu.Lock()
	h.now = func() time.Time { return now }
	h.mu.Unlock()

	old, _ := h.Get("old")
	now = start.Add(50 * time.Minute)
	h.Get("fresh")
	now = start.Add(90 * time.Minute)
	h.sweep()

	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	select {
	case <-old.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("idle carousel still running")
	}
}

func TestHubStopRejectsGet(t *testing.T) {
	h := newTestHub(t)
	c, _ := h.Get("v")
	h.Stop()
	<-c.Done()
	if _, err := h.Get("v"); !errors.Is(err, ErrStopped) {
		t.Errorf("Get after Stop = %v, want ErrStopped", err)
	}
	if _, err := h.Get(""); err == nil {
		t.Error("empty visitor accepted")
	}
}
