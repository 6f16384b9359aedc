package feed

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultIdleTimeout is how long an unused carousel survives.
const DefaultIdleTimeout = 30 * time.Minute

// Factory builds a carousel for a new visitor.
type Factory func(visitor string) *Carousel

type hubEntry struct {
	carousel *Carousel
	lastSeen time.Time
}

// Hub keeps one carousel per visitor and stops the idle ones.
type Hub struct {
	factory Factory
	idle    time.Duration
	log     logrus.FieldLogger
	now     func() time.Time

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	entries map[string]*hubEntry
	done    chan struct{}
}

// NewHub returns a hub; call Start before Get.
func NewHub(factory Factory, idle time.Duration, log logrus.FieldLogger) *Hub {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Hub{
		factory: factory,
		idle:    idle,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*hubEntry),
	}
}

// Name identifies the hub in the module registry.
func (h *Hub) Name() string { return "feed-hub" }

// Start binds carousels to ctx and runs the idle sweeper.
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx != nil {
		return errors.New("feed: hub already started")
	}
	h.ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})
	go h.sweepLoop(h.ctx, h.done)
	return nil
}

// Stop stops every carousel and the sweeper.
func (h *Hub) Stop() error {
	h.mu.Lock()
	if h.cancel == nil {
		h.mu.Unlock()
		return nil
	}
	h.cancel()
	done := h.done
	entries := h.entries
	h.entries = make(map[string]*hubEntry)
	h.mu.Unlock()

	<-done
	for _, e := range entries {
		e.carousel.Stop()
	}
	return nil
}

// Get returns the visitor's running carousel, creating it on first use.
func (h *Hub) Get(visitor string) (*Carousel, error) {
	if visitor == "" {
		return nil, errors.New("feed: visitor id required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil || h.ctx.Err() != nil {
		return nil, ErrStopped
	}
	if e, ok := h.entries[visitor]; ok {
		select {
		case <-e.carousel.Done():
			delete(h.entries, visitor)
		default:
			e.lastSeen = h.now()
			return e.carousel, nil
		}
	}
	c := h.factory(visitor)
	c.Start(h.ctx)
	h.entries[visitor] = &hubEntry{carousel: c, lastSeen: h.now()}
	h.log.WithField("visitor", visitor).Debug("feed: carousel started")
	return c, nil
}

// Touch marks the visitor's carousel as in use.
func (h *Hub) Touch(visitor string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.entries[visitor]; ok {
		e.lastSeen = h.now()
	}
}

// Len returns the number of live carousels.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *Hub) sweepLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(h.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep()
		}
	}
}

func (h *Hub) sweep() {
	cutoff := h.now().Add(-h.idle)
	var stale []*Carousel
	h.mu.Lock()
	for id, e := range h.entries {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.carousel)
			delete(h.entries, id)
		}
	}
	h.mu.Unlock()
	for _, c := range stale {
		c.Stop()
	}
	if len(stale) > 0 {
		h.log.WithField("count", len(stale)).Debug("feed: idle carousels stopped")
	}
}
