package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoCartID is returned when a store is asked for a cart without an id.
var ErrNoCartID = errors.New("cart: missing cart id")

// Store keeps carts between requests of the same visitor session.
// Update runs fn against the current items and saves what it returns;
// updates of one cart never interleave.
type Store interface {
	Load(ctx context.Context, id string) ([]Item, error)
	Update(ctx context.Context, id string, fn func([]Item) ([]Item, error)) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	items   []Item
	touched time.Time
}

// MemoryStore keeps carts in process memory. Carts idle for longer than the
// TTL are dropped by the sweeper started with Start.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*memoryEntry
	ttl   time.Duration
	now   func() time.Time
	done  chan struct{}
}

// NewMemoryStore returns an empty store whose carts expire after ttl of
// inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]*memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Name identifies the store in the module registry.
func (s *MemoryStore) Name() string { return "cart-memory-store" }

// Start launches the idle-cart sweeper.
func (s *MemoryStore) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil || s.ttl <= 0 {
		return nil
	}
	s.done = make(chan struct{})
	go s.sweepLoop(ctx, s.done)
	return nil
}

// Stop halts the sweeper. Carts stay in memory.
func (s *MemoryStore) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	return nil
}

// Load returns a copy of the cart, or nil if it does not exist.
func (s *MemoryStore) Load(ctx context.Context, id string) ([]Item, error) {
	if id == "" {
		return nil, ErrNoCartID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		return nil, nil
	}
	return cloneItems(e.items), nil
}

// Update holds the store lock for the duration of fn.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func([]Item) ([]Item, error)) error {
	if id == "" {
		return ErrNoCartID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []Item
	if e, ok := s.carts[id]; ok {
		current = cloneItems(e.items)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if len(next) == 0 {
		delete(s.carts, id)
		return nil
	}
	s.carts[id] = &memoryEntry{items: cloneItems(next), touched: s.now()}
	return nil
}

// Delete drops the cart.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many carts are held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (s *MemoryStore) sweepLoop(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	for id, e := range s.carts {
		if e.touched.Before(cutoff) {
			delete(s.carts, id)
		}
	}
	s.mu.Unlock()
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
