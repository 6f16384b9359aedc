package feed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrEmptyPool is returned when there is nothing to select from.
var ErrEmptyPool = errors.New("feed: content pool is empty")

// Loader produces a fresh selection.
type Loader interface {
	Load(ctx context.Context) ([]SelectedPost, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]SelectedPost, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) ([]SelectedPost, error) { return f(ctx) }

// PoolLoader runs SelectFresh over a fixed pool after a simulated network
// latency. It is safe for concurrent use.
type PoolLoader struct {
	pool     []Post
	maxCount int
	latency  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// PoolLoaderOption configures a PoolLoader.
type PoolLoaderOption func(*PoolLoader)

// WithLatency sets the simulated delay before each selection.
func WithLatency(d time.Duration) PoolLoaderOption {
	return func(l *PoolLoader) { l.latency = d }
}

// WithRand sets the randomness source.
func WithRand(rng *rand.Rand) PoolLoaderOption {
	return func(l *PoolLoader) { l.rng = rng }
}

// WithClock sets the clock used for age labels.
func WithClock(now func() time.Time) PoolLoaderOption {
	return func(l *PoolLoader) { l.now = now }
}

// NewPoolLoader returns a loader selecting at most maxCount posts.
func NewPoolLoader(pool []Post, maxCount int, opts ...PoolLoaderOption) *PoolLoader {
	l := &PoolLoader{
		pool:     pool,
		maxCount: maxCount,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load waits out the latency, then selects.
func (l *PoolLoader) Load(ctx context.Context) ([]SelectedPost, error) {
	if len(l.pool) == 0 {
		return nil, ErrEmptyPool
	}
	if l.latency > 0 {
		timer := time.NewTimer(l.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "feed: load cancelled")
		case <-timer.C:
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return SelectFresh(l.pool, l.maxCount, l.rng, l.now()), nil
}
