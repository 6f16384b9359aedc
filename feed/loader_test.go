package feed

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestPoolLoaderSelects(t *testing.T) {
	l := NewPoolLoader(DefaultPool(refNow), 6,
		WithRand(rand.New(rand.NewSource(3))),
		WithClock(func() time.Time { return refNow }))
	got, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("len = %d, want 6", len(got))
	}
}

func TestPoolLoaderEmpty(t *testing.T) {
	_, err := NewPoolLoader(nil, 6).Load(context.Background())
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("err = %v, want ErrEmptyPool", err)
	}
}

func TestPoolLoaderHonoursCancel(t *testing.T) {
	l := NewPoolLoader(DefaultPool(refNow), 6, WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
