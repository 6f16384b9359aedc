package cart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStore(NewRedisClient("redis://"+mr.Addr()), time.Hour)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return s, mr
}

func addSofa(items []Item) ([]Item, error) {
	e := New(items)
	e.AddItem("Sofa Esty", 2500000, "")
	return e.Items(), nil
}

func TestRedisStoreUpdateAndLoad(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Update(ctx, "v1", addSofa); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	got, err := s.Load(ctx, "v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Item{{Name: "Sofa Esty", UnitPrice: 2500000, Quantity: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if ttl := mr.TTL("cart:v1"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	missing, err := s.Load(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("Load(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestRedisStoreEmptyCartDeletesKey(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()
	if err := s.Update(ctx, "v1", addSofa); err != nil {
		t.Fatalf("Update: %v", err)
	}
	err := s.Update(ctx, "v1", func([]Item) ([]Item, error) { return nil, nil })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if mr.Exists("cart:v1") {
		t.Error("empty cart left its key behind")
	}
}

func TestRedisStoreRetriesOnConcurrentWrite(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()
	if err := s.Update(ctx, "v1", addSofa); err != nil {
		t.Fatalf("Update: %v", err)
	}

	calls := 0
	err := s.Update(ctx, "v1", func(items []Item) ([]Item, error) {
		calls++
		if calls == 1 {
			// Another writer lands between WATCH and EXEC.
			mr.Set("cart:v1", `[{"name":"Meja Taman","unit_price":950000,"quantity":1,"image":""}]`)
		}
		return addSofa(items)
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if calls != 2 {
		t.Errorf("fn ran %d times, want 2", calls)
	}
	got, _ := s.Load(ctx, "v1")
	want := []Item{
		{Name: "Meja Taman", UnitPrice: 950000, Quantity: 1},
		{Name: "Sofa Esty", UnitPrice: 2500000, Quantity: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("retry lost the concurrent write (-want +got):\n%s", diff)
	}
}

func TestRedisStoreGivesUpUnderContention(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()
	mr.Set("cart:v1", `[]`)

	calls := 0
	err := s.Update(ctx, "v1", func(items []Item) ([]Item, error) {
		calls++
		mr.Set("cart:v1", `[]`)
		return addSofa(items)
	})
	if err == nil || !strings.Contains(err.Error(), "contention") {
		t.Fatalf("err = %v, want contention error", err)
	}
	if calls != maxUpdateRetries {
		t.Errorf("fn ran %d times, want %d", calls, maxUpdateRetries)
	}
}

func TestRedisStoreUpdateErrorKeepsState(t *testing.T) {
	s, _ := setupRedisStore(t)
	ctx := context.Background()
	if err := s.Update(ctx, "v1", addSofa); err != nil {
		t.Fatalf("Update: %v", err)
	}
	boom := errors.New("boom")
	if err := s.Update(ctx, "v1", func([]Item) ([]Item, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	got, _ := s.Load(ctx, "v1")
	if len(got) != 1 {
		t.Errorf("state changed after failed update: %v", got)
	}
	if err := s.Update(ctx, "", addSofa); !errors.Is(err, ErrNoCartID) {
		t.Errorf("Update without id = %v, want ErrNoCartID", err)
	}
}

func TestRedisStoreStartFailsWhenUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()
	s := NewRedisStore(NewRedisClient(addr), time.Hour)
	defer s.Stop()
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start succeeded against a closed server")
	}
}
