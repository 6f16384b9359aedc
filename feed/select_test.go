package feed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var refNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ids(posts []SelectedPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSelectFreshReferencePool(t *testing.T) {
	pool := DefaultPool(refNow)
	got := SelectFresh(pool, 6, rand.New(rand.NewSource(1)), refNow)

	want := []string{"1", "8", "5", "3", "2", "7"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Fatalf("selection order mismatch (-want +got):\n%s", diff)
	}

	cats := map[string]bool{}
	for _, p := range got[:3] {
		cats[p.Category] = true
	}
	if len(cats) != 3 {
		t.Errorf("first three cover %d categories, want 3", len(cats))
	}
}

func TestSelectFreshInvariants(t *testing.T) {
	pool := DefaultPool(refNow)
	for seed := int64(0); seed < 50; seed++ {
		for _, k := range []int{1, 3, 6, 9, 20} {
			got := SelectFresh(pool, k, rand.New(rand.NewSource(seed)), refNow)
			wantLen := k
			if wantLen > len(pool) {
				wantLen = len(pool)
			}
			if len(got) != wantLen {
				t.Fatalf("seed %d k %d: len = %d, want %d", seed, k, len(got), wantLen)
			}
			seen := map[string]bool{}
			for _, p := range got {
				if seen[p.ID] {
					t.Fatalf("seed %d k %d: duplicate id %s", seed, k, p.ID)
				}
				seen[p.ID] = true
				if p.Likes < 1 {
					t.Errorf("likes = %d for %s", p.Likes, p.ID)
				}
				if d := p.Timestamp.Sub(p.BasePublished); d < 0 || d >= timestampJitter {
					t.Errorf("jitter %v out of range for %s", d, p.ID)
				}
				if diff := p.Likes - p.Display.LikeBaseline; diff > likeNoise || diff < -likeNoise {
					t.Errorf("like noise %d out of range for %s", diff, p.ID)
				}
			}
		}
	}
}

func TestSelectFreshPriorityOrder(t *testing.T) {
	post := func(id, category string, priority int, age time.Duration) Post {
		return Post{
			ID:            id,
			Category:      category,
			Priority:      priority,
			BasePublished: refNow.Add(-age),
			Display:       Display{LikeBaseline: 100},
		}
	}
	pool := []Post{
		post("a", "meja", 3, day),
		post("b", "sofa", 1, 5*day),
		post("c", "meja", 2, 2*time.Hour),
		post("d", "sofa", 4, 10*time.Minute),
	}
	for seed := int64(0); seed < 20; seed++ {
		got := SelectFresh(pool, 4, rand.New(rand.NewSource(seed)), refNow)
		if diff := cmp.Diff([]string{"b", "c", "a", "d"}, ids(got)); diff != "" {
			t.Fatalf("seed %d: order mismatch (-want +got):\n%s", seed, diff)
		}
		top := SelectFresh(pool, 2, rand.New(rand.NewSource(seed)), refNow)
		if diff := cmp.Diff([]string{"b", "c"}, ids(top)); diff != "" {
			t.Fatalf("seed %d: truncated order mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func TestSelectFreshDoesNotMutatePool(t *testing.T) {
	pool := DefaultPool(refNow)
	before := DefaultPool(refNow)
	SelectFresh(pool, 6, rand.New(rand.NewSource(7)), refNow)
	if diff := cmp.Diff(before, pool); diff != "" {
		t.Errorf("pool mutated (-before +after):\n%s", diff)
	}
}

func TestSelectFreshEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := SelectFresh(nil, 6, rng, refNow); got != nil {
		t.Errorf("empty pool: got %v", got)
	}
	if got := SelectFresh(DefaultPool(refNow), 0, rng, refNow); got != nil {
		t.Errorf("zero max: got %v", got)
	}
}

func TestAgeLabel(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "1M AGO"},
		{5 * time.Minute, "5M AGO"},
		{3*time.Hour + 10*time.Minute, "3H AGO"},
		{25 * time.Hour, "1 DAY AGO"},
		{4*day + time.Hour, "4 DAYS AGO"},
		{8 * day, "1 WEEK AGO"},
		{13 * day, "1 WEEK AGO"},
		{21 * day, "3 WEEKS AGO"},
	}
	for _, tt := range tests {
		if got := AgeLabel(refNow, refNow.Add(-tt.ago)); got != tt.want {
			t.Errorf("AgeLabel(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
