package feed

import (
	"strconv"
	"testing"
)

func seqOf(n int) []SelectedPost {
	out := make([]SelectedPost, n)
	for i := range out {
		out[i] = SelectedPost{Post: Post{ID: strconv.Itoa(i + 1)}}
	}
	return out
}

func TestViewportWraps(t *testing.T) {
	v := NewViewport()
	v.SetSequence(seqOf(9))
	if v.PageCount() != 3 {
		t.Fatalf("PageCount = %d, want 3", v.PageCount())
	}
	v.Next()
	v.Next()
	if v.Page() != 2 || v.CanNext() {
		t.Fatalf("page = %d canNext = %v", v.Page(), v.CanNext())
	}
	v.Next()
	if v.Page() != 0 {
		t.Errorf("Next from last = %d, want 0", v.Page())
	}
	v.Prev()
	if v.Page() != 2 {
		t.Errorf("Prev from first = %d, want 2", v.Page())
	}
}

func TestViewportVisible(t *testing.T) {
	v := NewViewport()
	v.SetSequence(seqOf(7))
	v.GoTo(2)
	got := v.Visible()
	if len(got) != 1 || got[0].ID != "7" {
		t.Errorf("last page = %v", ids(got))
	}
}

func TestViewportResizeClamps(t *testing.T) {
	v := NewViewport()
	v.SetSequence(seqOf(6))
	v.Resize(500)
	if v.PerPage() != 1 || v.PageCount() != 6 {
		t.Fatalf("narrow: perPage %d pages %d", v.PerPage(), v.PageCount())
	}
	v.GoTo(5)
	v.Resize(1200)
	if v.PageCount() != 2 || v.Page() != 1 {
		t.Errorf("wide: pages %d page %d, want 2 and 1", v.PageCount(), v.Page())
	}
	v.Resize(0)
	if v.PerPage() != 3 {
		t.Errorf("zero width changed perPage to %d", v.PerPage())
	}
}

func TestPerPageForWidth(t *testing.T) {
	for width, want := range map[int]int{320: 1, 600: 1, 601: 2, 768: 2, 769: 3, 1440: 3} {
		if got := PerPageForWidth(width); got != want {
			t.Errorf("PerPageForWidth(%d) = %d, want %d", width, got, want)
		}
	}
}

func TestViewportGoToClamps(t *testing.T) {
	v := NewViewport()
	v.SetSequence(seqOf(6))
	v.GoTo(10)
	if v.Page() != 1 {
		t.Errorf("GoTo(10) = %d, want 1", v.Page())
	}
	v.GoTo(-3)
	if v.Page() != 0 {
		t.Errorf("GoTo(-3) = %d, want 0", v.Page())
	}
}

func TestViewportEmpty(t *testing.T) {
	var v Viewport
	v.Next()
	v.Prev()
	v.GoTo(3)
	if v.Page() != 0 || v.PageCount() != 0 || v.Visible() != nil {
		t.Errorf("empty viewport moved: page %d", v.Page())
	}
	if v.CanPrev() || v.CanNext() {
		t.Error("empty viewport reports navigable")
	}
}
