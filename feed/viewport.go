package feed

// Width breakpoints for posts per page.
const (
	narrowMaxWidth = 600
	mediumMaxWidth = 768
	defaultPerPage = 3
)

// Viewport paginates a selected sequence. The zero value is an empty
// three-per-page viewport.
type Viewport struct {
	seq     []SelectedPost
	perPage int
	page    int
}

// NewViewport returns an empty viewport with the desktop page size.
func NewViewport() *Viewport {
	return &Viewport{perPage: defaultPerPage}
}

// PerPageForWidth maps a viewport width in CSS pixels to posts per page.
func PerPageForWidth(width int) int {
	switch {
	case width <= narrowMaxWidth:
		return 1
	case width <= mediumMaxWidth:
		return 2
	default:
		return 3
	}
}

// PerPage returns the current page size.
func (v *Viewport) PerPage() int {
	if v.perPage <= 0 {
		return defaultPerPage
	}
	return v.perPage
}

// Page returns the zero-based current page.
func (v *Viewport) Page() int { return v.page }

// Len returns the number of posts in the sequence.
func (v *Viewport) Len() int { return len(v.seq) }

// PageCount is ceil(Len / PerPage); zero for an empty sequence.
func (v *Viewport) PageCount() int {
	per := v.PerPage()
	return (len(v.seq) + per - 1) / per
}

func (v *Viewport) lastPage() int {
	return v.PageCount() - 1
}

// Next advances one page, wrapping from the last page to the first.
func (v *Viewport) Next() {
	if v.PageCount() == 0 {
		return
	}
	if v.page >= v.lastPage() {
		v.page = 0
		return
	}
	v.page++
}

// Prev goes back one page, wrapping from the first page to the last.
func (v *Viewport) Prev() {
	if v.PageCount() == 0 {
		return
	}
	if v.page <= 0 {
		v.page = v.lastPage()
		return
	}
	v.page--
}

// GoTo jumps to page n, clamped into [0, PageCount-1].
func (v *Viewport) GoTo(n int) {
	v.page = n
	v.clamp()
}

// SetSequence replaces the sequence after a selection refresh and returns
// to the first page.
func (v *Viewport) SetSequence(seq []SelectedPost) {
	v.seq = seq
	v.page = 0
}

// Resize recomputes the page size for width and keeps the current page in
// bounds. Non-positive widths are ignored.
func (v *Viewport) Resize(width int) {
	if width <= 0 {
		return
	}
	v.perPage = PerPageForWidth(width)
	v.clamp()
}

// Visible returns the posts on the current page.
func (v *Viewport) Visible() []SelectedPost {
	if len(v.seq) == 0 {
		return nil
	}
	per := v.PerPage()
	start := v.page * per
	if start >= len(v.seq) {
		return nil
	}
	end := start + per
	if end > len(v.seq) {
		end = len(v.seq)
	}
	out := make([]SelectedPost, end-start)
	copy(out, v.seq[start:end])
	return out
}

// Sequence returns a copy of the whole selected sequence.
func (v *Viewport) Sequence() []SelectedPost {
	out := make([]SelectedPost, len(v.seq))
	copy(out, v.seq)
	return out
}

// CanPrev and CanNext drive the disabled state of the arrow buttons only;
// Next and Prev still wrap.
func (v *Viewport) CanPrev() bool { return v.page > 0 }

// CanNext reports whether the current page is before the last one.
func (v *Viewport) CanNext() bool { return v.page < v.lastPage() }

func (v *Viewport) clamp() {
	last := v.lastPage()
	if v.page > last {
		v.page = last
	}
	if v.page < 0 {
		v.page = 0
	}
}
