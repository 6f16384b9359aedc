package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrStopped is returned when dispatching to a carousel whose loop has exited.
var ErrStopped = errors.New("feed: carousel stopped")

// Defaults for the carousel loop.
const (
	DefaultAutoplay       = 5 * time.Second
	DefaultRefresh        = 30 * time.Second
	DefaultSwipeThreshold = 50
	DefaultFallbackURL    = "https://www.instagram.com/meja_cafe.plw/"
)

// Status is the lifecycle of the carousel content.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// MarshalText renders the status as its name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// EventKind names a user or environment input.
type EventKind string

const (
	EventNext       EventKind = "next"
	EventPrev       EventKind = "prev"
	EventGoTo       EventKind = "goto"
	EventHover      EventKind = "hover"
	EventLeave      EventKind = "leave"
	EventDragStart  EventKind = "dragstart"
	EventDragMove   EventKind = "dragmove"
	EventDragEnd    EventKind = "dragend"
	EventResize     EventKind = "resize"
	EventVisibility EventKind = "visibility"
	EventRefresh    EventKind = "refresh"
)

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventNext, EventPrev, EventGoTo, EventHover, EventLeave,
		EventDragStart, EventDragMove, EventDragEnd, EventResize,
		EventVisibility, EventRefresh:
		return true
	}
	return false
}

// Event is one input to the carousel loop. Only the fields relevant to Kind
// are read.
type Event struct {
	Kind    EventKind `json:"kind"`
	X       int       `json:"x,omitempty"`
	Width   int       `json:"width,omitempty"`
	Page    int       `json:"page,omitempty"`
	Visible bool      `json:"visible,omitempty"`
}

// Snapshot is the render state published after every change.
type Snapshot struct {
	Status      Status         `json:"status"`
	Refreshing  bool           `json:"refreshing"`
	Paused      bool           `json:"paused"`
	Posts       []SelectedPost `json:"posts"`
	Page        int            `json:"page"`
	PageCount   int            `json:"page_count"`
	PerPage     int            `json:"per_page"`
	CanPrev     bool           `json:"can_prev"`
	CanNext     bool           `json:"can_next"`
	FallbackURL string         `json:"fallback_url,omitempty"`
}

// Ticker is the subset of time.Ticker the loop uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the TickerFunc backed by time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Config tunes a Carousel. Zero fields take the package defaults; a
// negative Autoplay or Refresh disables that timer.
type Config struct {
	Autoplay       time.Duration
	Refresh        time.Duration
	SwipeThreshold int
	FallbackURL    string
	Width          int
}

func (c *Config) setDefaults() {
	if c.Autoplay == 0 {
		c.Autoplay = DefaultAutoplay
	}
	if c.Refresh == 0 {
		c.Refresh = DefaultRefresh
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = DefaultSwipeThreshold
	}
	if c.FallbackURL == "" {
		c.FallbackURL = DefaultFallbackURL
	}
}

// CarouselOption configures a Carousel.
type CarouselOption func(*Carousel)

// WithTicker replaces the ticker factory, mainly for tests.
func WithTicker(fn TickerFunc) CarouselOption {
	return func(c *Carousel) { c.newTicker = fn }
}

// WithCarouselLogger sets the logger for load failures.
func WithCarouselLogger(l logrus.FieldLogger) CarouselOption {
	return func(c *Carousel) { c.log = l }
}

type loadResult struct {
	posts   []SelectedPost
	err     error
	refresh bool
}

// Carousel is one visitor's feed. All viewport state is owned by a single
// goroutine; callers interact through Dispatch and Subscribe.
type Carousel struct {
	loader    Loader
	cfg       Config
	newTicker TickerFunc
	log       logrus.FieldLogger

	events  chan Event
	results chan loadResult

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}

	mu     sync.Mutex
	latest Snapshot
	subs   map[chan Snapshot]struct{}
}

// NewCarousel returns a carousel that is not yet running.
func NewCarousel(loader Loader, cfg Config, opts ...CarouselOption) *Carousel {
	cfg.setDefaults()
	l := logrus.New()
	l.SetOutput(io.Discard)
	c := &Carousel{
		loader:    loader,
		cfg:       cfg,
		newTicker: NewTimeTicker,
		log:       l,
		events:    make(chan Event, 16),
		results:   make(chan loadResult, 1),
		done:      make(chan struct{}),
		subs:      make(map[chan Snapshot]struct{}),
		latest:    Snapshot{Status: StatusLoading, PerPage: defaultPerPage},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the loop and the initial load. Later calls are no-ops.
func (c *Carousel) Start(ctx context.Context) {
	select {
	case <-c.done:
		return
	default:
	}
	c.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		go c.run(ctx)
	})
}

// Stop ends the loop and waits for it to exit.
func (c *Carousel) Stop() {
	c.stopOnce.Do(func() {
		if c.cancel == nil {
			close(c.done)
			return
		}
		c.cancel()
	})
	<-c.done
}

// Done is closed when the loop exits.
func (c *Carousel) Done() <-chan struct{} { return c.done }

// Dispatch queues an event for the loop.
func (c *Carousel) Dispatch(ctx context.Context, ev Event) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the most recently published state.
func (c *Carousel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Subscribe returns a channel that always holds the newest snapshot, primed
// with the current one. Slow readers skip intermediate states. The returned
// func unsubscribes.
func (c *Carousel) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	ch <- c.latest
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
		})
	}
}

func (c *Carousel) publish(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = s
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// loopState is only touched by run.
type loopState struct {
	vp         *Viewport
	status     Status
	loading    bool
	refreshing bool

	hovering bool
	dragging bool
	hidden   bool
	startX   int
	currentX int
}

func (st *loopState) suspended() bool {
	return st.hovering || st.dragging || st.hidden
}

func (c *Carousel) snapshot(st *loopState) Snapshot {
	s := Snapshot{
		Status:     st.status,
		Refreshing: st.refreshing,
		Paused:     st.suspended(),
		Posts:      st.vp.Visible(),
		Page:       st.vp.Page(),
		PageCount:  st.vp.PageCount(),
		PerPage:    st.vp.PerPage(),
		CanPrev:    st.vp.CanPrev(),
		CanNext:    st.vp.CanNext(),
	}
	if st.status == StatusError {
		s.FallbackURL = c.cfg.FallbackURL
	}
	return s
}

// timers holds the loop's tickers. A nil ticker is disarmed.
type timers struct {
	c         *Carousel
	autoplay  Ticker
	refresh   Ticker
	autoplayC <-chan time.Time
	refreshC  <-chan time.Time
}

func (t *timers) arm(tk *Ticker, ch *<-chan time.Time, d time.Duration, want bool) {
	switch {
	case want && *tk == nil && d > 0:
		*tk = t.c.newTicker(d)
		*ch = (*tk).C()
	case !want && *tk != nil:
		(*tk).Stop()
		*tk, *ch = nil, nil
	}
}

// sync arms or disarms each timer to match the loop state: auto-advance
// only while ready and not suspended, refresh only while visible.
func (t *timers) sync(st *loopState) {
	t.arm(&t.autoplay, &t.autoplayC, t.c.cfg.Autoplay, st.status == StatusReady && !st.suspended())
	t.arm(&t.refresh, &t.refreshC, t.c.cfg.Refresh, !st.hidden)
}

// restartAutoplay gives the visitor a full interval after manual navigation.
func (t *timers) restartAutoplay(st *loopState) {
	t.arm(&t.autoplay, &t.autoplayC, t.c.cfg.Autoplay, false)
	t.sync(st)
}

func (t *timers) stop() {
	t.arm(&t.autoplay, &t.autoplayC, 0, false)
	t.arm(&t.refresh, &t.refreshC, 0, false)
}

func (c *Carousel) run(ctx context.Context) {
	defer close(c.done)

	st := &loopState{vp: NewViewport(), status: StatusLoading}
	if c.cfg.Width > 0 {
		st.vp.Resize(c.cfg.Width)
	}
	tm := &timers{c: c}
	defer tm.stop()

	c.startLoad(ctx, st, false)
	tm.sync(st)
	c.publish(c.snapshot(st))

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-c.results:
			c.applyLoad(st, res)

		case <-tm.autoplayC:
			st.vp.Next()

		case <-tm.refreshC:
			if st.loading {
				continue
			}
			c.startLoad(ctx, st, true)

		case ev := <-c.events:
			if !c.handle(ctx, st, ev) {
				continue
			}
			switch ev.Kind {
			case EventNext, EventPrev, EventGoTo:
				tm.restartAutoplay(st)
			}
		}
		tm.sync(st)
		c.publish(c.snapshot(st))
	}
}

// handle applies one event and reports whether state may have changed.
func (c *Carousel) handle(ctx context.Context, st *loopState, ev Event) bool {
	switch ev.Kind {
	case EventNext:
		st.vp.Next()
	case EventPrev:
		st.vp.Prev()
	case EventGoTo:
		st.vp.GoTo(ev.Page)
	case EventHover:
		st.hovering = true
	case EventLeave:
		st.hovering = false
	case EventDragStart:
		st.dragging = true
		st.startX = ev.X
		st.currentX = ev.X
	case EventDragMove:
		if !st.dragging {
			return false
		}
		st.currentX = ev.X
	case EventDragEnd:
		if !st.dragging {
			return false
		}
		st.dragging = false
		dx := st.currentX - st.startX
		switch {
		case dx > c.cfg.SwipeThreshold:
			st.vp.Prev()
		case dx < -c.cfg.SwipeThreshold:
			st.vp.Next()
		}
	case EventResize:
		st.vp.Resize(ev.Width)
	case EventVisibility:
		st.hidden = !ev.Visible
	case EventRefresh:
		if st.loading {
			return false
		}
		c.startLoad(ctx, st, st.status == StatusReady)
	default:
		c.log.WithField("kind", ev.Kind).Debug("feed: unknown event")
		return false
	}
	return true
}

func (c *Carousel) startLoad(ctx context.Context, st *loopState, refresh bool) {
	st.loading = true
	st.refreshing = refresh
	if !refresh {
		st.status = StatusLoading
	}
	go func() {
		posts, err := c.loader.Load(ctx)
		select {
		case c.results <- loadResult{posts: posts, err: err, refresh: refresh}:
		case <-ctx.Done():
		}
	}()
}

func (c *Carousel) applyLoad(st *loopState, res loadResult) {
	st.loading = false
	st.refreshing = false
	if res.err == nil && len(res.posts) == 0 {
		res.err = ErrEmptyPool
	}
	if res.err != nil {
		if res.refresh {
			c.log.WithError(res.err).Warn("feed: refresh failed, keeping current posts")
			return
		}
		c.log.WithError(res.err).Error("feed: initial load failed")
		st.status = StatusError
		return
	}
	st.vp.SetSequence(res.posts)
	st.status = StatusReady
}
