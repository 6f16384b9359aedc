package storefront

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mejacafe/storefront/feed"
)

const sseHeartbeat = 25 * time.Second

func (a *App) visitorCarousel(c echo.Context) (*feed.Carousel, string, error) {
	id, err := VisitorID(c)
	if err != nil {
		return nil, "", err
	}
	carousel, err := a.Hub.Get(id)
	if err != nil {
		if errors.Is(err, feed.ErrStopped) {
			return nil, "", echo.NewHTTPError(http.StatusServiceUnavailable, "feed unavailable")
		}
		return nil, "", err
	}
	return carousel, id, nil
}

// handleCarousel renders the carousel fragment for the current state.
func (a *App) handleCarousel(c echo.Context) error {
	carousel, _, err := a.visitorCarousel(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Carousel(carousel.Snapshot()))
}

// handleFeedStream pushes every carousel snapshot as a server-sent event.
// With ?format=html the data is the rendered carousel fragment, otherwise
// the snapshot as JSON.
func (a *App) handleFeedStream(c echo.Context) error {
	carousel, visitor, err := a.visitorCarousel(c)
	if err != nil {
		return err
	}
	asHTML := c.QueryParam("format") == "html"

	updates, unsubscribe := carousel.Subscribe()
	defer unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()
	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-carousel.Done():
			return nil
		case <-heartbeat.C:
			a.Hub.Touch(visitor)
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case snap := <-updates:
			data, err := a.encodeSnapshot(c, snap, asHTML)
			if err != nil {
				return err
			}
			if err := writeSSE(w, "snapshot", data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func (a *App) encodeSnapshot(c echo.Context, snap feed.Snapshot, asHTML bool) ([]byte, error) {
	if !asHTML {
		return json.Marshal(snap)
	}
	var buf bytes.Buffer
	if err := a.Views.Carousel(snap).Render(c.Request().Context(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSSE frames data as one event; each line gets its own data field.
func writeSSE(w *echo.Response, event string, data []byte) error {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')
	for _, line := range strings.Split(string(data), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := w.Write([]byte(b.String()))
	return err
}

// handleFeedEvent forwards a browser signal (navigation, hover, drag,
// resize, visibility) to the visitor's carousel.
func (a *App) handleFeedEvent(c echo.Context) error {
	var ev feed.Event
	if err := json.NewDecoder(c.Request().Body).Decode(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event")
	}
	if !ev.Kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown event kind")
	}
	carousel, visitor, err := a.visitorCarousel(c)
	if err != nil {
		return err
	}
	a.Hub.Touch(visitor)
	if err := carousel.Dispatch(c.Request().Context(), ev); err != nil {
		if errors.Is(err, feed.ErrStopped) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "feed stopped")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
