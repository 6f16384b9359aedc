// Package cart keeps a visitor's in-progress selection of catalog items and
// turns it into an order message for the messaging handoff.
package cart

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrEmpty is returned by Checkout when there is nothing to order.
var ErrEmpty = errors.New("cart: empty")

// Notices shown to the visitor at the boundary.
const (
	EmptyNotice  = "Keranjang masih kosong!"
	ClearPrompt  = "Hapus semua item dari keranjang?"
	DefaultTitle = "PESANAN FURNITURE CAFE"
)

// Item is one line of the cart. Name is the identity key.
type Item struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// Subtotal is UnitPrice × Quantity.
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Summary is what a renderer needs to redraw the badge, list, total and
// empty state.
type Summary struct {
	Items []Item
	Count int
	Total int64
	Empty bool
}

// Renderer redraws the cart after every mutation.
type Renderer interface {
	Render(Summary)
}

// Notifier shows a blocking, user-visible notice.
type Notifier interface {
	Notify(msg string)
}

// Confirmer asks the visitor a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Dispatcher hands a finished order message to the external channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, message string) error
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, message string) error

// Dispatch calls f(ctx, message).
func (f DispatchFunc) Dispatch(ctx context.Context, message string) error { return f(ctx, message) }

// Engine owns an ordered list of items. Collaborators are optional; a nil
// collaborator means that concern is silently skipped.
type Engine struct {
	items      []Item
	heading    string
	renderer   Renderer
	notifier   Notifier
	dispatcher Dispatcher
	log        logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer sets the re-render hook.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithNotifier sets where user-visible notices go.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithDispatcher sets the order handoff collaborator used by Checkout.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

// WithHeading overrides the bold title line of the order message.
func WithHeading(h string) Option {
	return func(e *Engine) {
		if h != "" {
			e.heading = h
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an engine seeded with items, typically loaded from a Store.
// Entries that break the cart invariants (empty name, quantity < 1,
// duplicate name) are dropped or merged on the way in.
func New(items []Item, opts ...Option) *Engine {
	discard := logrus.New()
	discard.Out = io.Discard
	e := &Engine{
		heading: DefaultTitle,
		log:     discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, it := range items {
		if it.Name == "" || it.Quantity < 1 {
			continue
		}
		if it.UnitPrice < 0 {
			it.UnitPrice = 0
		}
		if idx := e.indexOf(it.Name); idx >= 0 {
			e.items[idx].Quantity += it.Quantity
			continue
		}
		e.items = append(e.items, it)
	}
	return e
}

// AddItem increments the quantity of the item called name, or appends it
// with quantity 1. A negative price is treated as zero.
func (e *Engine) AddItem(name string, unitPrice int64, image string) {
	if name == "" {
		e.log.Warn("add ignored: empty item name")
		return
	}
	if unitPrice < 0 {
		unitPrice = 0
	}
	if idx := e.indexOf(name); idx >= 0 {
		e.items[idx].Quantity++
	} else {
		e.items = append(e.items, Item{
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  1,
			Image:     image,
		})
	}
	e.render()
}

// AdjustQuantity adds delta to the item at index. A result of zero or less
// removes the item. Out-of-range indexes are ignored.
func (e *Engine) AdjustQuantity(index, delta int) {
	if !e.inRange(index) {
		return
	}
	e.items[index].Quantity += delta
	if e.items[index].Quantity <= 0 {
		e.RemoveItem(index)
		return
	}
	e.render()
}

// RemoveItem deletes the item at index; later items shift down by one.
func (e *Engine) RemoveItem(index int) {
	if !e.inRange(index) {
		return
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	e.render()
}

// Clear empties the cart if c confirms and reports whether it did.
// A nil confirmer counts as "no".
func (e *Engine) Clear(c Confirmer) bool {
	if c == nil || !c.Confirm(ClearPrompt) {
		return false
	}
	e.items = nil
	e.render()
	return true
}

// IsEmpty reports whether the cart holds no items.
func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

// TotalQuantity sums quantities across all items.
func (e *Engine) TotalQuantity() int {
	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

// TotalAmount sums UnitPrice × Quantity across all items.
func (e *Engine) TotalAmount() int64 {
	var total int64
	for _, it := range e.items {
		total += it.Subtotal()
	}
	return total
}

// Items returns a copy of the cart in display order.
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Summary snapshots the values a renderer displays.
func (e *Engine) Summary() Summary {
	return Summary{
		Items: e.Items(),
		Count: e.TotalQuantity(),
		Total: e.TotalAmount(),
		Empty: e.IsEmpty(),
	}
}

// Checkout hands the order message to the dispatcher. An empty cart
// raises EmptyNotice and returns ErrEmpty without dispatching.
func (e *Engine) Checkout(ctx context.Context) error {
	if e.IsEmpty() {
		if e.notifier != nil {
			e.notifier.Notify(EmptyNotice)
		}
		return ErrEmpty
	}
	if e.dispatcher == nil {
		e.log.Warn("checkout: no dispatcher configured")
		return nil
	}
	msg := e.OrderMessage()
	if err := e.dispatcher.Dispatch(ctx, msg); err != nil {
		e.log.WithError(err).WithField("items", len(e.items)).Error("checkout dispatch failed")
		return fmt.Errorf("cart: dispatch order: %w", err)
	}
	e.log.WithFields(logrus.Fields{
		"items": len(e.items),
		"total": e.TotalAmount(),
	}).Info("order handed off")
	return nil
}

func (e *Engine) render() {
	if e.renderer == nil {
		return
	}
	e.renderer.Render(e.Summary())
}

func (e *Engine) indexOf(name string) int {
	for i, it := range e.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

func (e *Engine) inRange(index int) bool {
	return index >= 0 && index < len(e.items)
}
