package cart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingRenderer struct {
	calls int
	last  Summary
}

func (r *recordingRenderer) Render(s Summary) {
	r.calls++
	r.last = s
}

type recordingNotifier struct {
	notices []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.notices = append(n.notices, msg)
}

func TestAddItemAggregatesByName(t *testing.T) {
	r := &recordingRenderer{}
	e := New(nil, WithRenderer(r))

	e.AddItem("Sofa Esty", 2500000, "sofa.jpeg")
	e.AddItem("Meja Taman", 750000, "meja.jpeg")
	e.AddItem("Sofa Esty", 2500000, "sofa.jpeg")

	want := []Item{
		{Name: "Sofa Esty", UnitPrice: 2500000, Quantity: 2, Image: "sofa.jpeg"},
		{Name: "Meja Taman", UnitPrice: 750000, Quantity: 1, Image: "meja.jpeg"},
	}
	if diff := cmp.Diff(want, e.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if e.TotalQuantity() != 3 {
		t.Errorf("TotalQuantity = %d, want 3", e.TotalQuantity())
	}
	if r.calls != 3 {
		t.Errorf("render calls = %d, want 3", r.calls)
	}
	if r.last.Count != 3 || r.last.Empty {
		t.Errorf("last summary = %+v, want count 3 and non-empty", r.last)
	}
}

func TestAddItemRepeatedNamesNeverDuplicate(t *testing.T) {
	e := New(nil)
	names := []string{"a", "b", "a", "c", "b", "a"}
	for _, n := range names {
		e.AddItem(n, 10, "")
	}
	if e.TotalQuantity() != len(names) {
		t.Fatalf("TotalQuantity = %d, want %d", e.TotalQuantity(), len(names))
	}
	seen := map[string]bool{}
	for _, it := range e.Items() {
		if seen[it.Name] {
			t.Fatalf("duplicate entry for %q", it.Name)
		}
		seen[it.Name] = true
	}
	if len(seen) != 3 {
		t.Errorf("distinct items = %d, want 3", len(seen))
	}
}

func TestAddItemIgnoresEmptyNameAndNegativePrice(t *testing.T) {
	e := New(nil)
	e.AddItem("", 100, "")
	if !e.IsEmpty() {
		t.Fatal("empty name should not be added")
	}
	e.AddItem("Kursi", -500, "")
	if got := e.Items()[0].UnitPrice; got != 0 {
		t.Errorf("UnitPrice = %d, want 0", got)
	}
}

func TestAdjustQuantity(t *testing.T) {
	e := New(nil)
	e.AddItem("a", 100, "")
	e.AddItem("b", 200, "")
	e.AddItem("c", 300, "")

	e.AdjustQuantity(1, 2)
	if got := e.Items()[1].Quantity; got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}

	e.AdjustQuantity(1, -3)
	got := e.Items()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 after removal", len(got))
	}
	if got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("order after removal = %v, want [a c]", got)
	}
}

func TestAdjustQuantityOutOfRangeIsNoop(t *testing.T) {
	r := &recordingRenderer{}
	e := New([]Item{{Name: "a", UnitPrice: 1, Quantity: 1}}, WithRenderer(r))
	e.AdjustQuantity(5, 1)
	e.AdjustQuantity(-1, 1)
	e.RemoveItem(9)
	if r.calls != 0 {
		t.Errorf("render calls = %d, want 0", r.calls)
	}
	if e.TotalQuantity() != 1 {
		t.Errorf("TotalQuantity = %d, want 1", e.TotalQuantity())
	}
}

func TestAdjustQuantityToZeroRendersOnce(t *testing.T) {
	r := &recordingRenderer{}
	e := New([]Item{{Name: "a", UnitPrice: 1, Quantity: 1}}, WithRenderer(r))
	e.AdjustQuantity(0, -1)
	if r.calls != 1 {
		t.Errorf("render calls = %d, want 1", r.calls)
	}
	if !r.last.Empty {
		t.Error("summary should report empty cart")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	e := New([]Item{{Name: "a", UnitPrice: 1, Quantity: 2}})

	var asked string
	declined := e.Clear(ConfirmFunc(func(p string) bool {
		asked = p
		return false
	}))
	if declined || e.IsEmpty() {
		t.Fatal("declined clear should leave the cart untouched")
	}
	if asked != ClearPrompt {
		t.Errorf("prompt = %q, want %q", asked, ClearPrompt)
	}
	if e.Clear(nil) {
		t.Fatal("nil confirmer should not clear")
	}

	if !e.Clear(ConfirmFunc(func(string) bool { return true })) {
		t.Fatal("confirmed clear should report true")
	}
	if !e.IsEmpty() {
		t.Error("cart should be empty after confirmed clear")
	}
}

func TestTotalAmount(t *testing.T) {
	e := New(nil)
	if e.TotalAmount() != 0 {
		t.Fatalf("empty TotalAmount = %d, want 0", e.TotalAmount())
	}
	e.AddItem("a", 0, "")
	e.AddItem("a", 0, "")
	if e.TotalAmount() != 0 {
		t.Errorf("zero-priced TotalAmount = %d, want 0", e.TotalAmount())
	}
	e.AddItem("b", 1500, "")
	if e.TotalAmount() != 1500 {
		t.Errorf("TotalAmount = %d, want 1500", e.TotalAmount())
	}
}

func TestOrderMessageExample(t *testing.T) {
	e := New(nil)
	e.AddItem("Sofa Esty", 2500000, "img")
	e.AddItem("Sofa Esty", 2500000, "img")

	if e.TotalAmount() != 5000000 {
		t.Fatalf("TotalAmount = %d, want 5000000", e.TotalAmount())
	}
	if e.TotalQuantity() != 2 {
		t.Fatalf("TotalQuantity = %d, want 2", e.TotalQuantity())
	}

	want := "*PESANAN FURNITURE CAFE*\n\n" +
		"1. Sofa Esty\n" +
		"   Jumlah: 2 unit\n" +
		"   Harga: Rp 2.500.000\n" +
		"   Subtotal: Rp 5.000.000\n\n" +
		"*TOTAL: Rp 5.000.000*\n\n" +
		"Mohon konfirmasi ketersediaan dan proses pemesanan. Terima kasih!"
	if diff := cmp.Diff(want, e.OrderMessage()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderMessageIsPureAndOrdered(t *testing.T) {
	e := New(nil, WithHeading("PESANAN MEJA CAFE"))
	e.AddItem("Zebra", 1, "")
	e.AddItem("Apel", 2, "")

	first := e.OrderMessage()
	if second := e.OrderMessage(); first != second {
		t.Fatal("OrderMessage should be identical without mutation")
	}
	if !strings.HasPrefix(first, "*PESANAN MEJA CAFE*") {
		t.Errorf("heading not applied: %q", first)
	}
	zebra := strings.Index(first, "1. Zebra")
	apel := strings.Index(first, "2. Apel")
	if zebra < 0 || apel < 0 || zebra > apel {
		t.Errorf("items not in insertion order: %q", first)
	}
}

func TestCheckoutEmptyNeverDispatches(t *testing.T) {
	n := &recordingNotifier{}
	dispatched := false
	e := New(nil,
		WithNotifier(n),
		WithDispatcher(DispatchFunc(func(context.Context, string) error {
			dispatched = true
			return nil
		})),
	)
	err := e.Checkout(context.Background())
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if dispatched {
		t.Fatal("empty checkout reached the dispatcher")
	}
	if len(n.notices) != 1 || n.notices[0] != EmptyNotice {
		t.Errorf("notices = %v, want [%q]", n.notices, EmptyNotice)
	}
}

func TestCheckoutDispatchesMessage(t *testing.T) {
	var got string
	e := New(nil, WithDispatcher(DispatchFunc(func(_ context.Context, msg string) error {
		got = msg
		return nil
	})))
	e.AddItem("Meja Konsol", 900000, "")
	if err := e.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if got != e.OrderMessage() {
		t.Errorf("dispatched %q, want the order message", got)
	}
}

func TestCheckoutWrapsDispatchError(t *testing.T) {
	boom := errors.New("boom")
	e := New([]Item{{Name: "a", Quantity: 1}}, WithDispatcher(DispatchFunc(func(context.Context, string) error {
		return boom
	})))
	if err := e.Checkout(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestNewNormalizesSeedItems(t *testing.T) {
	e := New([]Item{
		{Name: "a", UnitPrice: 10, Quantity: 1},
		{Name: "", UnitPrice: 10, Quantity: 1},
		{Name: "b", UnitPrice: -3, Quantity: 2},
		{Name: "a", UnitPrice: 10, Quantity: 2},
		{Name: "c", UnitPrice: 10, Quantity: 0},
	})
	want := []Item{
		{Name: "a", UnitPrice: 10, Quantity: 3},
		{Name: "b", UnitPrice: 0, Quantity: 2},
	}
	if diff := cmp.Diff(want, e.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestItemDetails(t *testing.T) {
	e := New([]Item{{Name: "Set Elinda", Quantity: 2}})
	got, ok := e.ItemDetails(0)
	if !ok {
		t.Fatal("expected details for index 0")
	}
	if !strings.Contains(got, "Set Elinda") || !strings.Contains(got, "Jumlah: 2 unit") {
		t.Errorf("details = %q", got)
	}
	if _, ok := e.ItemDetails(3); ok {
		t.Error("out-of-range index should report false")
	}
}
