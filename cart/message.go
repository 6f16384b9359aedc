package cart

import (
	"fmt"
	"strings"

	"github.com/mejacafe/storefront/money"
)

const closingLine = "Mohon konfirmasi ketersediaan dan proses pemesanan. Terima kasih!"

// OrderMessage lists every item in cart order with quantity, unit price and
// subtotal, then the grand total and a closing request. It depends only on
// the current contents.
func (e *Engine) OrderMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", e.heading)

	var total int64
	for i, it := range e.items {
		sub := it.Subtotal()
		total += sub
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Name)
		fmt.Fprintf(&b, "   Jumlah: %d unit\n", it.Quantity)
		fmt.Fprintf(&b, "   Harga: %s\n", money.Format(it.UnitPrice))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", money.Format(sub))
	}

	fmt.Fprintf(&b, "*TOTAL: %s*\n\n", money.Format(total))
	b.WriteString(closingLine)
	return b.String()
}

// ItemDetails returns the detail text shown when a cart line is opened.
func (e *Engine) ItemDetails(index int) (string, bool) {
	if !e.inRange(index) {
		return "", false
	}
	it := e.items[index]
	return fmt.Sprintf("Detail Produk:\n\n%s\nJumlah: %d unit\n\nHubungi kami untuk info harga!", it.Name, it.Quantity), true
}
