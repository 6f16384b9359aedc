package views

import (
	"github.com/a-h/templ"

	storefront "github.com/mejacafe/storefront"
	"github.com/mejacafe/storefront/money"
)

// Cart renders the cart panel: badge, item list, total, empty state, the
// clear prompt, and any notice. It replaces itself on every htmx action.
func Cart(v storefront.CartView) templ.Component {
	return component(func(p *page) {
		s := v.Summary
		p.raw(`<aside id="cart" class="cart-dropdown`)
		if v.Open {
			p.raw(` open`)
		}
		p.raw(`" hx-target="#cart" hx-swap="outerHTML">`)
		p.raw(`<span class="cart-count" aria-label="Jumlah item">`, itoa(s.Count), `</span>`)

		if v.Notice != "" {
			p.raw(`<p class="cart-notice" role="alert">`)
			p.text(v.Notice)
			p.raw(`</p>`)
		}

		if s.Empty {
			p.raw(`<p class="cart-empty">Keranjang kosong</p>`)
		} else {
			p.raw(`<ul class="cart-list">`)
			for i, item := range s.Items {
				idx := itoa(i)
				p.raw(`<li class="cart-item">`)
				if item.Image != "" {
					p.raw(`<img`)
					p.attr("src", item.Image)
					p.attr("alt", item.Name)
					p.raw(` loading="lazy">`)
				}
				p.raw(`<button class="cart-item-name" hx-target="#cart-details" hx-swap="innerHTML"`)
				p.attr("hx-get", "/cart/item/"+idx+"/")
				p.raw(`>`)
				p.text(item.Name)
				p.raw(`</button><span class="cart-item-price">`)
				p.text(money.Format(item.UnitPrice))
				p.raw(`</span><form class="cart-qty"`)
				p.attr("hx-post", "/cart/item/"+idx+"/adjust/")
				p.raw(`>`)
				csrfField(p, v.CSRF)
				p.raw(`<button class="decrease" name="delta" value="-1" aria-label="Kurangi">&minus;</button>`)
				p.raw(`<span>`, itoa(item.Quantity), `</span>`)
				p.raw(`<button class="increase" name="delta" value="1" aria-label="Tambah">+</button></form>`)
				p.raw(`<form`)
				p.attr("hx-post", "/cart/item/"+idx+"/remove/")
				p.raw(`>`)
				csrfField(p, v.CSRF)
				p.raw(`<button class="cart-remove" aria-label="Hapus">&times;</button></form></li>`)
			}
			p.raw(`</ul><div id="cart-details" class="cart-details"></div>`)
		}

		p.raw(`<p class="cart-total">Total: <strong>`)
		p.text(money.Format(s.Total))
		p.raw(`</strong></p>`)

		if v.ConfirmClear {
			p.raw(`<form class="cart-confirm" hx-post="/cart/clear/"><p>`)
			p.text(v.ClearPrompt)
			p.raw(`</p>`)
			csrfField(p, v.CSRF)
			p.raw(`<button name="confirm" value="yes">Ya</button><button name="confirm" value="no">Batal</button></form>`)
		} else {
			p.raw(`<form class="cart-actions" action="/cart/clear/" method="post" hx-post="/cart/clear/">`)
			csrfField(p, v.CSRF)
			p.raw(`<button class="cart-clear">Hapus semua</button></form>`)
		}

		p.raw(`<form action="/cart/checkout/" method="post" target="_blank" hx-post="/cart/checkout/">`)
		csrfField(p, v.CSRF)
		p.raw(`<button class="cart-checkout">Pesan via WhatsApp</button></form>`)
		if v.CheckoutURL != "" {
			p.raw(`<a class="cart-checkout-link" target="_blank" rel="noopener"`)
			p.attr("href", v.CheckoutURL)
			p.raw(`>Buka WhatsApp</a>`)
		}
		p.raw(`</aside>`)
	})
}

// CartItemDetails is the text shown when an item name is clicked.
func CartItemDetails(details string) templ.Component {
	return component(func(p *page) {
		p.raw(`<pre class="cart-item-details">`)
		p.text(details)
		p.raw(`</pre>`)
	})
}
