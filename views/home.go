package views

import (
	"github.com/a-h/templ"

	storefront "github.com/mejacafe/storefront"
)

// Home is the landing page: menu with category filter, the Instagram feed
// carousel, and the cart panel.
func Home(d storefront.HomeData) templ.Component {
	body := component(func(p *page) {
		p.render(Cart(d.Cart))
		p.raw(`<section id="menu" class="menu"><h2>Menu</h2><div class="filters" role="tablist">`)
		for _, c := range d.Categories {
			active := c == d.Category
			p.raw(`<a class="filter-btn`)
			if active {
				p.raw(` active`)
			}
			p.raw(`" role="tab" hx-target="#menu-items" hx-swap="outerHTML" hx-push-url="false"`)
			p.attr("href", "/?category="+c+"#menu")
			p.attr("hx-get", menuURL(c))
			if active {
				p.raw(` aria-selected="true"`)
			} else {
				p.raw(` aria-selected="false"`)
			}
			p.raw(`>`)
			p.text(CategoryLabel(c))
			p.raw(`</a>`)
		}
		p.raw(`</div>`)
		p.render(Menu(d.Products, d.Category, d.Cart.CSRF))
		p.raw(`</section><section id="feed" class="feed"><h2>Instagram</h2><div data-feed>`)
		p.render(Carousel(d.Feed))
		p.raw(`</div></section>`)
	})
	return Layout(d.Site, d.Meta, d.JsonLD, body)
}

// Menu is the product grid for one category.
func Menu(products []storefront.Product, active, csrfToken string) templ.Component {
	return component(func(p *page) {
		p.raw(`<div id="menu-items" class="menu-items"`)
		p.attr("data-category", active)
		p.raw(`>`)
		if len(products) == 0 {
			p.raw(`<p class="menu-empty">Belum ada produk di kategori ini.</p>`)
		}
		for _, prod := range products {
			productCard(p, prod, csrfToken)
		}
		p.raw(`</div>`)
	})
}

func productCard(p *page, prod storefront.Product, csrfToken string) {
	p.raw(`<article class="menu-item"`)
	p.attr("data-category", prod.Category)
	p.raw(`><a`)
	p.attr("href", prod.Link())
	p.raw(`><img loading="lazy"`)
	p.attr("src", prod.Image)
	p.attr("alt", prod.Name)
	p.raw(`></a><h3>`)
	p.text(prod.Name)
	p.raw(`</h3><p class="price">`)
	p.text(PriceLabel(prod.Price))
	p.raw(`</p><form action="/cart/add/" method="post" hx-post="/cart/add/" hx-target="#cart" hx-swap="outerHTML"><input type="hidden" name="slug"`)
	p.attr("value", prod.Slug)
	p.raw(`>`)
	csrfField(p, csrfToken)
	p.raw(`<button class="add-to-cart-btn">+ Keranjang</button></form></article>`)
}

// Product is the detail page with a full-size photo and related items.
func Product(d storefront.ProductData) templ.Component {
	body := component(func(p *page) {
		p.render(Cart(d.Cart))
		prod := d.Product
		p.raw(`<article class="product-detail"><a class="zoom" target="_blank"`)
		p.attr("href", prod.Image)
		p.raw(`><img`)
		p.attr("src", prod.Image)
		p.attr("alt", prod.Name)
		p.raw(`></a><div><p class="category">`)
		p.text(CategoryLabel(prod.Category))
		p.raw(`</p><h1>`)
		p.text(prod.Name)
		p.raw(`</h1><p class="price">`)
		p.text(PriceLabel(prod.Price))
		p.raw(`</p>`)
		p.render(Description(prod.Description))
		p.raw(`<form action="/cart/add/" method="post" hx-post="/cart/add/" hx-target="#cart" hx-swap="outerHTML"><input type="hidden" name="slug"`)
		p.attr("value", prod.Slug)
		p.raw(`>`)
		csrfField(p, d.Cart.CSRF)
		p.raw(`<button class="add-to-cart-btn">+ Keranjang</button></form></div></article>`)
		if len(d.Related) > 0 {
			p.raw(`<section class="related"><h2>Produk lain</h2><div class="menu-items">`)
			for _, r := range d.Related {
				productCard(p, r, d.Cart.CSRF)
			}
			p.raw(`</div></section>`)
		}
	})
	return Layout(d.Site, d.Meta, d.JsonLD, body)
}
