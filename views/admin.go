package views

import (
	"strconv"

	"github.com/a-h/templ"

	storefront "github.com/mejacafe/storefront"
)

func adminShell(title string, body func(p *page)) templ.Component {
	return component(func(p *page) {
		p.raw(`<!doctype html><html lang="id"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<meta name="robots" content="noindex"><title>`)
		p.text(title)
		p.raw(`</title><link rel="stylesheet" href="/public/styles.css">`)
		p.raw(`<script src="/public/htmx.min.js" defer></script></head><body class="admin"><main>`)
		body(p)
		p.raw(`</main></body></html>`)
	})
}

// AdminLogin is the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminShell("Admin", func(p *page) {
		p.raw(`<h1>Admin</h1><form method="post" action="/admin/login/">`)
		csrfField(p, csrfToken)
		if showError {
			p.raw(`<p class="error">Password salah atau terlalu banyak percobaan.</p>`)
		}
		p.raw(`<label>Password <input type="password" name="password" autocomplete="current-password" required></label>`)
		p.raw(`<button type="submit">Masuk</button></form>`)
	})
}

// AdminDashboard lists every product, published or not.
func AdminDashboard(products []storefront.Product, message, csrfToken string) templ.Component {
	return adminShell("Admin - Produk", func(p *page) {
		p.raw(`<div id="admin"><header class="admin-bar"><h1>Produk</h1>`)
		p.raw(`<a href="/admin/images/">Gambar</a>`)
		p.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(p, csrfToken)
		p.raw(`<button type="submit">Keluar</button></form></header>`)
		if message != "" {
			p.raw(`<p class="notice">`)
			p.text(message)
			p.raw(`</p>`)
		}
		p.raw(`<button hx-get="/admin/product/new/" hx-target="#admin-form">Produk baru</button>`)
		p.raw(`<div id="admin-form"></div>`)
		p.raw(`<table class="admin-products"><thead><tr><th>Nama</th><th>Kategori</th><th>Harga</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, prod := range products {
			p.raw(`<tr><td>`)
			p.text(prod.Name)
			p.raw(`</td><td>`)
			p.text(CategoryLabel(prod.Category))
			p.raw(`</td><td>`)
			p.text(PriceLabel(prod.Price))
			p.raw(`</td><td>`)
			if prod.Published {
				p.raw(`tayang`)
			} else {
				p.raw(`draf`)
			}
			p.raw(`</td><td><button hx-target="#admin-form"`)
			p.attr("hx-get", "/admin/product/"+storefront.PathEscape(prod.Slug)+"/")
			p.raw(`>Ubah</button><button hx-target="#admin" hx-select="#admin" hx-swap="outerHTML" hx-confirm="Hapus produk ini?"`)
			p.attr("hx-delete", "/admin/product/"+storefront.PathEscape(prod.Slug)+"/")
			p.attr("hx-headers", `{"X-CSRF-Token": "`+csrfToken+`"}`)
			p.raw(`>Hapus</button></td></tr>`)
		}
		p.raw(`</tbody></table></div>`)
	})
}

// AdminFormPartial is the create/edit form swapped into the dashboard.
func AdminFormPartial(prod storefront.Product, csrfToken string) templ.Component {
	return component(func(p *page) {
		p.raw(`<form class="admin-form" method="post" action="/admin/save/">`)
		csrfField(p, csrfToken)
		p.raw(`<label>Nama <input name="name" required`)
		p.attr("value", prod.Name)
		p.raw(`></label><label>Slug <input name="slug"`)
		p.attr("value", prod.Slug)
		p.raw(`></label><label>Kategori <select name="category">`)
		for _, c := range storefront.Categories[1:] {
			p.raw(`<option`)
			p.attr("value", c)
			if c == prod.Category {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.text(CategoryLabel(c))
			p.raw(`</option>`)
		}
		p.raw(`</select></label><label>Harga <input name="price" inputmode="numeric"`)
		if prod.Price > 0 {
			p.attr("value", strconv.FormatInt(prod.Price, 10))
		}
		p.raw(`></label><label>Gambar <input name="image"`)
		p.attr("value", prod.Image)
		p.raw(`></label><label>Deskripsi <textarea name="description" rows="4">`)
		p.text(prod.Description)
		p.raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if prod.Published {
			p.raw(` checked`)
		}
		p.raw(`> Tayang</label><button type="submit">Simpan</button></form>`)
	})
}

// AdminImages is the upload form and the library of uploaded images.
func AdminImages(images []storefront.Image, csrfToken string) templ.Component {
	return adminShell("Admin - Gambar", func(p *page) {
		p.raw(`<div id="images"><header class="admin-bar"><h1>Gambar</h1><a href="/admin/">Produk</a></header>`)
		p.raw(`<form hx-post="/admin/images/upload/" hx-encoding="multipart/form-data" hx-target="#images" hx-select="#images" hx-swap="outerHTML"`)
		p.raw(` method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(p, csrfToken)
		p.raw(`<input type="file" name="image" accept="image/*" required>`)
		p.raw(`<input name="product" placeholder="slug produk (opsional)">`)
		p.raw(`<button type="submit">Unggah</button></form><ul class="image-grid">`)
		for _, img := range images {
			url := storefront.ImageURL(img.Filename)
			p.raw(`<li><img loading="lazy"`)
			p.attr("src", url)
			p.attr("alt", img.OriginalName)
			p.raw(`><code>`)
			p.text(url)
			p.raw(`</code><small>`)
			p.text(itoa(img.Width) + "x" + itoa(img.Height))
			p.raw(`</small><button hx-target="#images" hx-select="#images" hx-swap="outerHTML" hx-confirm="Hapus gambar ini?"`)
			p.attr("hx-delete", "/admin/images/"+storefront.PathEscape(img.Filename)+"/")
			p.attr("hx-headers", `{"X-CSRF-Token": "`+csrfToken+`"}`)
			p.raw(`>Hapus</button></li>`)
		}
		p.raw(`</ul></div>`)
	})
}
