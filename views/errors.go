package views

import "github.com/a-h/templ"

func errorPage(title, message string) templ.Component {
	return component(func(p *page) {
		p.raw(`<!doctype html><html lang="id"><head><meta charset="utf-8"><title>`)
		p.text(title)
		p.raw(`</title><link rel="stylesheet" href="/public/styles.css"></head><body><main class="error-page"><h1>`)
		p.text(title)
		p.raw(`</h1><p>`)
		p.text(message)
		p.raw(`</p><a href="/">Kembali ke beranda</a></main></body></html>`)
	})
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return errorPage("Halaman tidak ditemukan", "Produk atau halaman yang Anda cari tidak ada.")
}

// ServerError is the 500 page.
func ServerError() templ.Component {
	return errorPage("Terjadi kesalahan", "Silakan coba lagi beberapa saat lagi.")
}
