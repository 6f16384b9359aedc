package views

import (
	"github.com/a-h/templ"

	storefront "github.com/mejacafe/storefront"
)

// Layout wraps body in the document shell with SEO metadata.
func Layout(site storefront.SiteConfig, meta storefront.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<!doctype html><html lang="id"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(meta.Title)
		p.raw(`</title><meta name="description"`)
		p.attr("content", meta.Description)
		p.raw(`><link rel="canonical"`)
		p.attr("href", meta.URL)
		p.raw(`><meta property="og:title"`)
		p.attr("content", meta.Title)
		p.raw(`><meta property="og:type"`)
		p.attr("content", meta.OGType)
		p.raw(`><meta property="og:url"`)
		p.attr("content", meta.URL)
		p.raw(`><meta property="og:site_name"`)
		p.attr("content", site.Name)
		p.raw(`><link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		p.attr("title", site.Name)
		p.raw(`><link rel="stylesheet" href="/public/styles.css">`)
		if jsonLD != "" {
			p.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		}
		p.raw(`<script src="/public/htmx.min.js" defer></script>`)
		p.raw(`</head><body><header class="site-header"><a class="brand" href="/">`)
		p.text(site.Name)
		p.raw(`</a><nav><a href="/#menu">Menu</a><a href="/#feed">Instagram</a>`)
		p.raw(`<button id="cart-toggle" class="cart-toggle" hx-get="/cart/" hx-target="#cart" hx-swap="outerHTML">Keranjang</button>`)
		p.raw(`</nav></header><main>`)
		p.render(body)
		p.raw(`</main><footer class="site-footer"><a`)
		p.attr("href", site.InstagramURL)
		p.raw(` target="_blank" rel="noopener">Instagram</a></footer>`)
		p.raw(`<script src="/public/storefront.js" defer></script></body></html>`)
	})
}
