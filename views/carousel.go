package views

import (
	"github.com/a-h/templ"

	"github.com/mejacafe/storefront/feed"
	"github.com/mejacafe/storefront/money"
)

// Carousel renders one feed snapshot. storefront.js swaps it in place on
// every server-sent snapshot and posts navigation back.
func Carousel(s feed.Snapshot) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="carousel" data-status="`, s.Status.String(), `" data-page="`, itoa(s.Page), `" data-per-page="`, itoa(s.PerPage), `">`)
		switch s.Status {
		case feed.StatusLoading:
			p.raw(`<div class="carousel-loading">Memuat postingan&hellip;</div></div>`)
			return
		case feed.StatusError:
			p.raw(`<div class="carousel-error"><p>Gagal memuat postingan.</p><a target="_blank" rel="noopener"`)
			p.attr("href", s.FallbackURL)
			p.raw(`>Lihat di Instagram</a></div></div>`)
			return
		}
		if s.Refreshing {
			p.raw(`<div class="carousel-refreshing" aria-hidden="true"></div>`)
		}

		p.raw(`<button class="carousel-prev" data-feed-event="prev" aria-label="Sebelumnya"`)
		if !s.CanPrev {
			p.raw(` aria-disabled="true"`)
		}
		p.raw(`>&lsaquo;</button><div class="carousel-track">`)
		for _, post := range s.Posts {
			p.raw(`<article class="instagram-post-card"`)
			p.attr("data-post-id", post.ID)
			p.raw(`><header><img class="avatar"`)
			p.attr("src", assetURL(post.Display.Avatar))
			p.raw(` alt=""><div><strong>`)
			p.text(post.Display.Author)
			p.raw(`</strong><span>`)
			p.text(post.Display.Location)
			p.raw(`</span></div></header><img class="post-image" loading="lazy"`)
			p.attr("src", assetURL(post.Display.Image))
			p.attr("alt", post.Display.Caption)
			p.raw(`><footer><span class="likes">`)
			p.text(money.Number(int64(post.Likes)))
			p.raw(` suka</span><p class="caption"><strong>`)
			p.text(post.Display.Author)
			p.raw(`</strong> `)
			p.text(post.Display.Caption)
			p.raw(`</p><p class="tags">`, hashtagLinks(post.Display.Tags))
			p.raw(`</p><time`)
			p.attr("datetime", post.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
			p.raw(`>`)
			p.text(post.AgeLabel)
			p.raw(`</time></footer></article>`)
		}
		p.raw(`</div><button class="carousel-next" data-feed-event="next" aria-label="Berikutnya"`)
		if !s.CanNext {
			p.raw(` aria-disabled="true"`)
		}
		p.raw(`>&rsaquo;</button><div class="carousel-dots">`)
		for i := 0; i < s.PageCount; i++ {
			p.raw(`<button class="carousel-dot`)
			if i == s.Page {
				p.raw(` active`)
			}
			p.raw(`" data-feed-event="goto" data-page="`, itoa(i), `" aria-label="Halaman `, itoa(i+1), `"></button>`)
		}
		p.raw(`</div></div>`)
	})
}
