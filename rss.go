package storefront

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mejacafe/storefront/feed"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Category    string    `xml:"category,omitempty"`
	PubDate     string    `xml:"pubDate"`
	GUID        rssGUID   `xml:"guid"`
	Enclosure   *rssImage `xml:"enclosure,omitempty"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssImage struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// renderRSS publishes one fresh selection of promotional posts.
func (a *App) renderRSS(c echo.Context, posts []feed.SelectedPost) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		item := rssItem{
			Title:       rssTitle(p.Display.Caption),
			Link:        a.Config.InstagramURL,
			Description: p.Display.Caption + " " + p.Display.Tags,
			Category:    p.Category,
			PubDate:     p.Timestamp.Format(time.RFC1123Z),
			GUID:        rssGUID{Value: "post-" + p.ID},
		}
		if p.Display.Image != "" {
			item.Enclosure = &rssImage{URL: BuildURL(base, "public") + EscapePath(p.Display.Image), Type: "image/jpeg"}
		}
		items = append(items, item)
	}
	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(doc)
}

// rssTitle is the caption up to its first sentence break.
func rssTitle(caption string) string {
	if i := strings.IndexAny(caption, "!.?"); i > 0 {
		return strings.TrimSpace(caption[:i+1])
	}
	return caption
}
