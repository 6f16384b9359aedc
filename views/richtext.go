package views

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic  = regexp.MustCompile(`\*([^*]+)\*`)
	reLink    = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reHashtag = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
)

const tagBaseURL = "https://www.instagram.com/explore/tags/"

// Description renders a product description written in a small markup
// subset: blank-line separated paragraphs, "- " bullet lists, **bold**,
// *italic*, and [text](url) links.
func Description(text string) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="description">`)
		writeDescription(p, text)
		p.raw(`</div>`)
	})
}

func writeDescription(p *page, text string) {
	inList, inPara := false, false
	closeBlock := func() {
		if inList {
			p.raw("</ul>")
			inList = false
		}
		if inPara {
			p.raw("</p>")
			inPara = false
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		switch {
		case line == "":
			closeBlock()
		case strings.HasPrefix(line, "- "):
			if !inList {
				closeBlock()
				p.raw("<ul>")
				inList = true
			}
			p.raw("<li>", formatInline(line[2:]), "</li>")
		default:
			if inList {
				closeBlock()
			}
			if inPara {
				p.raw(" ")
			} else {
				p.raw("<p>")
				inPara = true
			}
			p.raw(formatInline(line))
		}
	}
	closeBlock()
}

// formatInline escapes s and applies links, then bold and italic outside
// the generated tags.
func formatInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + match[1] + `</a>`
	})
	return outsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})
}

// hashtagLinks escapes tags and links every #tag to its Instagram page.
func hashtagLinks(tags string) string {
	var b strings.Builder
	last := 0
	for _, loc := range reHashtag.FindAllStringSubmatchIndex(tags, -1) {
		b.WriteString(html.EscapeString(tags[last:loc[0]]))
		tag := tags[loc[2]:loc[3]]
		b.WriteString(`<a href="` + tagBaseURL + url.PathEscape(tag) + `/" target="_blank" rel="noopener">#`)
		b.WriteString(html.EscapeString(tag))
		b.WriteString(`</a>`)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(tags[last:]))
	return b.String()
}

// outsideTags applies fn only to the text between HTML tags so formatting
// never rewrites attribute values.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// safeURL accepts site-relative paths and http, https, mailto, and tel
// links. Anything else yields "".
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	}
	return ""
}
