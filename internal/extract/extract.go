package extract

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MinContentRunes is the minimum extracted length for a page to count
	// as a full article; shorter results are stubs or teaser pages.
	MinContentRunes = 200
	// MaxContentRunes bounds the stored excerpt.
	MaxContentRunes = 2000

	minTitleRunes = 10
)

// Result holds what could be pulled out of an article page. Title and
// Content are empty when no ladder level produced a usable candidate;
// Published is zero when no date metadata was found. The caller substitutes
// the collection time for a missing date, but rejects the article on a
// missing title or short content.
type Result struct {
	Title     string
	Published time.Time
	Content   string
}

// Parse runs all extraction ladders over the raw page markup.
func Parse(body []byte) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Result{
		Title:     Title(doc),
		Published: PublishedDate(doc),
		Content:   Content(doc),
	}, nil
}

// Generic category labels that sometimes sit in a page's only h1.
var genericHeadings = map[string]bool{
	"business":   true,
	"economy":    true,
	"home":       true,
	"news":       true,
	"investment": true,
	"society":    true,
	"politics":   true,
	"world":      true,
	"video":      true,
	"photo":      true,
}

// Title walks the extraction ladder and returns the first usable candidate.
// Order: heading in an article container, og:title, heading in the main
// content container, any h1 outside navigation chrome, document title with
// the site-name suffix stripped. Every level requires more than 10 runes.
func Title(doc *goquery.Document) string {
	if t := headingIn(doc, "article h1, .article h1, .post h1, .entry h1, .article-detail h1"); t != "" {
		return t
	}

	if c, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := usable(c); t != "" {
			return t
		}
	}

	if t := headingIn(doc, "main h1, #content h1, .content h1, .main-content h1"); t != "" {
		return t
	}

	var found string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Closest("nav, header, footer, aside").Length() > 0 {
			return true
		}
		t := usable(s.Text())
		if t == "" || genericHeadings[strings.ToLower(t)] {
			return true
		}
		found = t
		return false
	})
	if found != "" {
		return found
	}

	return usable(stripSiteSuffix(doc.Find("title").First().Text()))
}

func headingIn(doc *goquery.Document, selector string) string {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := usable(s.Text()); t != "" {
			found = t
			return false
		}
		return true
	})
	return found
}

// usable normalizes whitespace and applies the minimum-length rule shared
// by every ladder level.
func usable(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= minTitleRunes {
		return ""
	}
	return s
}

// stripSiteSuffix drops the trailing site name after the final separator,
// e.g. "Plant opens in Long An - VnExpress" -> "Plant opens in Long An".
func stripSiteSuffix(title string) string {
	title = strings.TrimSpace(title)
	cut := -1
	for _, sep := range []string{" - ", " | "} {
		if idx := strings.LastIndex(title, sep); idx > cut {
			cut = idx
		}
	}
	if cut > 0 {
		return title[:cut]
	}
	return title
}

// Metadata selectors tried in order for the publication date.
var dateMetaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="article:published_time"]`,
	`meta[name="publish_date"]`,
	`meta[name="date"]`,
	`meta[property="og:published_time"]`,
	`meta[itemprop="datePublished"]`,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// PublishedDate returns the publication date from page metadata, or the
// zero time when none of the known carriers is present and parseable.
func PublishedDate(doc *goquery.Document) time.Time {
	for _, sel := range dateMetaSelectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if t, ok := parseDate(v); ok {
				return t
			}
		}
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, ok := parseDate(v); ok {
			return t
		}
	}
	return time.Time{}
}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Content-class selectors tried after the semantic <article> container.
// Includes the body classes used by the major Vietnamese news sites.
var contentSelectors = []string{
	".article-body",
	".article-content",
	".post-content",
	".entry-content",
	".detail-content",
	".fck_detail",
	"#main-detail-body",
	".content-detail",
	".article__body",
}

// Content walks the content fallback ladder: <article> text, the first
// matching content-class container, then <main>. The result is truncated
// to MaxContentRunes; length gating against MinContentRunes is the
// caller's decision via LongEnough.
func Content(doc *goquery.Document) string {
	if txt := containerText(doc.Find("article").First()); txt != "" {
		return truncate(txt)
	}
	for _, sel := range contentSelectors {
		if txt := containerText(doc.Find(sel).First()); txt != "" {
			return truncate(txt)
		}
	}
	if txt := containerText(doc.Find("main").First()); txt != "" {
		return truncate(txt)
	}
	return ""
}

// LongEnough reports whether extracted content meets the minimum length
// for a full article.
func LongEnough(content string) bool {
	return utf8.RuneCountInString(content) >= MinContentRunes
}

// containerText joins the paragraph text of a container; containers without
// <p> children fall back to their own flattened text.
func containerText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var parts []string
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(s.Text()), " ")
	}
	return strings.Join(parts, "\n\n")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxContentRunes {
		return s
	}
	return string(runes[:MaxContentRunes])
}
