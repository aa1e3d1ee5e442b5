// Package extract turns page HTML into typed records: listing cards,
// project detail fields, and author profiles.
//
// All extractors work on HTML snapshots rather than the live page, so the
// selector chains stay pure and testable. Each field is resolved by an
// ordered fallback chain where the first non-empty result wins; a field
// whose whole chain comes up empty is left at its zero value.
package extract

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmaslov/behrank/collect/internal/parse"
)

// ErrNoGalleryLink means a listing entry carries no canonical gallery
// link and must be dropped.
var ErrNoGalleryLink = errors.New("extract: card has no gallery link")

// Card is one ranked listing entry.
type Card struct {
	Position      int
	BehanceID     string
	Title         string
	URL           string
	Slug          string
	AuthorHandle  string
	AuthorName    string
	Appreciations int
	Views         int
	Promoted      bool
	Featured      bool
	CoverURL      string
}

// Bilingual stat keyword variants. Russian cards render all grammatical
// forms ("Оценок: 277", "Оценка: 1", "Оценки: 3"); English cards render
// "277 appreciations for ...".
var (
	apprKeywordRe  = regexp.MustCompile(`[Оо]ценок|[Оо]ценка|[Оо]ценки`)
	viewsKeywordRe = regexp.MustCompile(`[Пп]росмотров|[Пп]росмотр[аы]?`)
	afterColonRe   = regexp.MustCompile(`:\s*([\d\s` + " " + `,.]+)`)
	enApprRe       = regexp.MustCompile(`(?i)([\d,.]+)\s*appreciations?\s+for`)
	enViewsRe      = regexp.MustCompile(`(?i)([\d,.]+)\s*views?\s+for`)
)

// ParseCard extracts one listing entry at the given 1-based position.
// The entry is rejected with ErrNoGalleryLink when no gallery id can be
// resolved; every other field degrades to its zero value.
func ParseCard(s *goquery.Selection, position int, baseURL string) (*Card, error) {
	link := s.Find(`a[href*="/gallery/"]`).First()
	if link.Length() == 0 {
		return nil, ErrNoGalleryLink
	}
	href := link.AttrOr("href", "")
	id := parse.GalleryID(href)
	if id == "" {
		return nil, ErrNoGalleryLink
	}

	c := &Card{
		Position:  position,
		BehanceID: id,
		URL:       absoluteURL(href, baseURL),
		Slug:      parse.Slug(href),
	}

	c.Title = link.AttrOr("title", "")
	if c.Title == "" {
		c.Title = strings.TrimSpace(s.Find(`[class*="Title"]`).First().Text())
	}

	author := s.Find(`a[href*="behance.net/"]:not([href*="/gallery/"])`).First()
	if author.Length() > 0 {
		c.AuthorHandle = parse.Username(author.AttrOr("href", ""))
		c.AuthorName = strings.TrimSpace(author.Text())
	}

	text := s.Text()
	c.Appreciations = statAfterKeyword(text, apprKeywordRe)
	if c.Appreciations == 0 {
		if m := enApprRe.FindStringSubmatch(text); m != nil {
			c.Appreciations = parse.Number(m[1])
		}
	}
	c.Views = statAfterKeyword(text, viewsKeywordRe)
	if c.Views == 0 {
		if m := enViewsRe.FindStringSubmatch(text); m != nil {
			c.Views = parse.Number(m[1])
		}
	}

	// Promoted and featured are each an OR of element presence and a
	// keyword check in the visible text.
	c.Promoted = s.Find(`a[href*="promoted"], [class*="romoted"]`).Length() > 0 ||
		strings.Contains(strings.ToLower(text), "promoted")
	c.Featured = s.Find(`[class*="Featured"], [class*="featured"], [class*="Curated"]`).Length() > 0

	img := s.Find("img").First()
	if img.Length() > 0 {
		c.CoverURL = img.AttrOr("src", "")
		if c.CoverURL == "" {
			c.CoverURL = img.AttrOr("srcset", "")
		}
	}

	return c, nil
}

// statAfterKeyword finds the first keyword match and parses the number
// following the colon after it. Missing keyword or number yields 0.
func statAfterKeyword(text string, keyword *regexp.Regexp) int {
	loc := keyword.FindStringIndex(text)
	if loc == nil {
		return 0
	}
	m := afterColonRe.FindStringSubmatch(text[loc[0]:])
	if m == nil {
		return 0
	}
	return parse.Number(strings.TrimSpace(m[1]))
}

// absoluteURL resolves href against base. A href that is already
// absolute is returned unchanged; garbage falls back to the raw href.
func absoluteURL(href, base string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
