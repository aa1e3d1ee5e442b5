package browser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NextPageURL finds the next-page link in a result page, absolutized
// against base. Empty string means the page has no next affordance and
// pagination for this query stops.
func NextPageURL(html, base string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if href, ok := doc.Find(`a[rel="next"]`).First().Attr("href"); ok {
		return absolutize(href, base)
	}

	var found string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(a.Text()))
		if label != "next" && label != "следующая" && label != "следующая страница" {
			return true
		}
		if href, ok := a.Attr("href"); ok && href != "" {
			found = absolutize(href, base)
			return false
		}
		return true
	})
	return found
}

func absolutize(href, base string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
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
