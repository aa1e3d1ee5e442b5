package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmaslov/behrank/collect/internal/parse"
)

var cardNumberRe = regexp.MustCompile(`[\d,.]+[kKмМ]?`)

// ParseOwnProjects collects the distinct projects linked from the
// operator's own profile page. Stats are best-effort from the
// surrounding card text (last two numbers are appreciations then views).
func ParseOwnProjects(html, baseURL string) []*Card {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var out []*Card
	seen := map[string]bool{}

	doc.Find(`a[href*="/gallery/"]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		id := parse.GalleryID(href)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		c := &Card{
			BehanceID: id,
			URL:       absoluteURL(href, baseURL),
			Slug:      parse.Slug(href),
		}

		c.Title = a.AttrOr("title", "")
		if c.Title == "" {
			c.Title = strings.TrimSpace(a.Find(`[class*="Title"]`).First().Text())
		}

		context := a.Closest(`[class*="ProjectCover"]`).Text()
		if context == "" {
			context = a.Parent().Text()
		}
		if nums := cardNumberRe.FindAllString(context, -1); len(nums) >= 2 {
			c.Appreciations = parse.Number(nums[len(nums)-2])
			c.Views = parse.Number(nums[len(nums)-1])
		}

		out = append(out, c)
	})

	return out
}
