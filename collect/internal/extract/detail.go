package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/vmaslov/behrank/collect/internal/parse"
)

// Detail carries everything a single project page yields. Pointer fields
// stay nil when their extraction chain found nothing, so a later coalesce
// never overwrites a known value with an accidental zero.
type Detail struct {
	PublishedDate  *string
	PublishWeekday *int

	ModuleCount int
	ImageCount  int
	VideoCount  int
	TextCount   int
	EmbedCount  int

	Tags           []string
	Tools          []string
	CreativeFields []string

	DescriptionLength   int
	DescriptionHasQuery *bool

	ExternalLinkCount int
	CoOwners          int
	CommentsCount     *int
	Featured          bool
}

var (
	publishedSentenceRe = regexp.MustCompile(`(?:Опубликовано|Published):\s*(.+?\d{4})\s*г?\.?`)

	tagsFragmentRe   = regexp.MustCompile(`"tags"\s*:\s*(\[[^\]]*\])`)
	toolsFragmentRe  = regexp.MustCompile(`"tools"\s*:\s*(\[[^\]]*\])`)
	fieldsFragmentRe = regexp.MustCompile(`"fields"\s*:\s*(\[[^\]]*\])`)
)

// ParseDetail extracts the enrichment fields from a project page.
// html is the page markup, pageText its rendered visible text, and query
// the search query that surfaced this project (may be empty). Field-level
// failures leave that field unset; ParseDetail itself never fails.
func ParseDetail(html, pageText, query string) *Detail {
	d := &Detail{}

	if m := publishedSentenceRe.FindString(pageText); m != "" {
		if iso, wd, ok := parse.PublishedDate(m); ok {
			d.PublishedDate = &iso
			d.PublishWeekday = &wd
		}
	}

	d.Tags = jsonTitles(html, tagsFragmentRe, "title")
	d.Tools = jsonTitles(html, toolsFragmentRe, "title")
	d.CreativeFields = jsonTitles(html, fieldsFragmentRe, "label", "title", "name")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return d
	}

	if len(d.Tags) == 0 {
		d.Tags = linkTexts(doc, `a[href*="tracking_source=project_tag"]`)
	}
	if len(d.Tools) == 0 {
		d.Tools = linkTexts(doc, `a[href*="tools="]`)
	}
	if len(d.CreativeFields) == 0 {
		d.CreativeFields = linkTexts(doc, `a[href*="field="]`)
	}

	d.countModules(doc)

	var desc strings.Builder
	doc.Find(`[class*="Description"], [class*="ProjectText"]`).Each(func(_ int, s *goquery.Selection) {
		desc.WriteString(strings.TrimSpace(s.Text()))
		desc.WriteString(" ")
	})
	descText := strings.TrimSpace(desc.String())
	d.DescriptionLength = utf8.RuneCountInString(descText)
	if query != "" {
		has := parse.QueryTokenIn(descText, query)
		d.DescriptionHasQuery = &has
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if strings.HasPrefix(href, "http") && !strings.Contains(href, "behance.net") {
			d.ExternalLinkCount++
		}
	})

	if c := doc.Find(`[class*="Comments"] [class*="count"], [class*="comment-count"]`).First(); c.Length() > 0 {
		n := parse.Number(strings.TrimSpace(c.Text()))
		d.CommentsCount = &n
	}

	owners := map[string]bool{}
	doc.Find(`[class*="Owner"] a[href*="behance.net/"]`).Each(func(_ int, s *goquery.Selection) {
		if u := parse.Username(s.AttrOr("href", "")); u != "" {
			owners[u] = true
		}
	})
	// The primary owner does not count as a co-owner.
	if len(owners) > 1 {
		d.CoOwners = len(owners) - 1
	}

	d.Featured = doc.Find(`[class*="Featured"], [class*="featured-badge"]`).Length() > 0

	return d
}

// countModules classifies each content block by scanning its inner markup
// for presence markers with precedence image > video > embed, so an
// ambiguous block is counted exactly once. A permalink anchor per module
// is the more reliable total when present.
func (d *Detail) countModules(doc *goquery.Document) {
	doc.Find(`[class*="Permalink"], [class*="module"]`).Each(func(_ int, s *goquery.Selection) {
		inner, err := s.Html()
		if err != nil {
			return
		}
		lower := strings.ToLower(inner)
		switch {
		case strings.Contains(inner, "<img") || strings.Contains(lower, "image"):
			d.ImageCount++
		case strings.Contains(inner, "<video") || strings.Contains(lower, "video"):
			d.VideoCount++
		case strings.Contains(inner, "<iframe") || strings.Contains(lower, "embed"):
			d.EmbedCount++
		}
	})

	permalinks := doc.Find(`a[href*="/modules/"]`).Length()
	if permalinks > 0 {
		d.ModuleCount = permalinks
		if rest := permalinks - d.VideoCount - d.TextCount - d.EmbedCount; rest > d.ImageCount {
			d.ImageCount = rest
		}
	} else {
		d.ModuleCount = d.ImageCount + d.VideoCount + d.TextCount + d.EmbedCount
	}
}

// jsonTitles pulls every `"key":[...]` fragment embedded in the page
// markup and collects the first present label attribute of each array
// item, deduplicated in order.
func jsonTitles(html string, fragment *regexp.Regexp, labelKeys ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range fragment.FindAllStringSubmatch(html, -1) {
		arr := gjson.Parse(m[1])
		if !arr.IsArray() {
			continue
		}
		arr.ForEach(func(_, item gjson.Result) bool {
			for _, k := range labelKeys {
				title := strings.TrimSpace(item.Get(k).String())
				if title != "" {
					if !seen[title] {
						seen[title] = true
						out = append(out, title)
					}
					break
				}
			}
			return true
		})
	}
	return out
}

// linkTexts collects trimmed, deduplicated anchor texts for a selector.
func linkTexts(doc *goquery.Document, selector string) []string {
	var out []string
	seen := map[string]bool{}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" && !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	})
	return out
}
