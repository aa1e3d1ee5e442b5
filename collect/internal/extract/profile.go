package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmaslov/behrank/collect/internal/parse"
)

// Profile carries everything an author page yields.
type Profile struct {
	Handle      string
	URL         string
	DisplayName string
	Location    string
	MemberSince string
	Bio         string
	HireStatus  string

	HasPro      bool
	HasServices bool
	HasBanner   bool
	HasWebsite  bool

	// Completeness is a derived 0-100 heuristic over populated fields,
	// not a measured quantity.
	Completeness int

	Stats AuthorStats
}

// AuthorStats is the aggregate counter set sampled once per run.
type AuthorStats struct {
	Views         int
	Appreciations int
	Followers     int
	Following     int
	ProjectCount  int
}

const bioMaxLen = 1000

var (
	memberSentenceRe = regexp.MustCompile(`(?:Member Since|Участник с|На Behance с):\s*(.+?\d{4})`)
	aboutSectionRe   = regexp.MustCompile(`(?s)(?:Обо мне|About)\n(.+?)(?:\n|Read More|Подробнее)`)
	digitsRe         = regexp.MustCompile(`\d+`)
)

// statRule maps bilingual row keywords to one stats field. Exclusions
// keep a "followers" row from ever matching "following" keywords and
// vice versa. Adding a locale means adding keywords, nothing else.
type statRule struct {
	assign  func(*AuthorStats, int)
	match   []string
	exclude []string
}

var statRules = []statRule{
	{
		assign: func(s *AuthorStats, v int) { s.Views = v },
		match:  []string{"просмотры", "project views", "views"},
	},
	{
		assign: func(s *AuthorStats, v int) { s.Appreciations = v },
		match:  []string{"оценки", "appreciat"},
	},
	{
		assign:  func(s *AuthorStats, v int) { s.Followers = v },
		match:   []string{"подписчики", "follower"},
		exclude: []string{"подписки", "following"},
	},
	{
		assign:  func(s *AuthorStats, v int) { s.Following = v },
		match:   []string{"подписки", "following"},
		exclude: []string{"подписчики", "followers"},
	},
}

func (r statRule) matches(rowLower string) bool {
	for _, kw := range r.exclude {
		if strings.Contains(rowLower, kw) {
			return false
		}
	}
	for _, kw := range r.match {
		if strings.Contains(rowLower, kw) {
			return true
		}
	}
	return false
}

// ParseProfile extracts an author page. html is the page markup and
// pageText its rendered visible text. Field-level failures leave fields
// at their zero values; ParseProfile itself never fails.
func ParseProfile(html, pageText, handle, profileURL string) *Profile {
	p := &Profile{Handle: handle, URL: profileURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return p
	}

	p.DisplayName = strings.TrimSpace(doc.Find("h1").First().Text())
	p.Location = strings.TrimSpace(doc.Find(`a[href*="search/users?country"]`).First().Text())

	if m := memberSentenceRe.FindString(pageText); m != "" {
		if iso, ok := parse.MemberSince(m); ok {
			p.MemberSince = iso
		}
	}

	p.Bio = extractBio(doc, pageText)

	scanStatsTable(doc, &p.Stats)
	statAnchorFallbacks(doc, &p.Stats)

	p.HasPro = doc.Find(`[class*="Pro"], [class*="pro-badge"]`).Length() > 0
	p.HasServices = doc.Find(`[class*="Service"], [class*="service"]`).Length() > 0
	p.HasBanner = doc.Find(`[class*="banner"], [class*="Banner"]`).Length() > 0
	p.HasWebsite = doc.Find(`a[href*="http"]:not([href*="behance.net"])`).Length() > 0

	if hire := doc.Find(`[class*="Hire"], [class*="Available"]`).First(); hire.Length() > 0 {
		p.HireStatus = truncate(strings.TrimSpace(hire.Text()), 200)
	}

	p.Stats.ProjectCount = countGalleryIDs(doc)
	p.Completeness = completeness(p)

	return p
}

// extractBio walks an ordered list of candidate regions and keeps the
// first non-trivial match, truncated to bioMaxLen.
func extractBio(doc *goquery.Document, pageText string) string {
	for _, sel := range []string{
		`[class*="UserInfo-bio"]`,
		`[class*="about"]`,
		`[class*="Bio"]`,
		`[class*="bio"]`,
	} {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if utf8.RuneCountInString(text) > 10 {
			return truncate(text, bioMaxLen)
		}
	}
	if m := aboutSectionRe.FindStringSubmatch(pageText); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			return truncate(text, bioMaxLen)
		}
	}
	return ""
}

// scanStatsTable walks the stats table row by row and assigns each row's
// number to the first rule its text matches.
func scanStatsTable(doc *goquery.Document, stats *AuthorStats) {
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		text := strings.ReplaceAll(strings.TrimSpace(row.Text()), " ", "")
		num, ok := joinedDigits(text)
		if !ok {
			return
		}
		lower := strings.ToLower(text)
		for _, rule := range statRules {
			if rule.matches(lower) {
				rule.assign(stats, num)
				return
			}
		}
	})
}

// statAnchorFallbacks retries still-unset metrics via independent anchor
// links: the analytics link (sniffing its row context for the metric
// name) and the followers/following links.
func statAnchorFallbacks(doc *goquery.Document, stats *AuthorStats) {
	if stats.Views == 0 {
		doc.Find(`a[href*="/analytics"]`).Each(func(_ int, a *goquery.Selection) {
			num := parse.Number(strings.TrimSpace(a.Text()))
			if num == 0 {
				return
			}
			context := a.Closest("tr").Text()
			if context == "" {
				context = a.Parent().Text()
			}
			lower := strings.ToLower(context)
			switch {
			case strings.Contains(lower, "просмотры") || strings.Contains(lower, "view"):
				if stats.Views == 0 {
					stats.Views = num
				}
			case strings.Contains(lower, "оценки") || strings.Contains(lower, "appreciat"):
				if stats.Appreciations == 0 {
					stats.Appreciations = num
				}
			}
		})
	}

	if stats.Followers == 0 {
		if a := doc.Find(`a[href*="/followers"]`).First(); a.Length() > 0 {
			stats.Followers = parse.Number(strings.TrimSpace(a.Text()))
		}
	}
	if stats.Following == 0 {
		if a := doc.Find(`a[href*="/following"]`).First(); a.Length() > 0 {
			stats.Following = parse.Number(strings.TrimSpace(a.Text()))
		}
	}
}

// countGalleryIDs counts distinct gallery ids among profile-page links.
func countGalleryIDs(doc *goquery.Document) int {
	ids := map[string]bool{}
	doc.Find(`a[href*="/gallery/"]`).Each(func(_ int, a *goquery.Selection) {
		if id := parse.GalleryID(a.AttrOr("href", "")); id != "" {
			ids[id] = true
		}
	})
	return len(ids)
}

// completeness is a fixed-point-weighted sum over populated profile
// attributes, capped at 100.
func completeness(p *Profile) int {
	score := 0
	if p.DisplayName != "" {
		score += 15
	}
	if p.Location != "" {
		score += 10
	}
	if p.Bio != "" {
		score += 20
	}
	if p.HasBanner {
		score += 10
	}
	if p.HasWebsite {
		score += 10
	}
	if p.HireStatus != "" {
		score += 10
	}
	if p.Stats.Views > 0 {
		score += 15
	}
	if p.HasServices {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// joinedDigits concatenates every digit group in text into one number,
// matching how the stats table renders separated thousands.
func joinedDigits(text string) (int, bool) {
	groups := digitsRe.FindAllString(text, -1)
	if len(groups) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.Join(groups, ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
