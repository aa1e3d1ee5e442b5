// Package parse holds the pure text rules the extractors share: bilingual
// stat numbers, bilingual date sentences, and Behance URL dissection.
//
// Every function here is total over its input: unrecognised text yields a
// zero value (0, "", false), never an error. Callers must treat a zero as
// "unknown or genuinely absent".
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	magThousand = regexp.MustCompile(`^([\d.]+)\s*[kKкК]`)
	magMillion  = regexp.MustCompile(`^([\d.]+)\s*[mMмМ]`)
	nonDigit    = regexp.MustCompile(`[^\d]`)

	galleryIDRe = regexp.MustCompile(`/gallery/(\d+)/`)
	slugRe      = regexp.MustCompile(`/gallery/\d+/([^?#]+)`)
	usernameRe  = regexp.MustCompile(`behance\.net/([^/?#]+)`)
)

// reservedPaths are behance.net path segments that are site sections,
// not usernames.
var reservedPaths = map[string]bool{
	"search":  true,
	"gallery": true,
	"for_you": true,
	"misc":    true,
	"blog":    true,
	"jobs":    true,
}

// Number parses a stat count like "2 075", "2,075", "1.2K" or "2М" into
// an int. Magnitude suffixes are recognised in Latin and Cyrillic
// (k/к = ×1000, m/м = ×1000000). Unparseable input yields 0.
func Number(text string) int {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	s = strings.NewReplacer(",", "", " ", "").Replace(s)

	if m := magThousand.FindStringSubmatch(s); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(f * 1_000)
		}
	}
	if m := magMillion.FindStringSubmatch(s); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(f * 1_000_000)
		}
	}

	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// GalleryID extracts the numeric project id from a gallery URL like
// /gallery/242129829/some-slug. Returns "" when absent.
func GalleryID(rawURL string) string {
	if m := galleryIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// Slug extracts the URL slug following the gallery id. Returns "" when absent.
func Slug(rawURL string) string {
	if m := slugRe.FindStringSubmatch(rawURL); m != nil {
		return strings.TrimSuffix(m[1], "/")
	}
	return ""
}

// Username extracts a profile handle from a behance.net URL, rejecting
// reserved site sections. Returns "" when absent.
func Username(rawURL string) string {
	m := usernameRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	if reservedPaths[m[1]] {
		return ""
	}
	return m[1]
}

// KeywordMatch returns the fraction of query words present in the title,
// rounded to two decimal places.
func KeywordMatch(title, query string) float64 {
	if title == "" || query == "" {
		return 0
	}
	titleLower := strings.ToLower(title)
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, w := range words {
		if strings.Contains(titleLower, w) {
			matches++
		}
	}
	return math.Round(float64(matches)/float64(len(words))*100) / 100
}

// QueryTokenIn reports whether any whitespace-separated token of the
// query appears in the text, case-insensitively.
func QueryTokenIn(text, query string) bool {
	if text == "" || query == "" {
		return false
	}
	textLower := strings.ToLower(text)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(textLower, w) {
			return true
		}
	}
	return false
}
