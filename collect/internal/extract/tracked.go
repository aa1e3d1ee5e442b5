package extract

import (
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/vmaslov/behrank/collect/internal/parse"
)

// TrackedStats is one best-effort point sample of a project's counters.
type TrackedStats struct {
	Appreciations int
	Views         int
	Comments      int
	PublishedDate string // ISO date, "" when not found
}

var statsFragmentRe = regexp.MustCompile(`"stats"\s*:\s*(\{[^}]+\})`)

// ParseTrackedStats extracts current counters from a project page,
// preferring the embedded stats JSON over visible text. Every field
// degrades independently.
func ParseTrackedStats(html, pageText string) *TrackedStats {
	t := &TrackedStats{}

	if m := statsFragmentRe.FindStringSubmatch(html); m != nil {
		obj := gjson.Parse(m[1])
		t.Appreciations = int(obj.Get("appreciations").Int())
		t.Views = int(obj.Get("views").Int())
		t.Comments = int(obj.Get("comments").Int())
	}

	// Views has a visible-text fallback. Appreciations does not: the
	// number next to the appreciation keyword on a project page is the
	// per-comment count in the comments area, not the project total, so
	// an absent stats fragment leaves it 0 (unknown).
	if t.Views == 0 {
		t.Views = statAfterKeyword(pageText, viewsKeywordRe)
	}

	if m := publishedSentenceRe.FindString(pageText); m != "" {
		if iso, _, ok := parse.PublishedDate(m); ok {
			t.PublishedDate = iso
		}
	}

	return t
}
