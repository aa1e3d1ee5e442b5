package collect

import (
	"encoding/json"

	"github.com/vmaslov/behrank/collect/internal/extract"
	"github.com/vmaslov/behrank/collect/internal/parse"
)

// ProjectRecord is the run-scoped merged view of one project.
type ProjectRecord struct {
	Card   *extract.Card
	Detail *extract.Detail

	// Query is the first search query that surfaced this project; empty
	// when it only appeared in the operator's own portfolio.
	Query string

	// TitleMatch is the best title/query token overlap seen across all
	// queries that surfaced the project this run.
	TitleMatch float64

	// IsSelf is sticky: once a project is seen in the operator's own
	// portfolio it stays self-authored even if it also ranks
	// organically.
	IsSelf bool
}

// AuthorRecord is the run-scoped merged view of one author.
type AuthorRecord struct {
	Handle  string
	Name    string
	Profile *extract.Profile
}

// Aggregator reconciles repeated observations of the same projects and
// authors within one run. It is owned by the run and discarded
// afterward. Seeding is first-write-wins; detail and profile results
// merge on top of the seed. Iteration follows discovery order so
// persistence is deterministic for a given crawl.
type Aggregator struct {
	projects  map[string]*ProjectRecord
	projOrder []string
	authors   map[string]*AuthorRecord
	authOrder []string
}

// NewAggregator returns an empty Aggregator for one run.
func NewAggregator() *Aggregator {
	return &Aggregator{
		projects: make(map[string]*ProjectRecord),
		authors:  make(map[string]*AuthorRecord),
	}
}

// SeedCard registers one organic listing entry under the query that
// surfaced it. The first card for a given gallery id wins; later
// sightings only raise the title match and never replace the seed.
func (a *Aggregator) SeedCard(query string, c *extract.Card) *ProjectRecord {
	match := parse.KeywordMatch(c.Title, query)
	rec, ok := a.projects[c.BehanceID]
	if !ok {
		rec = &ProjectRecord{Card: c, Query: query, TitleMatch: match}
		a.projects[c.BehanceID] = rec
		a.projOrder = append(a.projOrder, c.BehanceID)
	} else if match > rec.TitleMatch {
		rec.TitleMatch = match
	}
	a.seedAuthor(c)
	return rec
}

// SeedSelf registers one entry from the operator's own portfolio and
// marks it self-authored. The flag is an OR: it is never cleared once
// set, even when the project also appears organically.
func (a *Aggregator) SeedSelf(c *extract.Card) *ProjectRecord {
	rec, ok := a.projects[c.BehanceID]
	if !ok {
		rec = &ProjectRecord{Card: c}
		a.projects[c.BehanceID] = rec
		a.projOrder = append(a.projOrder, c.BehanceID)
		a.seedAuthor(c)
	}
	rec.IsSelf = true
	return rec
}

// BestMatch raises the record's title match to the best overlap across
// the given queries. Used for self-authored projects, which have no
// single surfacing query.
func (r *ProjectRecord) BestMatch(title string, queries []string) {
	for _, q := range queries {
		if m := parse.KeywordMatch(title, q); m > r.TitleMatch {
			r.TitleMatch = m
		}
	}
}

// EnsureAuthor registers a handle that was discovered outside a listing
// card, such as the operator's own. No-op for empty or known handles.
func (a *Aggregator) EnsureAuthor(handle string) {
	if handle == "" {
		return
	}
	if _, ok := a.authors[handle]; ok {
		return
	}
	a.authors[handle] = &AuthorRecord{Handle: handle}
	a.authOrder = append(a.authOrder, handle)
}

func (a *Aggregator) seedAuthor(c *extract.Card) {
	if c.AuthorHandle == "" {
		return
	}
	if _, ok := a.authors[c.AuthorHandle]; ok {
		return
	}
	a.authors[c.AuthorHandle] = &AuthorRecord{
		Handle: c.AuthorHandle,
		Name:   c.AuthorName,
	}
	a.authOrder = append(a.authOrder, c.AuthorHandle)
}

// MergeDetail attaches a detail scrape to an already-seeded project.
// Unknown ids are ignored.
func (a *Aggregator) MergeDetail(behanceID string, d *extract.Detail) {
	if rec, ok := a.projects[behanceID]; ok {
		rec.Detail = d
	}
}

// MergeProfile attaches a profile scrape to an already-seeded author.
// Unknown handles are ignored.
func (a *Aggregator) MergeProfile(handle string, p *extract.Profile) {
	if rec, ok := a.authors[handle]; ok {
		rec.Profile = p
	}
}

// Projects returns all merged project records in discovery order.
func (a *Aggregator) Projects() []*ProjectRecord {
	out := make([]*ProjectRecord, 0, len(a.projOrder))
	for _, id := range a.projOrder {
		out = append(out, a.projects[id])
	}
	return out
}

// Project returns the merged record for one gallery id, or nil.
func (a *Aggregator) Project(behanceID string) *ProjectRecord {
	return a.projects[behanceID]
}

// Authors returns all merged author records in discovery order.
func (a *Aggregator) Authors() []*AuthorRecord {
	out := make([]*AuthorRecord, 0, len(a.authOrder))
	for _, h := range a.authOrder {
		out = append(out, a.authors[h])
	}
	return out
}

// jsonList renders a string list as a JSON array, nil for empty so the
// coalesce-upsert leaves any previously stored list untouched.
func jsonList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
