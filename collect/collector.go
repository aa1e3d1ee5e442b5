// Package collect orchestrates one collection run: crawl each query's
// listing pages, enrich every unique project and author, and commit the
// run's observations to the store.
//
// Per-item failures (one card, one project page, one profile) are
// logged and skipped; store errors and context cancellation abort the
// run. Because every store write commits independently, an aborted run
// leaves a valid, resumable database.
package collect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmaslov/behrank/collect/internal/browser"
	"github.com/vmaslov/behrank/collect/internal/extract"
	"github.com/vmaslov/behrank/collect/internal/store"
)

// PageSource is the navigation surface the collector drives. It is
// satisfied by *browser.Session; tests substitute canned pages.
type PageSource interface {
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	VisibleText(ctx context.Context) (string, error)
	Pace(ctx context.Context) error
}

var _ PageSource = (*browser.Session)(nil)

// querySnapshot holds one query's crawl output until persistence.
type querySnapshot struct {
	query      string
	snapshotID int64
	cards      []*extract.Card
}

// Collector runs the collection pipeline. All navigation is strictly
// sequential through the single PageSource.
type Collector struct {
	cfg  *Config
	st   *store.Store
	page PageSource
	log  *slog.Logger
}

// NewCollector wires a Collector. A nil logger falls back to
// slog.Default.
func NewCollector(cfg *Config, st *store.Store, page PageSource, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{cfg: cfg, st: st, page: page, log: log}
}

// Run executes one full collection run.
func (c *Collector) Run(ctx context.Context, includeSecondary bool) error {
	queries := c.cfg.Queries(includeSecondary)
	agg := NewAggregator()

	// 1. Listing crawl, one snapshot per query.
	var crawls []*querySnapshot
	for _, query := range queries {
		snapID, err := c.st.CreateSnapshot(ctx, query, c.cfg.SortType)
		if err != nil {
			return err
		}
		cards, err := c.crawlListing(ctx, query)
		if err != nil {
			return err
		}
		for _, card := range cards {
			agg.SeedCard(query, card)
		}
		if err := c.st.FinalizeSnapshot(ctx, snapID, len(cards)); err != nil {
			return err
		}
		crawls = append(crawls, &querySnapshot{query: query, snapshotID: snapID, cards: cards})
		c.log.Info("collect: query crawled",
			"query", query, "results", len(cards), "snapshot_id", snapID)
	}

	// 2. Own portfolio.
	if err := c.crawlOwnPortfolio(ctx, agg, queries); err != nil {
		return err
	}

	// 3. Detail pass over every unique project.
	if err := c.detailPass(ctx, agg, queries); err != nil {
		return err
	}

	// 4. Profile pass. Each author gets exactly one stats row per run,
	// tied to the run's first snapshot.
	var firstSnapshot int64
	if len(crawls) > 0 {
		firstSnapshot = crawls[0].snapshotID
	}
	authorIDs, err := c.profilePass(ctx, agg, firstSnapshot)
	if err != nil {
		return err
	}

	// 5. Canonical project records and tags.
	projectIDs := make(map[string]int64, len(agg.Projects()))
	for _, rec := range agg.Projects() {
		p := c.toStoreProject(rec, authorIDs)
		pid, err := c.st.UpsertProject(ctx, p)
		if err != nil {
			return err
		}
		projectIDs[rec.Card.BehanceID] = pid
		if rec.Detail != nil && len(rec.Detail.Tags) > 0 {
			if err := c.st.InsertProjectTags(ctx, pid, rec.Detail.Tags); err != nil {
				return err
			}
		}
	}

	// 6. Ranked appearances.
	for _, crawl := range crawls {
		for _, card := range crawl.cards {
			pid, ok := projectIDs[card.BehanceID]
			if !ok {
				continue
			}
			r := &store.SearchResult{
				SnapshotID:    crawl.snapshotID,
				ProjectID:     pid,
				Position:      card.Position,
				Appreciations: card.Appreciations,
				Views:         card.Views,
				IsPromoted:    card.Promoted,
				IsFeatured:    card.Featured,
			}
			if card.CoverURL != "" {
				r.CoverURL = &card.CoverURL
			}
			if err := c.st.InsertSearchResult(ctx, r); err != nil {
				return err
			}
		}
	}

	// 7. Experiment tracking against the just-computed rankings.
	if len(c.cfg.Tracked) > 0 {
		if err := c.trackExperiments(ctx, crawls); err != nil {
			return err
		}
	}

	c.log.Info("collect: run complete",
		"queries", len(crawls), "projects", len(projectIDs), "authors", len(authorIDs))
	return nil
}

// crawlListing pages through one query's results until the per-query
// cap, the page cap, or the last page. A page that fails to load or
// yields no cards ends pagination for this query only.
func (c *Collector) crawlListing(ctx context.Context, query string) ([]*extract.Card, error) {
	var cards []*extract.Card
	url := c.cfg.SearchURL(query)

	for pageNum := 1; pageNum <= c.cfg.PagesPerQuery; pageNum++ {
		if pageNum > 1 {
			if err := c.page.Pace(ctx); err != nil {
				return nil, err
			}
		}
		if err := c.page.Navigate(ctx, url); err != nil {
			c.log.Warn("collect: listing page unavailable",
				"query", query, "page", pageNum, "error", err)
			break
		}
		html, err := c.page.HTML(ctx)
		if err != nil {
			c.log.Warn("collect: listing page read failed",
				"query", query, "page", pageNum, "error", err)
			break
		}

		pageCards, skipped := extract.ListingCards(html, c.cfg.BaseURL, len(cards)+1)
		if skipped > 0 {
			c.log.Warn("collect: cards skipped",
				"query", query, "page", pageNum, "skipped", skipped)
		}
		if len(pageCards) == 0 {
			c.log.Warn("collect: no cards on page", "query", query, "page", pageNum)
			break
		}
		for _, card := range pageCards {
			cards = append(cards, card)
			if len(cards) >= c.cfg.ProjectsPerQuery {
				return cards, nil
			}
		}

		next := browser.NextPageURL(html, c.cfg.BaseURL)
		if next == "" {
			break
		}
		url = next
	}
	return cards, nil
}

// crawlOwnPortfolio marks every project on the operator's own profile
// as self-authored and scores its title against all run queries.
func (c *Collector) crawlOwnPortfolio(ctx context.Context, agg *Aggregator, queries []string) error {
	url := c.cfg.SelfProfileURL()
	if url == "" {
		return nil
	}
	if err := c.page.Pace(ctx); err != nil {
		return err
	}
	if err := c.page.Navigate(ctx, url); err != nil {
		c.log.Warn("collect: own portfolio unavailable", "url", url, "error", err)
		return nil
	}
	html, err := c.page.HTML(ctx)
	if err != nil {
		c.log.Warn("collect: own portfolio read failed", "error", err)
		return nil
	}

	own := extract.ParseOwnProjects(html, c.cfg.BaseURL)
	for _, card := range own {
		card.AuthorHandle = c.cfg.SelfUsername
		rec := agg.SeedSelf(card)
		rec.BestMatch(card.Title, queries)
	}
	agg.EnsureAuthor(c.cfg.SelfUsername)
	c.log.Info("collect: own portfolio crawled", "projects", len(own))
	return nil
}

func (c *Collector) detailPass(ctx context.Context, agg *Aggregator, queries []string) error {
	recs := agg.Projects()
	for i, rec := range recs {
		url := rec.Card.URL
		if url == "" {
			continue
		}
		if err := c.page.Pace(ctx); err != nil {
			return err
		}
		if err := c.page.Navigate(ctx, url); err != nil {
			c.log.Warn("collect: project page skipped",
				"behance_id", rec.Card.BehanceID, "error", err)
			continue
		}
		html, err := c.page.HTML(ctx)
		if err != nil {
			c.log.Warn("collect: project page read failed",
				"behance_id", rec.Card.BehanceID, "error", err)
			continue
		}
		text, err := c.page.VisibleText(ctx)
		if err != nil {
			text = ""
		}

		query := rec.Query
		if query == "" && len(queries) > 0 {
			query = queries[0]
		}
		agg.MergeDetail(rec.Card.BehanceID, extract.ParseDetail(html, text, query))
		c.log.Info("collect: project detail",
			"progress", fmt.Sprintf("%d/%d", i+1, len(recs)), "behance_id", rec.Card.BehanceID)
	}
	return nil
}

// profilePass scrapes each unique author once, upserts the canonical
// record, and appends the run's single stats sample. Profile scrape
// failures still upsert what the listing pass knew.
func (c *Collector) profilePass(ctx context.Context, agg *Aggregator, snapshotID int64) (map[string]int64, error) {
	authors := agg.Authors()
	ids := make(map[string]int64, len(authors))

	for i, a := range authors {
		profileURL := c.cfg.BaseURL + "/" + a.Handle

		if err := c.page.Pace(ctx); err != nil {
			return nil, err
		}
		if err := c.page.Navigate(ctx, profileURL); err != nil {
			c.log.Warn("collect: profile skipped", "handle", a.Handle, "error", err)
		} else {
			html, err := c.page.HTML(ctx)
			if err != nil {
				c.log.Warn("collect: profile read failed", "handle", a.Handle, "error", err)
			} else {
				text, err := c.page.VisibleText(ctx)
				if err != nil {
					text = ""
				}
				agg.MergeProfile(a.Handle, extract.ParseProfile(html, text, a.Handle, profileURL))
			}
		}

		id, err := c.st.UpsertAuthor(ctx, c.toStoreAuthor(a))
		if err != nil {
			return nil, err
		}
		ids[a.Handle] = id

		stats := &store.AuthorStats{}
		if p := a.Profile; p != nil {
			stats.TotalViews = p.Stats.Views
			stats.TotalAppreciations = p.Stats.Appreciations
			stats.Followers = p.Stats.Followers
			stats.Following = p.Stats.Following
			stats.ProjectCount = p.Stats.ProjectCount
		}
		if snapshotID != 0 {
			if err := c.st.InsertAuthorStats(ctx, id, snapshotID, stats); err != nil {
				return nil, err
			}
		}
		c.log.Info("collect: author profile",
			"progress", fmt.Sprintf("%d/%d", i+1, len(authors)), "handle", a.Handle)
	}
	return ids, nil
}

func (c *Collector) toStoreProject(rec *ProjectRecord, authorIDs map[string]int64) *store.Project {
	p := &store.Project{BehanceID: rec.Card.BehanceID}

	if rec.Card.Title != "" {
		p.Title = &rec.Card.Title
	}
	if rec.Card.URL != "" {
		p.URL = &rec.Card.URL
	}
	if rec.Card.Slug != "" {
		p.URLSlug = &rec.Card.Slug
	}
	if rec.Card.CoverURL != "" {
		p.CoverURL = &rec.Card.CoverURL
	}
	if id, ok := authorIDs[rec.Card.AuthorHandle]; ok {
		p.AuthorID = &id
	}
	p.TitleMatch = &rec.TitleMatch
	if rec.IsSelf {
		p.IsMyProject = ptrTo(true)
	}

	featured := rec.Card.Featured
	if d := rec.Detail; d != nil {
		p.PublishedDate = d.PublishedDate
		p.PublishWeekday = d.PublishWeekday
		p.ModuleCount = ptrTo(d.ModuleCount)
		p.ImageCount = ptrTo(d.ImageCount)
		p.VideoCount = ptrTo(d.VideoCount)
		p.TextCount = ptrTo(d.TextCount)
		p.EmbedCount = ptrTo(d.EmbedCount)
		p.DescriptionLen = ptrTo(d.DescriptionLength)
		p.DescHasQuery = d.DescriptionHasQuery
		p.ExternalLinks = ptrTo(d.ExternalLinkCount)
		p.HasExternalLinks = ptrTo(d.ExternalLinkCount > 0)
		p.CommentsCount = d.CommentsCount
		p.CoOwnersCount = ptrTo(d.CoOwners)
		p.CreativeFields = jsonList(d.CreativeFields)
		p.ToolsUsed = jsonList(d.Tools)
		featured = featured || d.Featured
	}
	p.IsFeatured = &featured
	return p
}

func (c *Collector) toStoreAuthor(a *AuthorRecord) *store.Author {
	sa := &store.Author{Username: a.Handle}
	if a.Name != "" {
		sa.DisplayName = &a.Name
	}
	p := a.Profile
	if p == nil {
		return sa
	}
	if p.DisplayName != "" {
		sa.DisplayName = &p.DisplayName
	}
	if p.URL != "" {
		sa.URL = &p.URL
	}
	if p.Location != "" {
		sa.Location = &p.Location
	}
	if p.MemberSince != "" {
		sa.MemberSince = &p.MemberSince
	}
	if p.Bio != "" {
		sa.BioText = &p.Bio
	}
	if p.HireStatus != "" {
		sa.HireStatus = &p.HireStatus
	}
	sa.HasPro = ptrTo(p.HasPro)
	sa.HasServices = ptrTo(p.HasServices)
	sa.HasBanner = ptrTo(p.HasBanner)
	sa.HasWebsite = ptrTo(p.HasWebsite)
	sa.Completeness = ptrTo(p.Completeness)
	return sa
}

func ptrTo[T any](v T) *T { return &v }
