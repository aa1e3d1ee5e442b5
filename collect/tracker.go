package collect

import (
	"context"
	"time"

	"github.com/vmaslov/behrank/collect/internal/extract"
	"github.com/vmaslov/behrank/collect/internal/parse"
	"github.com/vmaslov/behrank/collect/internal/store"
)

// trackExperiments samples every allowlisted gallery id against the
// run's freshly computed rankings. The page scrape is best-effort: a
// sample row is written even when the project page would not load, so
// the position history stays unbroken. The first two primary queries
// map to the two position columns; further queries are not tracked.
func (c *Collector) trackExperiments(ctx context.Context, crawls []*querySnapshot) error {
	for _, tp := range c.cfg.Tracked {
		if tp.BehanceID == "" {
			continue
		}
		url := tp.URL
		if url == "" {
			url = c.cfg.BaseURL + "/gallery/" + tp.BehanceID + "/"
		}

		sample := &store.TrackedSample{BehanceID: tp.BehanceID}
		if tp.Label != "" {
			sample.Label = &tp.Label
		}

		if err := c.page.Pace(ctx); err != nil {
			return err
		}
		if err := c.page.Navigate(ctx, url); err != nil {
			c.log.Warn("collect: tracked page unavailable",
				"behance_id", tp.BehanceID, "error", err)
		} else if html, err := c.page.HTML(ctx); err != nil {
			c.log.Warn("collect: tracked page read failed",
				"behance_id", tp.BehanceID, "error", err)
		} else {
			text, err := c.page.VisibleText(ctx)
			if err != nil {
				text = ""
			}
			ts := extract.ParseTrackedStats(html, text)
			sample.Appreciations = ts.Appreciations
			sample.Views = ts.Views
			sample.Comments = ts.Comments
			sample.DaysSincePublish = daysSincePublish(ts.PublishedDate, time.Now().UTC())
		}

		sample.PosInfografika = positionIn(crawls, c.cfg.PrimaryQueries, 0, tp.BehanceID)
		sample.PosDesignCards = positionIn(crawls, c.cfg.PrimaryQueries, 1, tp.BehanceID)

		if err := c.st.InsertTrackedSample(ctx, sample); err != nil {
			return err
		}
		c.log.Info("collect: tracked sample",
			"behance_id", tp.BehanceID, "label", tp.Label,
			"appreciations", sample.Appreciations, "views", sample.Views)
	}
	return nil
}

// daysSincePublish converts a parsed publish date into the sample's age
// column. Unknown dates and a zero age both store NULL, so 0.0 never
// masquerades as a measured same-instant publish.
func daysSincePublish(iso string, now time.Time) *float64 {
	if iso == "" {
		return nil
	}
	days, ok := parse.DaysSince(iso, now)
	if !ok || days == 0 {
		return nil
	}
	return &days
}

// positionIn finds the tracked project's rank in the crawl of the n-th
// primary query. Nil means not in the collected results for this run.
func positionIn(crawls []*querySnapshot, primary []string, n int, behanceID string) *int {
	if n >= len(primary) {
		return nil
	}
	for _, crawl := range crawls {
		if crawl.query != primary[n] {
			continue
		}
		for _, card := range crawl.cards {
			if card.BehanceID == behanceID {
				pos := card.Position
				return &pos
			}
		}
	}
	return nil
}
