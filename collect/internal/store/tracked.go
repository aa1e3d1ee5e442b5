package store

import (
	"context"
	"fmt"

	"github.com/vmaslov/behrank/dbopen"
)

// InsertTrackedSample appends one tracked_snapshots row. Nil positions
// persist as NULL, meaning the project was outside that query's
// collected results for this run.
func (s *Store) InsertTrackedSample(ctx context.Context, t *TrackedSample) error {
	ts := t.Timestamp
	if ts == "" {
		ts = nowUTC()
	}
	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO tracked_snapshots (
			timestamp, behance_id, label, appreciations, views,
			comments, position_infografika, position_design_cards,
			days_since_publish
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, t.BehanceID, t.Label, t.Appreciations, t.Views,
		t.Comments, t.PosInfografika, t.PosDesignCards, t.DaysSincePublish,
	)
	if err != nil {
		return fmt.Errorf("store: insert tracked sample %s: %w", t.BehanceID, err)
	}
	return nil
}

// TrackedHistory returns all samples for one gallery id, oldest first.
func (s *Store) TrackedHistory(ctx context.Context, behanceID string) ([]*TrackedSample, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT timestamp, behance_id, label, appreciations, views,
			comments, position_infografika, position_design_cards,
			days_since_publish
		FROM tracked_snapshots WHERE behance_id = ?
		ORDER BY timestamp ASC`, behanceID)
	if err != nil {
		return nil, fmt.Errorf("store: tracked history: %w", err)
	}
	defer rows.Close()

	var out []*TrackedSample
	for rows.Next() {
		var t TrackedSample
		if err := rows.Scan(&t.Timestamp, &t.BehanceID, &t.Label,
			&t.Appreciations, &t.Views, &t.Comments,
			&t.PosInfografika, &t.PosDesignCards, &t.DaysSincePublish); err != nil {
			return nil, fmt.Errorf("store: scan tracked sample: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
