package store

import (
	"context"
	"fmt"

	"github.com/vmaslov/behrank/dbopen"
)

// InsertSearchResult appends one ranked appearance. Positions are
// unique per snapshot; a duplicate position is a caller bug and
// surfaces as a constraint error.
func (s *Store) InsertSearchResult(ctx context.Context, r *SearchResult) error {
	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO search_results (
			snapshot_id, project_id, position, appreciations, views,
			comments, is_promoted, is_featured, cover_image_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SnapshotID, r.ProjectID, r.Position, r.Appreciations, r.Views,
		r.Comments, r.IsPromoted, r.IsFeatured, r.CoverURL,
	)
	if err != nil {
		return fmt.Errorf("store: insert search result (snapshot %d, pos %d): %w",
			r.SnapshotID, r.Position, err)
	}
	return nil
}

// ResultsForSnapshot returns a snapshot's results in rank order.
func (s *Store) ResultsForSnapshot(ctx context.Context, snapshotID int64) ([]*SearchResult, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT snapshot_id, project_id, position, appreciations, views,
			comments, is_promoted, is_featured, cover_image_url
		FROM search_results WHERE snapshot_id = ?
		ORDER BY position ASC`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("store: results for snapshot: %w", err)
	}
	defer rows.Close()

	var out []*SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.SnapshotID, &r.ProjectID, &r.Position,
			&r.Appreciations, &r.Views, &r.Comments,
			&r.IsPromoted, &r.IsFeatured, &r.CoverURL); err != nil {
			return nil, fmt.Errorf("store: scan search result: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
