package store

import (
	"context"
	"fmt"
)

// CreateSnapshot records the start of one query crawl and returns the
// new snapshot id. total_collected stays 0 until FinalizeSnapshot.
func (s *Store) CreateSnapshot(ctx context.Context, query, sortType string) (int64, error) {
	if sortType == "" {
		sortType = "recommended"
	}
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO snapshots (timestamp, query, sort_type) VALUES (?, ?, ?)`,
		nowUTC(), query, sortType,
	)
	if err != nil {
		return 0, fmt.Errorf("store: create snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: snapshot id: %w", err)
	}
	return id, nil
}

// FinalizeSnapshot writes the number of results actually collected.
func (s *Store) FinalizeSnapshot(ctx context.Context, snapshotID int64, total int) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE snapshots SET total_collected = ? WHERE id = ?`,
		total, snapshotID,
	)
	if err != nil {
		return fmt.Errorf("store: finalize snapshot %d: %w", snapshotID, err)
	}
	return nil
}

// SnapshotsForQuery returns all snapshots for a query, newest first.
func (s *Store) SnapshotsForQuery(ctx context.Context, query string) ([]*Snapshot, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, timestamp, query, sort_type, total_collected
		 FROM snapshots WHERE query = ? ORDER BY timestamp DESC`, query)
	if err != nil {
		return nil, fmt.Errorf("store: snapshots for query: %w", err)
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.Timestamp, &sn.Query, &sn.SortType, &sn.TotalCollected); err != nil {
			return nil, fmt.Errorf("store: scan snapshot: %w", err)
		}
		out = append(out, &sn)
	}
	return out, rows.Err()
}
