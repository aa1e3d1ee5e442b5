package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmaslov/behrank/dbopen"
)

// UpsertAuthor inserts a new author or coalesce-updates an existing
// one: NULL incoming fields never erase stored values. Returns the
// author's row id.
func (s *Store) UpsertAuthor(ctx context.Context, a *Author) (int64, error) {
	now := nowUTC()
	var id int64

	err := dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT id FROM authors WHERE username = ?`, a.Username)
		switch err := row.Scan(&id); {
		case err == nil:
			_, err := tx.ExecContext(ctx, `
				UPDATE authors SET
					display_name         = COALESCE(?, display_name),
					url                  = COALESCE(?, url),
					location             = COALESCE(?, location),
					member_since         = COALESCE(?, member_since),
					bio_text             = COALESCE(?, bio_text),
					has_pro              = COALESCE(?, has_pro),
					has_services         = COALESCE(?, has_services),
					hire_status          = COALESCE(?, hire_status),
					has_banner           = COALESCE(?, has_banner),
					has_website_link     = COALESCE(?, has_website_link),
					profile_completeness = COALESCE(?, profile_completeness),
					last_seen            = ?
				WHERE id = ?`,
				a.DisplayName, a.URL, a.Location, a.MemberSince, a.BioText,
				a.HasPro, a.HasServices, a.HireStatus, a.HasBanner,
				a.HasWebsite, a.Completeness, now, id,
			)
			return err
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx, `
				INSERT INTO authors (
					username, display_name, url, location, member_since,
					bio_text, has_pro, has_services, hire_status,
					has_banner, has_website_link, profile_completeness,
					first_seen, last_seen
				) VALUES (?, ?, ?, ?, ?, ?,
					COALESCE(?, 0), COALESCE(?, 0), ?,
					COALESCE(?, 0), COALESCE(?, 0), COALESCE(?, 0), ?, ?)`,
				a.Username, a.DisplayName, a.URL, a.Location, a.MemberSince,
				a.BioText, a.HasPro, a.HasServices, a.HireStatus,
				a.HasBanner, a.HasWebsite, a.Completeness, now, now,
			)
			if err != nil {
				return err
			}
			id, err = res.LastInsertId()
			return err
		default:
			return err
		}
	})
	if err != nil {
		return 0, fmt.Errorf("store: upsert author %s: %w", a.Username, err)
	}
	return id, nil
}

// InsertAuthorStats appends one author_snapshots row tying the
// author's aggregate stats to one snapshot.
func (s *Store) InsertAuthorStats(ctx context.Context, authorID, snapshotID int64, st *AuthorStats) error {
	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO author_snapshots (
			author_id, snapshot_id, total_views, total_appreciations,
			followers, following, project_count
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		authorID, snapshotID, st.TotalViews, st.TotalAppreciations,
		st.Followers, st.Following, st.ProjectCount,
	)
	if err != nil {
		return fmt.Errorf("store: insert author stats: %w", err)
	}
	return nil
}

// LatestAuthorStats returns the most recent author_snapshots row for
// an author, or nil if none exists.
func (s *Store) LatestAuthorStats(ctx context.Context, authorID int64) (*AuthorStats, error) {
	var st AuthorStats
	err := s.DB.QueryRowContext(ctx, `
		SELECT total_views, total_appreciations, followers, following, project_count
		FROM author_snapshots WHERE author_id = ?
		ORDER BY snapshot_id DESC LIMIT 1`, authorID,
	).Scan(&st.TotalViews, &st.TotalAppreciations, &st.Followers, &st.Following, &st.ProjectCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest author stats: %w", err)
	}
	return &st, nil
}
