package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vmaslov/behrank/dbopen"
)

// projectFields is the coalesce-upsert column set. behance_id and the
// seen timestamps are handled separately.
var projectFields = []string{
	"title", "url", "url_slug", "published_date",
	"publish_day_of_week", "publish_hour", "author_id",
	"module_count", "image_count", "video_count", "text_count",
	"embed_count", "description_length", "description_has_query_keywords",
	"title_keyword_match", "has_external_links", "external_link_count",
	"cover_image_url", "cover_image_width", "cover_image_height",
	"comments_count", "saves_count", "is_featured", "co_owners_count",
	"creative_fields", "tools_used", "is_my_project",
}

func projectValues(p *Project) []any {
	return []any{
		p.Title, p.URL, p.URLSlug, p.PublishedDate,
		p.PublishWeekday, p.PublishHour, p.AuthorID,
		p.ModuleCount, p.ImageCount, p.VideoCount, p.TextCount,
		p.EmbedCount, p.DescriptionLen, p.DescHasQuery,
		p.TitleMatch, p.HasExternalLinks, p.ExternalLinks,
		p.CoverURL, p.CoverWidth, p.CoverHeight,
		p.CommentsCount, p.SavesCount, p.IsFeatured, p.CoOwnersCount,
		p.CreativeFields, p.ToolsUsed, p.IsMyProject,
	}
}

// UpsertProject inserts a new project or coalesce-updates an existing
// one by behance_id. Returns the project's row id.
func (s *Store) UpsertProject(ctx context.Context, p *Project) (int64, error) {
	now := nowUTC()
	var id int64

	err := dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT id FROM projects WHERE behance_id = ?`, p.BehanceID)
		switch err := row.Scan(&id); {
		case err == nil:
			sets := make([]string, len(projectFields))
			for i, f := range projectFields {
				sets[i] = fmt.Sprintf("%s = COALESCE(?, %s)", f, f)
			}
			args := projectValues(p)
			args = append(args, now, id)
			_, err := tx.ExecContext(ctx,
				"UPDATE projects SET "+strings.Join(sets, ", ")+", last_seen = ? WHERE id = ?",
				args...,
			)
			return err
		case errors.Is(err, sql.ErrNoRows):
			cols := strings.Join(projectFields, ", ")
			marks := strings.Repeat("?, ", len(projectFields))
			args := projectValues(p)
			args = append(args, p.BehanceID, now, now)
			res, err := tx.ExecContext(ctx,
				"INSERT INTO projects ("+cols+", behance_id, first_seen, last_seen) VALUES ("+marks+"?, ?, ?)",
				args...,
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
		return 0, fmt.Errorf("store: upsert project %s: %w", p.BehanceID, err)
	}
	return id, nil
}

// InsertProjectTags adds tags to a project. Existing tags are skipped
// silently.
func (s *Store) InsertProjectTags(ctx context.Context, projectID int64, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		_, err := dbopen.Exec(ctx, s.DB,
			`INSERT OR IGNORE INTO project_tags (project_id, tag_name) VALUES (?, ?)`,
			projectID, tag,
		)
		if err != nil {
			return fmt.Errorf("store: insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// ProjectTags returns the tag set for a project.
func (s *Store) ProjectTags(ctx context.Context, projectID int64) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT tag_name FROM project_tags WHERE project_id = ? ORDER BY tag_name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("store: project tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("store: scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetProject loads a project by behance_id, or nil if unknown.
func (s *Store) GetProject(ctx context.Context, behanceID string) (*Project, error) {
	var p Project
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, behance_id, title, url, url_slug, published_date,
			publish_day_of_week, publish_hour, author_id,
			module_count, image_count, video_count, text_count, embed_count,
			description_length, description_has_query_keywords,
			title_keyword_match, has_external_links, external_link_count,
			cover_image_url, cover_image_width, cover_image_height,
			comments_count, saves_count, is_featured, co_owners_count,
			creative_fields, tools_used, is_my_project, first_seen, last_seen
		FROM projects WHERE behance_id = ?`, behanceID,
	).Scan(
		&p.ID, &p.BehanceID, &p.Title, &p.URL, &p.URLSlug, &p.PublishedDate,
		&p.PublishWeekday, &p.PublishHour, &p.AuthorID,
		&p.ModuleCount, &p.ImageCount, &p.VideoCount, &p.TextCount, &p.EmbedCount,
		&p.DescriptionLen, &p.DescHasQuery,
		&p.TitleMatch, &p.HasExternalLinks, &p.ExternalLinks,
		&p.CoverURL, &p.CoverWidth, &p.CoverHeight,
		&p.CommentsCount, &p.SavesCount, &p.IsFeatured, &p.CoOwnersCount,
		&p.CreativeFields, &p.ToolsUsed, &p.IsMyProject, &p.FirstSeen, &p.LastSeen,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project %s: %w", behanceID, err)
	}
	return &p, nil
}

// SelfProjects returns all projects flagged as the operator's own.
func (s *Store) SelfProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT behance_id FROM projects WHERE is_my_project = 1`)
	if err != nil {
		return nil, fmt.Errorf("store: self projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan self project: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
