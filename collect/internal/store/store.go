// Package store is the data access layer for the collection pipeline.
//
// Two update disciplines coexist: append-only history rows (snapshots,
// search_results, author_snapshots, project_tags, tracked_snapshots)
// and coalesce-upserts for the canonical project/author records. Every
// write commits independently, so an interrupted run leaves a valid,
// resumable store. WAL mode lets a read-only analysis process read
// committed data while a run is still writing.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmaslov/behrank/dbopen"
)

// Store wraps the collection database.
type Store struct {
	DB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := dbopen.Open(path,
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{DB: db}, nil
}

// New wraps an already-opened database. The caller is responsible for
// the schema.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
