// Package recent keeps the recent-documents list in a local sqlite
// database. Every operation here is an affordance: callers treat
// failures as loggable, never fatal.
package recent

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one remembered document.
type Entry struct {
	Path        string
	DisplayName string
	Checksum    string
	LastOpened  time.Time
}

// Store wraps the sqlite handle.
type Store struct{ db *sql.DB }

// Open creates or opens the database at path and runs migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &Store{db: dbh}, nil
}

func migrate(ctx context.Context, dbh *sql.DB) error {
	_, err := dbh.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS recent_docs (
  path         TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  checksum     TEXT NOT NULL DEFAULT '',
  last_opened  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recent_last_opened ON recent_docs(last_opened DESC);
`)
	if err != nil {
		return fmt.Errorf("migrate recent_docs: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Touch inserts or refreshes an entry, moving it to the top of the list.
func (s *Store) Touch(path, displayName, checksum string) error {
	_, err := s.db.Exec(`
INSERT INTO recent_docs (path, display_name, checksum, last_opened)
VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
  display_name = excluded.display_name,
  checksum     = excluded.checksum,
  last_opened  = excluded.last_opened
`, path, displayName, checksum, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch recent %s: %w", path, err)
	}
	return nil
}

// List returns entries most recent first, at most limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT path, display_name, checksum, last_opened
FROM recent_docs ORDER BY last_opened DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.DisplayName, &e.Checksum, &e.LastOpened); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Remove drops a single entry, e.g. after the user opens a stale path.
func (s *Store) Remove(path string) error {
	_, err := s.db.Exec(`DELETE FROM recent_docs WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("remove recent %s: %w", path, err)
	}
	return nil
}

// Prune drops entries whose files no longer exist on disk. Best-effort:
// stat errors other than not-exist keep the entry.
func (s *Store) Prune(ctx context.Context) error {
	entries, err := s.List(ctx, 1000)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := os.Stat(e.Path); os.IsNotExist(err) {
			if err := s.Remove(e.Path); err != nil {
				return err
			}
		}
	}
	return nil
}
