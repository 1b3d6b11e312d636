package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Store is the durable entity store for papers and comments. Two related
// tables, cascade delete from a paper to its comments, every mutation
// committed in a single transaction so readers never observe a
// half-applied record.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS papers (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	authors        TEXT NOT NULL,
	summary        TEXT NOT NULL,
	published_date INTEGER NOT NULL,
	pdf_url        TEXT NOT NULL,
	upvotes        INTEGER NOT NULL DEFAULT 0,
	downvotes      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	paper_id   TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
	body       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	user_id    TEXT NOT NULL,
	username   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_paper ON comments(paper_id);
`

// Open opens (or creates) the database at path and applies the schema.
// The single connection keeps SQLite happy with the one-writer model.
func Open(path string) (*Store, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
