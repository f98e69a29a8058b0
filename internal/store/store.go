// Package store provides the SQLite-backed reply log. Each answered message
// leaves one row describing the outcome (language, domain, how many sources,
// best score). The message text itself is never stored, and nothing in the
// request path reads the log back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register "sqlite" driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Entry describes one reply.
type Entry struct {
	// RequestID correlates the row with request logs. May be empty.
	RequestID string
	// Lang is the detected language.
	Lang string
	// Domain is "safety" or "general".
	Domain string
	// SourceCount is the number of retrieved chunks.
	SourceCount int
	// TopScore is the best retrieval score, 0 without sources.
	TopScore float64
	// CreatedAt defaults to the current time.
	CreatedAt time.Time
}

// SummaryRow aggregates replies per language and domain.
type SummaryRow struct {
	Lang        string  `json:"lang"`
	Domain      string  `json:"domain"`
	Count       int     `json:"count"`
	AvgSources  float64 `json:"avg_sources"`
	AvgTopScore float64 `json:"avg_top_score"`
}

// ReplyLog records reply outcomes. Implementations must be safe for
// concurrent use.
type ReplyLog interface {
	// Record persists e and returns the generated row ID.
	Record(ctx context.Context, e Entry) (string, error)
	// Summary aggregates replies created at or after since.
	Summary(ctx context.Context, since time.Time) ([]SummaryRow, error)
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the log.
	Close() error
}

// SQLiteStore is a ReplyLog backed by a local SQLite database.
type SQLiteStore struct {
	// db is the underlying database connection pool.
	db *sql.DB
}

var _ ReplyLog = (*SQLiteStore)(nil)

// Open opens (or creates) a SQLiteStore at the given path, creating its
// directory if needed, and runs the schema migration. Use MemoryPath for an
// in-memory database in tests.
func Open(path string) (*SQLiteStore, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("store: could not create %s: %w", filepath.Dir(path), err)
		}
	}

	// WAL mode improves concurrent read performance and is safe for single-host use.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// Limit to a single writer connection to avoid SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not already exist.
func (s *SQLiteStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS replies (
    id           TEXT    PRIMARY KEY,
    request_id   TEXT    NOT NULL DEFAULT '',
    lang         TEXT    NOT NULL,
    domain       TEXT    NOT NULL CHECK(domain IN ('safety','general')),
    source_count INTEGER NOT NULL,
    top_score    REAL    NOT NULL,
    created_at   INTEGER NOT NULL  -- Unix timestamp (seconds)
);
CREATE INDEX IF NOT EXISTS idx_replies_created
    ON replies (created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Record persists a single reply outcome.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) (string, error) {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	id := uuid.NewString()

	const q = `INSERT INTO replies (id, request_id, lang, domain, source_count, top_score, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, id, e.RequestID, e.Lang, e.Domain, e.SourceCount, e.TopScore, created.Unix()); err != nil {
		return "", fmt.Errorf("store: record: %w", err)
	}
	return id, nil
}

// Summary aggregates replies created at or after since, ordered by language
// then domain.
func (s *SQLiteStore) Summary(ctx context.Context, since time.Time) ([]SummaryRow, error) {
	const q = `
SELECT   lang, domain, COUNT(*), AVG(source_count), AVG(top_score)
FROM     replies
WHERE    created_at >= ?
GROUP BY lang, domain
ORDER BY lang ASC, domain ASC`

	rows, err := s.db.QueryContext(ctx, q, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("store: summary: %w", err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.Lang, &r.Domain, &r.Count, &r.AvgSources, &r.AvgTopScore); err != nil {
			return nil, fmt.Errorf("store: summary scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: summary rows: %w", err)
	}
	return out, nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Close releases the database connection pool.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}
