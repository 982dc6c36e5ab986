// Package store persists JSON documents in SQLite with two columns per
// document: a JSONB-like column whose round trip does not keep object member
// order, and a raw text column that survives byte-for-byte. It exists to
// exercise (and demonstrate) the difference between the two storage paths.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned by Get when no document has the requested name.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	raw  TEXT NOT NULL
)`

// Store is a named-document store backed by a single SQLite database.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and ensures the documents table
// exists. A nil logger falls back to slog.Default.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Debug("store ready", "path", path)
	return &Store{conn: conn, logger: logger}, nil
}

// Put stores a document under name, replacing any previous version. The
// generic value is re-serialized into the data column by an order-erasing
// JSON writer (encoding/json, which emits map keys sorted); raw is stored
// verbatim. Callers holding an ordered document lower it with Generic first
// and pass its Marshal output as raw when order must survive.
func (s *Store) Put(ctx context.Context, name string, generic any, raw string) error {
	data, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("encode data column: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO documents (name, data, raw) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, raw = excluded.raw`,
		name, string(data), raw)
	if err != nil {
		return fmt.Errorf("insert document %q: %w", name, err)
	}
	s.logger.Debug("document stored", "name", name, "raw_bytes", len(raw))
	return nil
}

// Get loads a document by name. The generic value comes back from the data
// column with whatever member order the medium produced; raw is byte-identical
// to what Put received. Missing names fail with ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (any, string, error) {
	var data, raw string
	err := s.conn.QueryRowContext(ctx,
		`SELECT data, raw FROM documents WHERE name = ?`, name).Scan(&data, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("select document %q: %w", name, err)
	}
	var generic any
	if err := json.Unmarshal([]byte(data), &generic); err != nil {
		return nil, "", fmt.Errorf("decode data column for %q: %w", name, err)
	}
	return generic, raw, nil
}

// Reset deletes all stored documents for a clean demonstration run.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("reset documents: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
