// Package sqlitekv stores session items in a SQLite file so they survive
// process restarts, the way browser localStorage survives page reloads.
package sqlitekv

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/billed-app/billed/internal/session"
)

// Store implements session.Storage on a SQLite file.
type Store struct {
	db *sql.DB
}

var _ session.Storage = (*Store)(nil)

// New opens (or creates) the session database at the given path. Parent
// directories are created as needed.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS items (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create items table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// The session.Storage contract is synchronous and infallible, matching the
// browser API it mirrors. Database failures are logged and the call behaves
// as if the item were absent.

func (s *Store) GetItem(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM items WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		slog.Error("session read failed", "key", key, "error", err)
		return "", false
	}
	return value, true
}

func (s *Store) SetItem(key, value string) {
	_, err := s.db.Exec(
		"INSERT INTO items (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		slog.Error("session write failed", "key", key, "error", err)
	}
}

func (s *Store) RemoveItem(key string) {
	if _, err := s.db.Exec("DELETE FROM items WHERE key = ?", key); err != nil {
		slog.Error("session delete failed", "key", key, "error", err)
	}
}

func (s *Store) Clear() {
	if _, err := s.db.Exec("DELETE FROM items"); err != nil {
		slog.Error("session clear failed", "error", err)
	}
}
