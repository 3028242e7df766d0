// Package cachestore provides a key-addressed JSON store for remote
// payloads, backed by sqlite. Entries never expire; callers invalidate by
// deleting keys or clearing the store.
package cachestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is a read/write-through JSON store keyed by string paths
// (e.g. "repo_info/i2mint/dol").
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS payloads (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

// Open opens or creates the store database at {dir}/cache.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get unmarshals the payload for key into v. The bool reports whether the
// key was present.
func (s *Store) Get(key string, v any) (bool, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM payloads WHERE key = ?", key).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// Put stores v as JSON under key, replacing any prior payload.
func (s *Store) Put(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO payloads (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, string(payload),
	)
	return err
}

// Delete removes a single key.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM payloads WHERE key = ?", key)
	return err
}

// Clear removes all entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM payloads")
	return err
}

// Stats holds store statistics.
type Stats struct {
	TotalEntries int64
}

func (s *Store) Stats() (*Stats, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM payloads").Scan(&count); err != nil {
		return nil, err
	}
	return &Stats{TotalEntries: count}, nil
}
