// Package sqlite persists the map snapshot in a SQLite key-value
// table. The whole collection is stored as one JSON blob under a fixed
// key, matching the file-backed store's shape so the two backends are
// interchangeable.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

const snapshotKey = "snapshot"

// SnapshotStore is the SQLite-backed snapshot store.
type SnapshotStore struct {
	db *sql.DB
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*SnapshotStore, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Load reads the snapshot blob. A missing row or an undecodable blob
// degrades to an empty collection.
func (s *SnapshotStore) Load(ctx context.Context) ([]domain.Node, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, snapshotKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	nodes, err := domain.DecodeSnapshot(data)
	if err != nil {
		return nil, nil
	}
	return nodes, nil
}

// Save upserts the snapshot blob under the fixed key.
func (s *SnapshotStore) Save(ctx context.Context, nodes []domain.Node) error {
	data, err := domain.EncodeSnapshot(nodes)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, data)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
