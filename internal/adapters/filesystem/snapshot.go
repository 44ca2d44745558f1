// Package filesystem persists the map snapshot as a single JSON file.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// SnapshotStore writes the whole node collection to one JSON file.
type SnapshotStore struct {
	path string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store writing to path. "~" is expanded to
// the user's home directory.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: expandHome(path)}
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Load reads the snapshot. A missing or unreadable file degrades to an
// empty collection so startup is never blocked by a corrupt snapshot.
func (s *SnapshotStore) Load(_ context.Context) ([]domain.Node, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}
	nodes, err := domain.DecodeSnapshot(data)
	if err != nil {
		return nil, nil
	}
	return nodes, nil
}

// Save writes the snapshot atomically: to a temp file in the same
// directory, then renamed into place.
func (s *SnapshotStore) Save(_ context.Context, nodes []domain.Node) error {
	data, err := domain.EncodeSnapshot(nodes)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *SnapshotStore) Close() error {
	return nil
}
