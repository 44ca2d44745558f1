package ports

import (
	"context"

	"arbor/internal/domain"
)

// SnapshotStore persists the whole node collection as a single flat
// snapshot. Load must tolerate a missing or corrupt snapshot by
// returning an empty collection rather than an error that would block
// startup.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Node, error)
	Save(ctx context.Context, nodes []domain.Node) error
	Close() error
}
