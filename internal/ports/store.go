package ports

import (
	"context"

	"arbor/internal/domain"
)

// NodeStore holds the canonical node collection. Every method takes a
// context so a non-memory backend can be substituted without changing
// callers; the in-memory implementation resolves synchronously.
//
// Get returns (nil, nil) for a missing id — absence is a value, not an
// error. Callers decide whether absence is a failure.
type NodeStore interface {
	Get(ctx context.Context, id string) (*domain.Node, error)
	Children(ctx context.Context, parentID string) ([]domain.Node, error)
	All(ctx context.Context) ([]domain.Node, error)
	Put(ctx context.Context, node domain.Node) error
	Remove(ctx context.Context, id string) error
}
