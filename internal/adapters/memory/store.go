package memory

import (
	"context"
	"sync"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// Store is the in-memory NodeStore. The editor itself is
// single-threaded, but the MCP surface serves tools concurrently, so
// access is guarded.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]domain.Node
}

var _ ports.NodeStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]domain.Node)}
}

// Get returns the node with the given id, or nil if absent.
func (s *Store) Get(_ context.Context, id string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	return &node, nil
}

// Children returns the children of parentID sorted by sibling order.
func (s *Store) Children(_ context.Context, parentID string) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Node
	for _, n := range s.nodes {
		if !n.IsRoot() && n.ParentID == parentID {
			out = append(out, n)
		}
	}
	domain.SortByOrder(out)
	return out, nil
}

// All returns every node in the store.
func (s *Store) All(_ context.Context) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out, nil
}

// Put upserts a node by id.
func (s *Store) Put(_ context.Context, node domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node.ID] = node
	return nil
}

// Remove deletes a node by id. Removing an absent id is a no-op.
func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, id)
	return nil
}
