package application

import (
	"context"

	"arbor/internal/domain"
)

// Navigation queries. Each returns an id or the empty string, never an
// error the caller has to branch on: a failed lookup simply means
// "nowhere to go" and navigation commands treat it as a no-op.

// ParentID returns the parent of id, or "" for the root or a missing id.
func (s *TreeService) ParentID(ctx context.Context, id string) string {
	node, err := s.store.Get(ctx, id)
	if err != nil || node == nil {
		return ""
	}
	return node.ParentID
}

// FirstChildID returns the lowest-order child of id, or "".
func (s *TreeService) FirstChildID(ctx context.Context, id string) string {
	children, err := s.store.Children(ctx, id)
	if err != nil || len(children) == 0 {
		return ""
	}
	return children[0].ID
}

// NextSiblingID returns the sibling ordered immediately after id, or "".
func (s *TreeService) NextSiblingID(ctx context.Context, id string) string {
	return s.siblingAt(ctx, id, 1)
}

// PrevSiblingID returns the sibling ordered immediately before id, or "".
func (s *TreeService) PrevSiblingID(ctx context.Context, id string) string {
	return s.siblingAt(ctx, id, -1)
}

func (s *TreeService) siblingAt(ctx context.Context, id string, offset int) string {
	node, err := s.store.Get(ctx, id)
	if err != nil || node == nil || node.IsRoot() {
		return ""
	}
	siblings, err := s.store.Children(ctx, node.ParentID)
	if err != nil {
		return ""
	}
	for i, sib := range siblings {
		if sib.ID == id {
			j := i + offset
			if j < 0 || j >= len(siblings) {
				return ""
			}
			return siblings[j].ID
		}
	}
	return ""
}

// RootID returns the id of the root node, or "" for an empty tree.
func (s *TreeService) RootID(ctx context.Context) string {
	nodes, err := s.store.All(ctx)
	if err != nil {
		return ""
	}
	root, ok := domain.FindRoot(nodes)
	if !ok {
		return ""
	}
	return root.ID
}

// HasNodes reports whether the tree contains any nodes.
func (s *TreeService) HasNodes(ctx context.Context) bool {
	nodes, err := s.store.All(ctx)
	return err == nil && len(nodes) > 0
}
