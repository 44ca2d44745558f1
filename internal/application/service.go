package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// TreeService implements structural edits on top of a NodeStore while
// enforcing tree invariants: a single root, unique sibling orders, and
// no orphaned subtrees. All mutation happens through this service; the
// store itself is never written directly by callers.
type TreeService struct {
	store ports.NodeStore

	// AllowRootCascadeDelete permits DeleteSubtree on the root as a way
	// to reset the whole tree. Off by default.
	AllowRootCascadeDelete bool
}

// NewTreeService creates a tree service over the given store.
func NewTreeService(store ports.NodeStore) *TreeService {
	return &TreeService{store: store}
}

// Store returns the underlying node store.
func (s *TreeService) Store() ports.NodeStore {
	return s.store
}

// CreateRoot creates the root node. Fails if a root already exists.
func (s *TreeService) CreateRoot(ctx context.Context, content string) (*domain.Node, error) {
	nodes, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindRoot(nodes); ok {
		return nil, fmt.Errorf("root already exists")
	}
	node := domain.Node{ID: uuid.NewString(), Content: content}
	if err := s.store.Put(ctx, node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateChild appends a new node as the last child of parentID. Its
// order is one past the current maximum sibling order, or 0 when the
// parent has no children yet.
func (s *TreeService) CreateChild(ctx context.Context, parentID, content string) (*domain.Node, error) {
	parent, err := s.store.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("create child under %s: %w", parentID, ErrNotFound)
	}

	siblings, err := s.store.Children(ctx, parentID)
	if err != nil {
		return nil, err
	}
	order := 0
	if len(siblings) > 0 {
		order = siblings[len(siblings)-1].Order + 1
	}

	node := domain.Node{ID: uuid.NewString(), Content: content, ParentID: parentID, Order: order}
	if err := s.store.Put(ctx, node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateSiblingAbove inserts a new node immediately before the anchor
// in sibling order. Returns nil for a root anchor: the root has no
// siblings.
func (s *TreeService) CreateSiblingAbove(ctx context.Context, anchorID, content string) (*domain.Node, error) {
	return s.createSibling(ctx, anchorID, content, true)
}

// CreateSiblingBelow inserts a new node immediately after the anchor in
// sibling order. Returns nil for a root anchor.
func (s *TreeService) CreateSiblingBelow(ctx context.Context, anchorID, content string) (*domain.Node, error) {
	return s.createSibling(ctx, anchorID, content, false)
}

func (s *TreeService) createSibling(ctx context.Context, anchorID, content string, above bool) (*domain.Node, error) {
	anchor, err := s.store.Get(ctx, anchorID)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return nil, fmt.Errorf("create sibling of %s: %w", anchorID, ErrNotFound)
	}
	if anchor.IsRoot() {
		return nil, nil
	}

	siblings, err := s.store.Children(ctx, anchor.ParentID)
	if err != nil {
		return nil, err
	}

	// Shift at-or-after the anchor for "above", strictly after for
	// "below", then insert into the freed slot. Keeps orders contiguous
	// relative to visual position.
	threshold := anchor.Order
	if !above {
		threshold = anchor.Order + 1
	}
	for _, sib := range siblings {
		if sib.Order >= threshold {
			sib.Order++
			if err := s.store.Put(ctx, sib); err != nil {
				return nil, err
			}
		}
	}

	node := domain.Node{ID: uuid.NewString(), Content: content, ParentID: anchor.ParentID, Order: threshold}
	if err := s.store.Put(ctx, node); err != nil {
		return nil, err
	}
	return &node, nil
}

// InsertBetween splices a new node between childID and its parent: the
// new node takes over the child's former order and parent, and the
// child is re-parented under it with order 0. Returns nil for the root
// (no parent to insert under).
func (s *TreeService) InsertBetween(ctx context.Context, childID, content string) (*domain.Node, error) {
	child, err := s.store.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, fmt.Errorf("insert above %s: %w", childID, ErrNotFound)
	}
	if child.IsRoot() {
		return nil, nil
	}

	node := domain.Node{ID: uuid.NewString(), Content: content, ParentID: child.ParentID, Order: child.Order}
	if err := s.store.Put(ctx, node); err != nil {
		return nil, err
	}

	child.ParentID = node.ID
	child.Order = 0
	if err := s.store.Put(ctx, *child); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateContent replaces the content of an existing node, preserving
// identity, parent, and order. Unlike the navigation queries this is a
// hard error on a missing id: it is only ever invoked on a
// just-validated selection.
func (s *TreeService) UpdateContent(ctx context.Context, id, content string) error {
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("update content of %s: %w", id, ErrNotFound)
	}
	node.Content = content
	return s.store.Put(ctx, *node)
}

// DeleteNode removes a single node. It succeeds only for an existing,
// non-root, childless node; otherwise it returns a DeleteError with a
// distinguishable reason and performs no mutation.
func (s *TreeService) DeleteNode(ctx context.Context, id string) error {
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if node == nil {
		return &DeleteError{ID: id, Reason: ErrNotFound}
	}
	if node.IsRoot() {
		return &DeleteError{ID: id, Reason: ErrCannotDeleteRoot}
	}
	children, err := s.store.Children(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return &DeleteError{ID: id, Reason: ErrHasChildren}
	}
	return s.store.Remove(ctx, id)
}

// DeleteSubtree removes id and every descendant, children before
// parents. Deleting the root is rejected unless AllowRootCascadeDelete
// is set.
func (s *TreeService) DeleteSubtree(ctx context.Context, id string) error {
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if node == nil {
		return &DeleteError{ID: id, Reason: ErrNotFound}
	}
	if node.IsRoot() && !s.AllowRootCascadeDelete {
		return &DeleteError{ID: id, Reason: ErrCannotDeleteRoot}
	}

	ids, err := s.collectSubtree(ctx, id)
	if err != nil {
		return err
	}
	// ids is parent-before-child; delete in reverse for post-order.
	for i := len(ids) - 1; i >= 0; i-- {
		if err := s.store.Remove(ctx, ids[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteChildren removes every descendant of id but keeps id itself.
func (s *TreeService) DeleteChildren(ctx context.Context, id string) error {
	node, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if node == nil {
		return &DeleteError{ID: id, Reason: ErrNotFound}
	}

	ids, err := s.collectSubtree(ctx, id)
	if err != nil {
		return err
	}
	for i := len(ids) - 1; i >= 1; i-- {
		if err := s.store.Remove(ctx, ids[i]); err != nil {
			return err
		}
	}
	return nil
}

// collectSubtree gathers the ids of id and all descendants in
// parent-before-child order. Collecting first avoids mutating the
// collection while walking it.
func (s *TreeService) collectSubtree(ctx context.Context, id string) ([]string, error) {
	ids := []string{id}
	for i := 0; i < len(ids); i++ {
		children, err := s.store.Children(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}
