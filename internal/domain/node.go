package domain

import "slices"

// Node represents a single entry in the mind map. A node with an empty
// ParentID is the root; Order positions it among its siblings.
type Node struct {
	ID       string
	Content  string
	ParentID string
	Order    int
}

// IsRoot returns true if the node has no parent.
func (n Node) IsRoot() bool {
	return n.ParentID == ""
}

// SortByOrder sorts nodes by ascending sibling order.
func SortByOrder(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		// Order collisions should not happen among siblings; fall back
		// to ID so the result stays deterministic if they do.
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

// FindRoot returns the root node of a flat collection, or false if the
// collection is empty or has no root.
func FindRoot(nodes []Node) (Node, bool) {
	for _, n := range nodes {
		if n.IsRoot() {
			return n, true
		}
	}
	return Node{}, false
}

// ChildrenOf returns the children of parentID from a flat collection,
// sorted by sibling order.
func ChildrenOf(nodes []Node, parentID string) []Node {
	var out []Node
	for _, n := range nodes {
		if !n.IsRoot() && n.ParentID == parentID {
			out = append(out, n)
		}
	}
	SortByOrder(out)
	return out
}
