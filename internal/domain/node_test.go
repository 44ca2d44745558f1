package domain

import (
	"testing"
)

func TestSortByOrder(t *testing.T) {
	t.Run("sorts by ascending order", func(t *testing.T) {
		nodes := []Node{
			{ID: "c", Order: 2},
			{ID: "a", Order: 0},
			{ID: "b", Order: 1},
		}

		SortByOrder(nodes)

		if nodes[0].ID != "a" {
			t.Errorf("expected first node to be a, got %s", nodes[0].ID)
		}
		if nodes[1].ID != "b" {
			t.Errorf("expected second node to be b, got %s", nodes[1].ID)
		}
		if nodes[2].ID != "c" {
			t.Errorf("expected third node to be c, got %s", nodes[2].ID)
		}
	})

	t.Run("breaks order ties by ID", func(t *testing.T) {
		nodes := []Node{
			{ID: "z", Order: 0},
			{ID: "a", Order: 0},
		}

		SortByOrder(nodes)

		if nodes[0].ID != "a" {
			t.Errorf("expected tie to resolve to a first, got %s", nodes[0].ID)
		}
	})
}

func TestFindRoot(t *testing.T) {
	t.Run("finds the node without a parent", func(t *testing.T) {
		nodes := []Node{
			{ID: "child", ParentID: "root"},
			{ID: "root"},
		}

		root, ok := FindRoot(nodes)
		if !ok {
			t.Fatal("expected a root")
		}
		if root.ID != "root" {
			t.Errorf("expected root, got %s", root.ID)
		}
	})

	t.Run("reports false for an empty collection", func(t *testing.T) {
		if _, ok := FindRoot(nil); ok {
			t.Error("expected no root in empty collection")
		}
	})
}

func TestChildrenOf(t *testing.T) {
	nodes := []Node{
		{ID: "root"},
		{ID: "b", ParentID: "root", Order: 1},
		{ID: "a", ParentID: "root", Order: 0},
		{ID: "x", ParentID: "a", Order: 0},
	}

	t.Run("returns direct children sorted by order", func(t *testing.T) {
		children := ChildrenOf(nodes, "root")
		if len(children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(children))
		}
		if children[0].ID != "a" || children[1].ID != "b" {
			t.Errorf("expected [a b], got [%s %s]", children[0].ID, children[1].ID)
		}
	})

	t.Run("returns nothing for a leaf", func(t *testing.T) {
		if children := ChildrenOf(nodes, "x"); len(children) != 0 {
			t.Errorf("expected no children, got %d", len(children))
		}
	})
}

func TestOutlineText(t *testing.T) {
	nodes := []Node{
		{ID: "root", Content: "Project"},
		{ID: "a", Content: "First", ParentID: "root", Order: 0},
		{ID: "b", Content: "Second", ParentID: "root", Order: 1},
		{ID: "a1", Content: "Detail", ParentID: "a", Order: 0},
	}

	t.Run("renders the subtree with two-space indentation", func(t *testing.T) {
		got := OutlineText(nodes, "root")
		want := "Project\n  First\n    Detail\n  Second\n"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("renders a partial subtree from any node", func(t *testing.T) {
		got := OutlineText(nodes, "a")
		want := "First\n  Detail\n"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("returns empty for an unknown id", func(t *testing.T) {
		if got := OutlineText(nodes, "nope"); got != "" {
			t.Errorf("expected empty outline, got %q", got)
		}
	})
}
