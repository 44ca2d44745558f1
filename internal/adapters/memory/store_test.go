package memory

import (
	"context"
	"testing"

	"arbor/internal/domain"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns nil for a missing id", func(t *testing.T) {
		s := NewStore()
		node, err := s.Get(ctx, "ghost")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if node != nil {
			t.Errorf("expected nil, got %v", node)
		}
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		s := NewStore()
		want := domain.Node{ID: "a", Content: "hello", ParentID: "root", Order: 2}
		if err := s.Put(ctx, want); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, err := s.Get(ctx, "a")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got == nil || *got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("put overwrites by id", func(t *testing.T) {
		s := NewStore()
		s.Put(ctx, domain.Node{ID: "a", Content: "old"})
		s.Put(ctx, domain.Node{ID: "a", Content: "new"})

		got, _ := s.Get(ctx, "a")
		if got.Content != "new" {
			t.Errorf("expected new, got %s", got.Content)
		}
	})

	t.Run("children are sorted by sibling order", func(t *testing.T) {
		s := NewStore()
		s.Put(ctx, domain.Node{ID: "root"})
		s.Put(ctx, domain.Node{ID: "b", ParentID: "root", Order: 1})
		s.Put(ctx, domain.Node{ID: "a", ParentID: "root", Order: 0})

		children, err := s.Children(ctx, "root")
		if err != nil {
			t.Fatalf("children failed: %v", err)
		}
		if len(children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(children))
		}
		if children[0].ID != "a" || children[1].ID != "b" {
			t.Errorf("expected [a b], got [%s %s]", children[0].ID, children[1].ID)
		}
	})

	t.Run("remove deletes and tolerates absent ids", func(t *testing.T) {
		s := NewStore()
		s.Put(ctx, domain.Node{ID: "a"})

		if err := s.Remove(ctx, "a"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if got, _ := s.Get(ctx, "a"); got != nil {
			t.Error("expected the node removed")
		}
		if err := s.Remove(ctx, "a"); err != nil {
			t.Errorf("expected removing an absent id to be a no-op, got %v", err)
		}
	})

	t.Run("all returns every node", func(t *testing.T) {
		s := NewStore()
		s.Put(ctx, domain.Node{ID: "root"})
		s.Put(ctx, domain.Node{ID: "a", ParentID: "root"})

		nodes, err := s.All(ctx)
		if err != nil {
			t.Fatalf("all failed: %v", err)
		}
		if len(nodes) != 2 {
			t.Errorf("expected 2 nodes, got %d", len(nodes))
		}
	})
}
