package mode

import (
	"testing"
)

func TestMachine(t *testing.T) {
	t.Run("starts in normal mode", func(t *testing.T) {
		m := NewMachine()
		if m.Current() != Normal {
			t.Errorf("expected normal, got %s", m.Current())
		}
	})

	t.Run("transitions between modes", func(t *testing.T) {
		m := NewMachine()
		m.EnterInsert()
		if m.Current() != Insert {
			t.Errorf("expected insert, got %s", m.Current())
		}
		m.EnterNormal()
		if m.Current() != Normal {
			t.Errorf("expected normal, got %s", m.Current())
		}
	})

	t.Run("a self-transition does not notify", func(t *testing.T) {
		m := NewMachine()
		calls := 0
		m.Subscribe(func(Mode) { calls++ })

		m.EnterNormal()
		if calls != 0 {
			t.Errorf("expected no notification for a self-transition, got %d", calls)
		}
		m.EnterInsert()
		m.EnterInsert()
		if calls != 1 {
			t.Errorf("expected exactly 1 notification, got %d", calls)
		}
	})

	t.Run("notifies subscribers in subscription order", func(t *testing.T) {
		m := NewMachine()
		var order []int
		m.Subscribe(func(Mode) { order = append(order, 1) })
		m.Subscribe(func(Mode) { order = append(order, 2) })

		m.EnterInsert()

		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("expected [1 2], got %v", order)
		}
	})

	t.Run("cancel removes exactly one subscriber", func(t *testing.T) {
		m := NewMachine()
		first, second := 0, 0
		cancel := m.Subscribe(func(Mode) { first++ })
		m.Subscribe(func(Mode) { second++ })

		cancel()
		m.EnterInsert()

		if first != 0 {
			t.Errorf("expected the cancelled subscriber silent, got %d calls", first)
		}
		if second != 1 {
			t.Errorf("expected the remaining subscriber notified once, got %d", second)
		}

		// Cancelling twice is harmless.
		cancel()
		m.EnterNormal()
		if second != 2 {
			t.Errorf("expected 2 notifications, got %d", second)
		}
	})
}
