package engine

import (
	"testing"
	"time"

	"arbor/internal/input/key"
	"arbor/internal/input/keymap"
	"arbor/internal/mode"
)

// manualTimer records scheduled expiries and fires them on demand.
type manualTimer struct {
	pending   func()
	cancelled bool
}

func (m *manualTimer) start(_ time.Duration, fn func()) func() {
	m.pending = fn
	m.cancelled = false
	return func() { m.cancelled = true }
}

// fire runs the armed expiry, simulating the timeout elapsing.
func (m *manualTimer) fire() {
	if m.pending != nil && !m.cancelled {
		fn := m.pending
		m.pending = nil
		fn()
	}
}

type fixture struct {
	engine *Engine
	modes  *mode.Machine
	timer  *manualTimer
	ran    []string
}

func newFixture(t *testing.T, cmds []*keymap.Command) *fixture {
	t.Helper()
	f := &fixture{modes: mode.NewMachine(), timer: &manualTimer{}}

	registry := keymap.NewRegistry()
	for _, cmd := range cmds {
		cmd := cmd
		inner := cmd.Run
		cmd.Run = func(ctx *keymap.Context) {
			f.ran = append(f.ran, cmd.ID)
			if inner != nil {
				inner(ctx)
			}
		}
		if err := registry.Register(cmd); err != nil {
			t.Fatalf("register %s: %v", cmd.ID, err)
		}
	}

	newContext := func() *keymap.Context {
		return &keymap.Context{Modes: f.modes}
	}
	f.engine = New(registry, f.modes, newContext, WithTimer(f.timer.start))
	return f
}

func (f *fixture) press(r rune) bool {
	return f.engine.HandleKey(key.RuneEvent(r))
}

func TestHandleKeySingle(t *testing.T) {
	t.Run("runs a single-key binding immediately", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "nav.down", Keys: []string{"j"}, Modes: keymap.InNormal},
		})

		if !f.press('j') {
			t.Fatal("expected the key to be consumed")
		}
		if len(f.ran) != 1 || f.ran[0] != "nav.down" {
			t.Errorf("expected nav.down to run, got %v", f.ran)
		}
		if len(f.engine.Pending()) != 0 {
			t.Error("expected an empty buffer after execution")
		}
	})

	t.Run("an unbound key is not consumed", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "nav.down", Keys: []string{"j"}, Modes: keymap.InNormal},
		})

		if f.press('z') {
			t.Error("expected an unbound key to pass through")
		}
		if len(f.ran) != 0 {
			t.Errorf("expected nothing to run, got %v", f.ran)
		}
	})
}

func TestHandleKeySequence(t *testing.T) {
	cmds := func() []*keymap.Command {
		return []*keymap.Command{
			{ID: "node.delete", Keys: []string{"d d"}, Modes: keymap.InNormal},
			{ID: "delete.subtree", Keys: []string{"d t"}, Modes: keymap.InNormal},
		}
	}

	t.Run("completes a two-key sequence within the timeout", func(t *testing.T) {
		f := newFixture(t, cmds())

		if !f.press('d') {
			t.Fatal("expected the prefix key to be consumed")
		}
		if len(f.ran) != 0 {
			t.Fatal("expected nothing to run yet")
		}
		if got := f.engine.Pending().String(); got != "d" {
			t.Errorf("expected pending 'd', got %q", got)
		}

		if !f.press('d') {
			t.Fatal("expected the completing key to be consumed")
		}
		if len(f.ran) != 1 || f.ran[0] != "node.delete" {
			t.Errorf("expected node.delete, got %v", f.ran)
		}
	})

	t.Run("a shared prefix resolves by the second key", func(t *testing.T) {
		f := newFixture(t, cmds())

		f.press('d')
		f.press('t')
		if len(f.ran) != 1 || f.ran[0] != "delete.subtree" {
			t.Errorf("expected delete.subtree, got %v", f.ran)
		}
	})

	t.Run("the timeout discards a partial sequence", func(t *testing.T) {
		f := newFixture(t, cmds())

		f.press('d')
		f.timer.fire()

		if len(f.engine.Pending()) != 0 {
			t.Error("expected the buffer cleared after expiry")
		}

		// The same key after expiry starts a fresh sequence.
		f.press('d')
		f.press('d')
		if len(f.ran) != 1 || f.ran[0] != "node.delete" {
			t.Errorf("expected node.delete after restart, got %v", f.ran)
		}
	})

	t.Run("completion cancels the armed timer", func(t *testing.T) {
		f := newFixture(t, cmds())

		f.press('d')
		f.press('d')
		if !f.timer.cancelled {
			t.Error("expected the timer cancelled on completion")
		}
	})

	t.Run("a non-continuation discards the buffer unconsumed", func(t *testing.T) {
		f := newFixture(t, cmds())

		f.press('d')
		if f.press('z') {
			t.Error("expected the dead-end key to pass through")
		}
		if len(f.engine.Pending()) != 0 {
			t.Error("expected the buffer cleared")
		}
		if len(f.ran) != 0 {
			t.Errorf("expected nothing to run, got %v", f.ran)
		}
	})
}

func TestHandleKeyPrecondition(t *testing.T) {
	t.Run("a failed precondition behaves like an absent binding", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{
				ID:    "node.delete",
				Keys:  []string{"d d"},
				Modes: keymap.InNormal,
				When:  func(*keymap.Context) bool { return false },
			},
		})

		f.press('d')
		if f.press('d') {
			t.Error("expected the completing key to pass through for a gated command")
		}
		if len(f.ran) != 0 {
			t.Errorf("expected nothing to run, got %v", f.ran)
		}
		if len(f.engine.Pending()) != 0 {
			t.Error("expected the buffer cleared")
		}
	})

	t.Run("the precondition is re-evaluated per event", func(t *testing.T) {
		allowed := false
		f := newFixture(t, []*keymap.Command{
			{
				ID:    "app.quit",
				Keys:  []string{"q"},
				Modes: keymap.InNormal,
				When:  func(*keymap.Context) bool { return allowed },
			},
		})

		if f.press('q') {
			t.Error("expected the gated key to pass through")
		}
		allowed = true
		if !f.press('q') {
			t.Error("expected the key consumed once the precondition passes")
		}
	})
}

func TestHandleKeyModes(t *testing.T) {
	t.Run("normal-mode bindings are dead in insert mode", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "nav.down", Keys: []string{"j"}, Modes: keymap.InNormal},
		})
		f.modes.EnterInsert()

		if f.press('j') {
			t.Error("expected the key to pass through in insert mode")
		}
	})

	t.Run("escape works even from an editable surface", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{
				ID:    "mode.normal",
				Keys:  []string{"esc"},
				Modes: keymap.InInsert,
				Run:   func(ctx *keymap.Context) { ctx.Modes.EnterNormal() },
			},
		})
		f.modes.EnterInsert()

		ev := key.SpecialEvent(key.KeyEscape)
		ev.FromEditable = true
		if !f.engine.HandleKey(ev) {
			t.Fatal("expected escape consumed from the editable surface")
		}
		if f.modes.Current() != mode.Normal {
			t.Error("expected a transition to normal mode")
		}
	})

	t.Run("non-escape keys from an editable surface are suppressed", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "nav.down", Keys: []string{"j"}, Modes: keymap.InAll},
		})
		f.modes.EnterInsert()

		ev := key.RuneEvent('j')
		ev.FromEditable = true
		if f.engine.HandleKey(ev) {
			t.Error("expected the key left to the editor")
		}
		if len(f.ran) != 0 {
			t.Errorf("expected nothing to run, got %v", f.ran)
		}
	})
}

func TestHandleKeyChords(t *testing.T) {
	t.Run("a chord bypasses the pending buffer", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "node.delete", Keys: []string{"d d"}, Modes: keymap.InNormal},
			{ID: "palette.open", Chord: "ctrl+p", Modes: keymap.InAll},
		})

		f.press('d')
		ev := key.Event{Key: key.KeyRune, Rune: 'p', Mod: key.ModCtrl}
		if !f.engine.HandleKey(ev) {
			t.Fatal("expected the chord consumed")
		}
		if len(f.ran) != 1 || f.ran[0] != "palette.open" {
			t.Errorf("expected palette.open, got %v", f.ran)
		}
		if len(f.engine.Pending()) != 0 {
			t.Error("expected the pending buffer discarded by the chord")
		}
	})

	t.Run("chords fire in insert mode when registered for all modes", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "palette.open", Chord: "ctrl+p", Modes: keymap.InAll},
		})
		f.modes.EnterInsert()

		ev := key.Event{Key: key.KeyRune, Rune: 'p', Mod: key.ModCtrl}
		if !f.engine.HandleKey(ev) {
			t.Error("expected the chord consumed in insert mode")
		}
	})
}

func TestReset(t *testing.T) {
	t.Run("discards the pending buffer and timer", func(t *testing.T) {
		f := newFixture(t, []*keymap.Command{
			{ID: "node.delete", Keys: []string{"d d"}, Modes: keymap.InNormal},
		})

		f.press('d')
		f.engine.Reset()

		if len(f.engine.Pending()) != 0 {
			t.Error("expected an empty buffer after reset")
		}
		if !f.timer.cancelled {
			t.Error("expected the armed timer cancelled")
		}
	})
}
