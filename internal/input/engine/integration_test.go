package engine

import (
	"context"
	"testing"
	"time"

	"arbor/internal/adapters/memory"
	"arbor/internal/application"
	"arbor/internal/input/key"
	"arbor/internal/input/keymap"
	"arbor/internal/mode"
	"arbor/internal/ports"
)

// editorSim drives the full default command set against a live session,
// standing in for the TUI shell: it tracks the text "typed" into the
// editor and commits it when insert mode exits.
type editorSim struct {
	engine  *Engine
	session *application.Session
	modes   *mode.Machine
	timer   *manualTimer
	ctx     context.Context

	editorText string
	quit       bool
}

func newEditorSim(t *testing.T) *editorSim {
	t.Helper()
	sim := &editorSim{
		modes: mode.NewMachine(),
		timer: &manualTimer{},
		ctx:   context.Background(),
	}

	svc := application.NewTreeService(memory.NewStore())
	sim.session = application.NewSession(svc, nil, application.Options{DiscardEmptyNodes: true})
	if err := sim.session.EnsureRoot(sim.ctx, "root"); err != nil {
		t.Fatalf("ensure root: %v", err)
	}

	registry := keymap.NewRegistry()
	if err := registry.RegisterAll(keymap.DefaultCommands()); err != nil {
		t.Fatalf("register defaults: %v", err)
	}

	newContext := func() *keymap.Context {
		return &keymap.Context{
			Ctx:     sim.ctx,
			Session: sim.session,
			Modes:   sim.modes,
			Hooks:   &ports.ViewHooks{},
			CommitEdit: func() {
				sim.session.FinishEdit(sim.ctx, sim.editorText)
				sim.editorText = ""
			},
			Quit: func() { sim.quit = true },
		}
	}
	sim.engine = New(registry, sim.modes, newContext, WithTimer(sim.timer.start))
	return sim
}

// press feeds one key. In insert mode unconsumed runes go to the
// simulated editor, as the shell would route them.
func (s *editorSim) press(ev key.Event) {
	if s.modes.Current() == mode.Insert {
		ev.FromEditable = true
	}
	if s.engine.HandleKey(ev) {
		return
	}
	if s.modes.Current() == mode.Insert && ev.Key == key.KeyRune {
		s.editorText += string(ev.Rune)
	}
}

func (s *editorSim) typeString(text string) {
	for _, r := range text {
		s.press(key.RuneEvent(r))
	}
}

func TestEditingRoundTrip(t *testing.T) {
	t.Run("add a child, type its content, commit with escape", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		if sim.modes.Current() != mode.Insert {
			t.Fatal("expected insert mode after adding a child")
		}

		sim.typeString("idea")
		if sim.editorText != "idea" {
			t.Fatalf("expected typed text buffered, got %q", sim.editorText)
		}

		sim.press(key.SpecialEvent(key.KeyEscape))
		if sim.modes.Current() != mode.Normal {
			t.Fatal("expected normal mode after escape")
		}

		node := sim.session.SelectedNode(sim.ctx)
		if node == nil || node.Content != "idea" {
			t.Errorf("expected the child committed with content idea, got %v", node)
		}
	})

	t.Run("an abandoned empty child is discarded on escape", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		sim.press(key.SpecialEvent(key.KeyEscape))

		if !sim.session.SelectionIsRoot(sim.ctx) {
			t.Error("expected the selection back on the root")
		}
		if id := sim.session.Tree().FirstChildID(sim.ctx, sim.session.Selection()); id != "" {
			t.Error("expected the empty child discarded")
		}
	})

	t.Run("command keys typed in insert mode become text, not commands", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		sim.typeString("add jj")
		sim.press(key.SpecialEvent(key.KeyEscape))

		node := sim.session.SelectedNode(sim.ctx)
		if node == nil || node.Content != "add jj" {
			t.Errorf("expected literal text preserved, got %v", node)
		}
	})
}

func TestDeleteRoundTrip(t *testing.T) {
	t.Run("dd deletes the committed node and repairs the selection", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		sim.typeString("doomed")
		sim.press(key.SpecialEvent(key.KeyEscape))

		sim.press(key.RuneEvent('d'))
		sim.press(key.RuneEvent('d'))

		if !sim.session.SelectionIsRoot(sim.ctx) {
			t.Error("expected the selection back on the root")
		}
		if sim.session.Tree().FirstChildID(sim.ctx, sim.session.Selection()) != "" {
			t.Error("expected the node deleted")
		}
	})

	t.Run("an expired delete prefix leaves the node alone", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		sim.typeString("survivor")
		sim.press(key.SpecialEvent(key.KeyEscape))

		sim.press(key.RuneEvent('d'))
		sim.timer.fire()
		sim.press(key.RuneEvent('d'))
		sim.timer.fire()

		node := sim.session.SelectedNode(sim.ctx)
		if node == nil || node.Content != "survivor" {
			t.Errorf("expected the node untouched, got %v", node)
		}
	})

	t.Run("dd on the root is gated off", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('d'))
		sim.press(key.RuneEvent('d'))

		if !sim.session.Tree().HasNodes(sim.ctx) {
			t.Error("expected the root to survive")
		}
	})
}

func TestNavigationRoundTrip(t *testing.T) {
	t.Run("gg returns to the root from a deep selection", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('a'))
		sim.typeString("child")
		sim.press(key.SpecialEvent(key.KeyEscape))
		sim.press(key.RuneEvent('a'))
		sim.typeString("grandchild")
		sim.press(key.SpecialEvent(key.KeyEscape))

		sim.press(key.RuneEvent('g'))
		sim.press(key.RuneEvent('g'))

		if !sim.session.SelectionIsRoot(sim.ctx) {
			t.Error("expected the root selected after gg")
		}
	})

	t.Run("sibling creation keys are dead on the root", func(t *testing.T) {
		sim := newEditorSim(t)

		sim.press(key.RuneEvent('o'))

		if sim.modes.Current() != mode.Normal {
			t.Error("expected no mode change for a gated command")
		}
		if sim.session.Tree().FirstChildID(sim.ctx, sim.session.Selection()) != "" {
			t.Error("expected no node created")
		}
	})
}

func TestQuit(t *testing.T) {
	sim := newEditorSim(t)

	sim.press(key.RuneEvent('q'))

	if !sim.quit {
		t.Error("expected the quit trigger invoked")
	}
}

// Guards against the engine default changing silently; the shell relies
// on sub-second expiry for pending-sequence feedback.
func TestDefaultTimeout(t *testing.T) {
	if DefaultTimeout != 750*time.Millisecond {
		t.Errorf("expected 750ms, got %v", DefaultTimeout)
	}
}
