package keymap

import (
	"testing"

	"arbor/internal/input/key"
	"arbor/internal/mode"
)

func TestRegister(t *testing.T) {
	t.Run("rejects a duplicate id", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(&Command{ID: "x", Keys: []string{"a"}, Modes: InNormal}); err != nil {
			t.Fatalf("first register failed: %v", err)
		}
		if err := r.Register(&Command{ID: "x", Keys: []string{"b"}, Modes: InNormal}); err == nil {
			t.Error("expected an error for a duplicate id")
		}
	})

	t.Run("rejects a missing id", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(&Command{Keys: []string{"a"}}); err == nil {
			t.Error("expected an error for a missing id")
		}
	})

	t.Run("rejects a multi-key chord", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register(&Command{ID: "x", Chord: "d d", Modes: InNormal})
		if err == nil {
			t.Error("expected an error for a multi-key chord")
		}
	})
}

func TestFindExact(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll([]*Command{
		{ID: "nav.down", Keys: []string{"j"}, Modes: InNormal},
		{ID: "node.delete", Keys: []string{"d d"}, Modes: InNormal},
		{ID: "mode.normal", Keys: []string{"esc"}, Modes: InInsert},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("matches a full sequence in its mode", func(t *testing.T) {
		cmd := r.FindExact(key.MustParseSequence("d d"), mode.Normal)
		if cmd == nil || cmd.ID != "node.delete" {
			t.Errorf("expected node.delete, got %v", cmd)
		}
	})

	t.Run("does not match a partial sequence", func(t *testing.T) {
		if cmd := r.FindExact(key.MustParseSequence("d"), mode.Normal); cmd != nil {
			t.Errorf("expected no match for a prefix, got %s", cmd.ID)
		}
	})

	t.Run("mode gates the binding", func(t *testing.T) {
		if cmd := r.FindExact(key.MustParseSequence("j"), mode.Insert); cmd != nil {
			t.Errorf("expected no match outside the binding's mode, got %s", cmd.ID)
		}
		cmd := r.FindExact(key.MustParseSequence("esc"), mode.Insert)
		if cmd == nil || cmd.ID != "mode.normal" {
			t.Errorf("expected mode.normal, got %v", cmd)
		}
	})
}

func TestHasPrefix(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll([]*Command{
		{ID: "node.delete", Keys: []string{"d d"}, Modes: InNormal},
		{ID: "nav.down", Keys: []string{"j"}, Modes: InNormal},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("true for a strict prefix of a longer binding", func(t *testing.T) {
		if !r.HasPrefix(key.MustParseSequence("d"), mode.Normal) {
			t.Error("expected 'd' to be a live prefix")
		}
	})

	t.Run("false for a complete binding with no longer sibling", func(t *testing.T) {
		if r.HasPrefix(key.MustParseSequence("j"), mode.Normal) {
			t.Error("expected 'j' not to be a prefix")
		}
	})

	t.Run("false in a mode where the binding is unreachable", func(t *testing.T) {
		if r.HasPrefix(key.MustParseSequence("d"), mode.Insert) {
			t.Error("expected no prefix in insert mode")
		}
	})
}

func TestFindChord(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll([]*Command{
		{ID: "palette.open", Chord: "ctrl+p", Modes: InAll},
		{ID: "view.pan-left", Chord: "left", Modes: InNormal},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("matches a modifier chord in any mode", func(t *testing.T) {
		ev := key.Event{Key: key.KeyRune, Rune: 'p', Mod: key.ModCtrl}
		for _, m := range []mode.Mode{mode.Normal, mode.Insert} {
			cmd := r.FindChord(ev, m)
			if cmd == nil || cmd.ID != "palette.open" {
				t.Errorf("expected palette.open in %s, got %v", m, cmd)
			}
		}
	})

	t.Run("mode-gated chords vanish outside their mode", func(t *testing.T) {
		ev := key.SpecialEvent(key.KeyLeft)
		if cmd := r.FindChord(ev, mode.Normal); cmd == nil {
			t.Error("expected pan chord in normal mode")
		}
		if cmd := r.FindChord(ev, mode.Insert); cmd != nil {
			t.Errorf("expected no pan chord in insert mode, got %s", cmd.ID)
		}
	})

	t.Run("a plain key is not a chord", func(t *testing.T) {
		if cmd := r.FindChord(key.RuneEvent('p'), mode.Normal); cmd != nil {
			t.Errorf("expected no match without the modifier, got %s", cmd.ID)
		}
	})
}

func TestCommandsForMode(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll([]*Command{
		{ID: "a", Keys: []string{"a"}, Modes: InNormal},
		{ID: "b", Keys: []string{"b"}, Modes: InAll},
		{ID: "c", Keys: []string{"c"}, Modes: InInsert},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	normal := r.CommandsForMode(mode.Normal)
	if len(normal) != 2 {
		t.Errorf("expected 2 normal-mode commands, got %d", len(normal))
	}
	insert := r.CommandsForMode(mode.Insert)
	if len(insert) != 2 {
		t.Errorf("expected 2 insert-mode commands, got %d", len(insert))
	}
}
