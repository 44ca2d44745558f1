package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/input/key"
)

// translateKey converts a bubbletea key message into the engine's
// event shape. fromEditable marks events that originated while the
// inline text editor had focus.
func translateKey(msg tea.KeyMsg, fromEditable bool) key.Event {
	ev := key.Event{FromEditable: fromEditable}

	switch msg.Type {
	case tea.KeyEsc:
		ev.Key = key.KeyEscape
	case tea.KeyEnter:
		ev.Key = key.KeyEnter
	case tea.KeyTab:
		ev.Key = key.KeyTab
	case tea.KeyBackspace:
		ev.Key = key.KeyBackspace
	case tea.KeyDelete:
		ev.Key = key.KeyDelete
	case tea.KeySpace:
		ev.Key = key.KeySpace
	case tea.KeyUp:
		ev.Key = key.KeyUp
	case tea.KeyDown:
		ev.Key = key.KeyDown
	case tea.KeyLeft:
		ev.Key = key.KeyLeft
	case tea.KeyRight:
		ev.Key = key.KeyRight
	case tea.KeyHome:
		ev.Key = key.KeyHome
	case tea.KeyEnd:
		ev.Key = key.KeyEnd
	case tea.KeyPgUp:
		ev.Key = key.KeyPageUp
	case tea.KeyPgDown:
		ev.Key = key.KeyPageDown
	case tea.KeyRunes:
		ev.Key = key.KeyRune
		if len(msg.Runes) > 0 {
			ev.Rune = msg.Runes[0]
		}
	default:
		// Terminals deliver ctrl+letter as a control code; bubbletea
		// exposes those as distinct key types in the ctrl range.
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			ev.Key = key.KeyRune
			ev.Rune = rune('a' + int(msg.Type-tea.KeyCtrlA))
			ev.Mod |= key.ModCtrl
		}
	}

	if msg.Alt {
		ev.Mod |= key.ModAlt
	}
	return ev
}
