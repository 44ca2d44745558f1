package key

// Event is one key press as delivered by the keyboard surface. The
// caller translates platform events into this shape; FromEditable marks
// events originating inside a text-editing surface, which the sequence
// engine must not interpret (except for escape).
type Event struct {
	Key          Key
	Rune         rune
	Mod          Mod
	FromEditable bool
}

// RuneEvent builds an unmodified character event.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// SpecialEvent builds an event for a named key.
func SpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsEscape reports whether this is the escape key, regardless of
// modifiers or origin.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// Matches compares key identity and modifiers, ignoring origin.
func (e Event) Matches(other Event) bool {
	if e.Key != other.Key || e.Mod != other.Mod {
		return false
	}
	if e.Key == KeyRune {
		return e.Rune == other.Rune
	}
	return true
}

// String returns a canonical representation such as "a", "esc" or
// "ctrl+p".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if mods := e.Mod.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
