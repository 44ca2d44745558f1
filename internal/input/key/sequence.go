package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered series of key events identifying a command,
// e.g. the two-key sequence "d d".
type Sequence []Event

// Equal reports whether two sequences match event for event.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, e := range s {
		if !e.Matches(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, e := range prefix {
		if !e.Matches(s[i]) {
			return false
		}
	}
	return true
}

// String returns the space-joined event names, e.g. "d d" or "ctrl+p".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// ParseSequence parses a binding string into a sequence. Tokens are
// space separated; each token is a single character, a named special
// key ("esc", "enter", "up"), or a modifier chord ("ctrl+c", "mod+p"
// where "mod" is the platform primary modifier). A token of multiple
// plain characters, such as "dd", expands to one event per character.
func ParseSequence(binding string) (Sequence, error) {
	fields := strings.Fields(binding)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key binding")
	}

	var seq Sequence
	for _, token := range fields {
		events, err := parseToken(token)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", binding, err)
		}
		seq = append(seq, events...)
	}
	return seq, nil
}

// MustParseSequence parses a known-valid binding and panics otherwise.
// For use in default binding tables only.
func MustParseSequence(binding string) Sequence {
	seq, err := ParseSequence(binding)
	if err != nil {
		panic(err)
	}
	return seq
}

func parseToken(token string) ([]Event, error) {
	if !strings.Contains(token, "+") {
		return parseBare(token)
	}

	parts := strings.Split(token, "+")
	var mod Mod
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl":
			mod |= ModCtrl
		case "alt":
			mod |= ModAlt
		case "shift":
			mod |= ModShift
		case "meta", "cmd":
			mod |= ModMeta
		case "mod":
			mod |= Primary()
		default:
			return nil, fmt.Errorf("unknown modifier %q", p)
		}
	}

	last := parts[len(parts)-1]
	if last == "" {
		// Allow chords on the plus character itself ("mod+").
		return []Event{{Key: KeyRune, Rune: '+', Mod: mod}}, nil
	}
	events, err := parseBare(last)
	if err != nil {
		return nil, err
	}
	if len(events) != 1 {
		return nil, fmt.Errorf("chord %q must end in a single key", token)
	}
	events[0].Mod = mod
	return events, nil
}

func parseBare(token string) ([]Event, error) {
	if k := FromName(token); k != KeyNone {
		return []Event{SpecialEvent(k)}, nil
	}
	runes := []rune(token)
	events := make([]Event, len(runes))
	for i, r := range runes {
		events[i] = RuneEvent(r)
	}
	return events, nil
}
