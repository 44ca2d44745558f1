package keymap

import (
	"fmt"

	"arbor/internal/input/key"
	"arbor/internal/mode"
)

type parsedBinding struct {
	seq key.Sequence
	cmd *Command
}

type chordBinding struct {
	event key.Event
	cmd   *Command
}

// Registry indexes commands by id, parsed key sequence, and chord.
// Bindings are parsed once at registration; lookups never re-parse.
type Registry struct {
	commands []*Command
	byID     map[string]*Command
	bindings []parsedBinding
	chords   []chordBinding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Command)}
}

// Register adds a command, parsing its bindings. Duplicate ids and
// unparseable bindings are registration errors.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.ID == "" {
		return fmt.Errorf("command must have an id")
	}
	if _, exists := r.byID[cmd.ID]; exists {
		return fmt.Errorf("duplicate command id %q", cmd.ID)
	}

	var parsed []parsedBinding
	for _, binding := range cmd.Keys {
		seq, err := key.ParseSequence(binding)
		if err != nil {
			return fmt.Errorf("command %s: %w", cmd.ID, err)
		}
		parsed = append(parsed, parsedBinding{seq: seq, cmd: cmd})
	}

	var chord *chordBinding
	if cmd.Chord != "" {
		seq, err := key.ParseSequence(cmd.Chord)
		if err != nil {
			return fmt.Errorf("command %s chord: %w", cmd.ID, err)
		}
		if len(seq) != 1 {
			return fmt.Errorf("command %s: chord %q must be a single key", cmd.ID, cmd.Chord)
		}
		chord = &chordBinding{event: seq[0], cmd: cmd}
	}

	r.commands = append(r.commands, cmd)
	r.byID[cmd.ID] = cmd
	r.bindings = append(r.bindings, parsed...)
	if chord != nil {
		r.chords = append(r.chords, *chord)
	}
	return nil
}

// RegisterAll adds multiple commands, stopping at the first error.
func (r *Registry) RegisterAll(cmds []*Command) error {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a command by id, or nil.
func (r *Registry) Get(id string) *Command {
	return r.byID[id]
}

// Commands returns all commands in registration order.
func (r *Registry) Commands() []*Command {
	return r.commands
}

// CommandsForMode returns the commands reachable in the given mode, in
// registration order.
func (r *Registry) CommandsForMode(m mode.Mode) []*Command {
	var out []*Command
	for _, cmd := range r.commands {
		if cmd.Modes.Contains(m) {
			out = append(out, cmd)
		}
	}
	return out
}

// FindExact returns the command whose binding set contains exactly seq
// and whose modes include m, or nil. Bindings are expected to be
// non-overlapping within a mode; the first match wins.
func (r *Registry) FindExact(seq key.Sequence, m mode.Mode) *Command {
	for _, b := range r.bindings {
		if b.cmd.Modes.Contains(m) && b.seq.Equal(seq) {
			return b.cmd
		}
	}
	return nil
}

// HasPrefix reports whether any binding reachable in mode m starts with
// seq but is strictly longer — i.e. whether waiting for more input
// could still produce a match.
func (r *Registry) HasPrefix(seq key.Sequence, m mode.Mode) bool {
	for _, b := range r.bindings {
		if b.cmd.Modes.Contains(m) && len(b.seq) > len(seq) && b.seq.HasPrefix(seq) {
			return true
		}
	}
	return false
}

// FindChord returns the command bound to the given event as an
// always-on chord in mode m, or nil.
func (r *Registry) FindChord(ev key.Event, m mode.Mode) *Command {
	for _, c := range r.chords {
		if c.cmd.Modes.Contains(m) && c.event.Matches(ev) {
			return c.cmd
		}
	}
	return nil
}
