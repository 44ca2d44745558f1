// Package keymap holds the command registry: immutable command
// descriptors with their key bindings, mode applicability, and
// precondition predicates. Both the sequence engine and the command
// palette dispatch through this table, so command behavior lives in
// exactly one place.
package keymap

import (
	"context"

	"arbor/internal/application"
	"arbor/internal/mode"
	"arbor/internal/ports"
)

// Modes is the set of editor modes a command is reachable in.
type Modes uint8

const (
	InNormal Modes = 1 << iota
	InInsert

	InAll = InNormal | InInsert
)

// Contains reports whether the set includes the given mode.
func (m Modes) Contains(target mode.Mode) bool {
	switch target {
	case mode.Normal:
		return m&InNormal != 0
	case mode.Insert:
		return m&InInsert != 0
	default:
		return false
	}
}

// Context is the snapshot a command effect runs against. It is built
// fresh per key event and carries the dependency objects explicitly —
// no ambient globals — so the engine is unit-testable with a fake
// context.
type Context struct {
	Ctx     context.Context
	Session *application.Session
	Modes   *mode.Machine
	Hooks   *ports.ViewHooks

	Clipboard ports.Clipboard

	// UI triggers registered by the shell. Any of these may be nil; a
	// nil trigger is a safe no-op.
	OpenPalette func()
	OpenSearch  func()
	OpenHelp    func()
	Dismiss     func()
	CommitEdit  func()
	Quit        func()
}

// call invokes an optional UI trigger.
func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Command is an immutable descriptor: identity, bindings, the modes it
// is reachable in, an optional precondition, and the effect. The full
// set is rebuilt fresh per session.
type Command struct {
	ID          string
	Title       string
	Description string

	// Keys are buffered key-sequence bindings, e.g. "d d".
	Keys []string

	// Chord is an optional always-on binding checked before sequence
	// buffering, e.g. "mod+p". Chords bypass the pending buffer.
	Chord string

	// Category groups commands in the palette and help view.
	Category string

	Modes Modes

	// When gates execution. A command whose precondition fails is
	// treated as absent for matching purposes.
	When func(*Context) bool

	Run func(*Context)
}

// Runnable reports whether the command's precondition passes (a nil
// precondition always passes).
func (c *Command) Runnable(ctx *Context) bool {
	return c.When == nil || c.When(ctx)
}
