// Package engine resolves raw key events into command executions. It
// is the single dispatch point for keyboard input: a stateful,
// timeout-bounded sequence matcher that disambiguates single-key,
// multi-key, and chorded bindings across modes.
package engine

import (
	"sync"
	"time"

	"arbor/internal/input/key"
	"arbor/internal/input/keymap"
	"arbor/internal/mode"
)

// DefaultTimeout is the maximum gap allowed between keys of a
// multi-key sequence before the pending buffer is discarded.
const DefaultTimeout = 750 * time.Millisecond

// TimerFunc schedules fn after d and returns a cancel function. The
// default implementation wraps time.AfterFunc; tests inject a manual
// one to drive expiry deterministically.
type TimerFunc func(d time.Duration, fn func()) (cancel func())

func defaultTimer(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Engine consumes one key event at a time. It is idle when the pending
// buffer is empty and buffering otherwise; at most one expiry timer is
// live at any moment.
type Engine struct {
	registry *keymap.Registry
	modes    *mode.Machine

	// newContext captures a fresh context snapshot per event; command
	// preconditions and effects always see current state.
	newContext func() *keymap.Context

	timeout    time.Duration
	startTimer TimerFunc

	mu          sync.Mutex
	buffer      key.Sequence
	cancelTimer func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides the sequence buffer timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithTimer overrides timer scheduling, for tests.
func WithTimer(fn TimerFunc) Option {
	return func(e *Engine) { e.startTimer = fn }
}

// New creates an engine. newContext must return a context bound to the
// live session, mode machine, and view hooks.
func New(registry *keymap.Registry, modes *mode.Machine, newContext func() *keymap.Context, opts ...Option) *Engine {
	e := &Engine{
		registry:   registry,
		modes:      modes,
		newContext: newContext,
		timeout:    DefaultTimeout,
		startTimer: defaultTimer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pending returns the current buffered sequence, for status display.
func (e *Engine) Pending() key.Sequence {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(key.Sequence, len(e.buffer))
	copy(out, e.buffer)
	return out
}

// HandleKey processes one key event and reports whether it was
// consumed. The caller suppresses default behavior for consumed
// events. The engine itself never panics: a command that matches
// nothing is simply "not handled".
func (e *Engine) HandleKey(ev key.Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.modes.Current()
	ctx := e.newContext()

	// Escape is always-on: it must work even while a text editor has
	// focus, because leaving insert mode has to stay reachable. Checked
	// before any focus-based suppression.
	if ev.IsEscape() {
		if cmd := e.registry.FindExact(key.Sequence{ev}, current); cmd != nil && cmd.Runnable(ctx) {
			e.resetLocked()
			cmd.Run(ctx)
			return true
		}
	}

	// Keys typed into an editable surface belong to the editor, not to
	// the command layer. Buffer state is left untouched.
	if ev.FromEditable {
		return false
	}

	// Always-on chords (primary-modifier shortcuts, and plain arrows in
	// normal mode) bypass the pending buffer entirely.
	if cmd := e.registry.FindChord(ev, current); cmd != nil && cmd.Runnable(ctx) {
		e.resetLocked()
		cmd.Run(ctx)
		return true
	}

	// Sequence buffering. Starting a new step cancels any armed timer;
	// only one may be live at a time.
	e.stopTimerLocked()
	e.buffer = append(e.buffer, ev)

	if cmd := e.registry.FindExact(e.buffer, current); cmd != nil && cmd.Runnable(ctx) {
		e.buffer = nil
		cmd.Run(ctx)
		return true
	}

	if e.registry.HasPrefix(e.buffer, current) {
		// Wait for more input; consume the event without executing.
		e.cancelTimer = e.startTimer(e.timeout, e.expire)
		return true
	}

	// Nothing can match this buffer in either sense: discard it and
	// leave the key for default handling.
	e.buffer = nil
	return false
}

// Reset discards the pending buffer and any armed timer.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.stopTimerLocked()
	e.buffer = nil
}

func (e *Engine) stopTimerLocked() {
	if e.cancelTimer != nil {
		e.cancelTimer()
		e.cancelTimer = nil
	}
}

// expire is the timer callback: the gap between keys exceeded the
// timeout, so the partial sequence is discarded.
func (e *Engine) expire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer = nil
	e.cancelTimer = nil
}
