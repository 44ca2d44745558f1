// Package palette implements the command palette: a searchable list of
// the commands reachable in the current mode. It executes through the
// same descriptors the sequence engine dispatches, so no command logic
// is duplicated between the two call sites.
package palette

import (
	"github.com/sahilm/fuzzy"

	"arbor/internal/input/keymap"
)

// Item is one filtered palette row.
type Item struct {
	Command *keymap.Command
	Score   int
	// MatchedIndexes are the rune positions in the title that matched
	// the query, for highlighting.
	MatchedIndexes []int
}

// Palette holds the overlay's local query and cursor state. Closing
// resets that local state but cancels nothing else.
type Palette struct {
	registry *keymap.Registry

	open   bool
	query  string
	items  []Item
	cursor int
}

// New creates a palette over the command registry.
func New(registry *keymap.Registry) *Palette {
	return &Palette{registry: registry}
}

// IsOpen reports whether the overlay is visible.
func (p *Palette) IsOpen() bool {
	return p.open
}

// Query returns the current filter text.
func (p *Palette) Query() string {
	return p.query
}

// Items returns the filtered rows, best match first.
func (p *Palette) Items() []Item {
	return p.items
}

// Cursor returns the index of the highlighted row.
func (p *Palette) Cursor() int {
	return p.cursor
}

// Open shows the palette with an empty query. The empty query lists
// every eligible command (the palette's empty-query convention).
func (p *Palette) Open(ctx *keymap.Context) {
	p.open = true
	p.query = ""
	p.cursor = 0
	p.refresh(ctx)
}

// Close hides the palette and resets its local query and cursor.
func (p *Palette) Close() {
	p.open = false
	p.query = ""
	p.items = nil
	p.cursor = 0
}

// SetQuery updates the filter and re-ranks.
func (p *Palette) SetQuery(query string, ctx *keymap.Context) {
	p.query = query
	p.cursor = 0
	p.refresh(ctx)
}

// Move shifts the highlighted row by delta, clamped to the list.
func (p *Palette) Move(delta int) {
	if len(p.items) == 0 {
		p.cursor = 0
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.items) {
		p.cursor = len(p.items) - 1
	}
}

// Execute runs the highlighted command against the given context and
// closes the palette. Returns false if nothing was selected.
func (p *Palette) Execute(ctx *keymap.Context) bool {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return false
	}
	cmd := p.items[p.cursor].Command
	p.Close()
	cmd.Run(ctx)
	return true
}

type commandSource []*keymap.Command

func (s commandSource) String(i int) string { return s[i].Title }
func (s commandSource) Len() int            { return len(s) }

// refresh rebuilds the row list: commands reachable in the current
// mode whose preconditions pass, ranked by fuzzy title match.
func (p *Palette) refresh(ctx *keymap.Context) {
	var eligible []*keymap.Command
	for _, cmd := range p.registry.CommandsForMode(ctx.Modes.Current()) {
		if cmd.Runnable(ctx) {
			eligible = append(eligible, cmd)
		}
	}

	if p.query == "" {
		p.items = make([]Item, len(eligible))
		for i, cmd := range eligible {
			p.items[i] = Item{Command: cmd}
		}
		return
	}

	matches := fuzzy.FindFrom(p.query, commandSource(eligible))
	p.items = make([]Item, len(matches))
	for i, m := range matches {
		p.items[i] = Item{
			Command:        eligible[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
}
