// Package clipboard writes to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"arbor/internal/ports"
)

// System uses the platform clipboard.
type System struct{}

var _ ports.Clipboard = (*System)(nil)

// New creates a system clipboard adapter.
func New() *System {
	return &System{}
}

// Copy writes text to the clipboard.
func (*System) Copy(text string) error {
	return clipboard.WriteAll(text)
}
