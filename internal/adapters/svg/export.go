// Package svg renders a computed layout as an SVG document. It is a
// thin consumer of the layout engine: all geometry comes from the
// layout result, none is computed here.
package svg

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"arbor/internal/domain"
	"arbor/internal/layout"
)

// Write renders the node collection to w.
func Write(w io.Writer, nodes []domain.Node) error {
	res := layout.Compute(nodes)

	byID := make(map[string]domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.0f %.0f %.0f %.0f">`+"\n",
		res.Bounds.MinX, res.Bounds.MinY, res.Bounds.Width(), res.Bounds.Height())

	for _, e := range res.Edges {
		// Cubic curve between the parent's right-center and the
		// child's left-center.
		midX := (e.FromX + e.ToX) / 2
		fmt.Fprintf(&sb,
			`  <path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="#888" stroke-width="1.5"/>`+"\n",
			e.FromX, e.FromY, midX, e.FromY, midX, e.ToY, e.ToX, e.ToY)
	}

	for id, box := range res.Nodes {
		fmt.Fprintf(&sb,
			`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="#fff" stroke="#444"/>`+"\n",
			box.X, box.Y, box.Width, box.Height)
		fmt.Fprintf(&sb,
			`  <text x="%.1f" y="%.1f" font-family="monospace" font-size="13" dominant-baseline="middle">%s</text>`+"\n",
			box.X+layout.BoxPadX, box.Y+box.Height/2, html.EscapeString(byID[id].Content))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFile renders the node collection to a file at path.
func WriteFile(path string, nodes []domain.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, nodes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
