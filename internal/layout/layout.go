// Package layout positions mind-map nodes and edges. Compute is a pure
// function of the node collection: same input, same output, no hidden
// state. Units are abstract pixels consumed by the SVG exporter and the
// viewport.
package layout

import (
	"strings"

	"arbor/internal/domain"
)

// Geometry constants. Box width derives from a fixed character-width
// estimate; height from the wrapped line count.
const (
	CharWidth  = 8.0
	LineHeight = 20.0
	BoxPadX    = 10.0
	BoxPadY    = 8.0
	MinWidth   = 60.0
	MaxWidth   = 240.0
	HGap       = 48.0
	VGap       = 14.0
	Padding    = 32.0
)

// Box is a node's computed position and size. Position is the top-left
// corner.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Edge connects a parent box to a child box. The control points sit at
// the parent's right-center and the child's left-center; the renderer
// draws a smooth curve between them.
type Edge struct {
	FromID, ToID string
	FromX, FromY float64
	ToX, ToY     float64
}

// Bounds is the bounding box of the whole drawing, padded
// symmetrically.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Result maps every node id to its box, lists parent-child edges, and
// carries the overall bounds. Recomputed from scratch on every tree
// change, never persisted.
type Result struct {
	Nodes  map[string]Box
	Edges  []Edge
	Bounds Bounds
}

type treeIndex struct {
	byID     map[string]domain.Node
	children map[string][]domain.Node
	extents  map[string]float64
}

// Compute lays out the node collection. Empty input or a collection
// without a root yields an empty result with zero bounds.
func Compute(nodes []domain.Node) Result {
	res := Result{Nodes: make(map[string]Box)}

	root, ok := domain.FindRoot(nodes)
	if !ok {
		return res
	}

	idx := &treeIndex{
		byID:     make(map[string]domain.Node, len(nodes)),
		children: make(map[string][]domain.Node),
		extents:  make(map[string]float64, len(nodes)),
	}
	for _, n := range nodes {
		idx.byID[n.ID] = n
	}
	for _, n := range nodes {
		if !n.IsRoot() {
			if _, ok := idx.byID[n.ParentID]; ok {
				idx.children[n.ParentID] = append(idx.children[n.ParentID], n)
			}
		}
	}
	for pid := range idx.children {
		domain.SortByOrder(idx.children[pid])
	}

	measureExtent(idx, root.ID)

	b := &Bounds{MinX: Padding, MinY: Padding, MaxX: Padding, MaxY: Padding}
	place(idx, &res, b, root, Padding, Padding+(idx.extents[root.ID]-boxSize(root.Content).Height)/2)

	b.MinX -= Padding
	b.MinY -= Padding
	b.MaxX += Padding
	b.MaxY += Padding
	res.Bounds = *b
	return res
}

// boxSize computes a node's rendered box from its text alone.
func boxSize(content string) Box {
	charsPerLine := float64(MaxWidth-2*BoxPadX) / CharWidth
	lines := wrapLines(content, int(charsPerLine))
	width := 0.0
	for _, line := range lines {
		if w := float64(len([]rune(line))) * CharWidth; w > width {
			width = w
		}
	}
	width += 2 * BoxPadX
	if width < MinWidth {
		width = MinWidth
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	height := float64(len(lines))*LineHeight + 2*BoxPadY
	return Box{Width: width, Height: height}
}

// measureExtent computes each subtree's total vertical extent: the sum
// of the children's extents plus inter-child spacing, or the node's own
// box height for a leaf (and for a node wider than its children).
func measureExtent(idx *treeIndex, id string) float64 {
	node := idx.byID[id]
	own := boxSize(node.Content).Height

	children := idx.children[id]
	if len(children) == 0 {
		idx.extents[id] = own
		return own
	}

	total := 0.0
	for i, child := range children {
		if i > 0 {
			total += VGap
		}
		total += measureExtent(idx, child.ID)
	}
	if own > total {
		total = own
	}
	idx.extents[id] = total
	return total
}

// place positions a node at (x, y) and lays out its children's
// subtrees, centered vertically around the node's midpoint, with a
// running offset across siblings.
func place(idx *treeIndex, res *Result, b *Bounds, node domain.Node, x, y float64) {
	box := boxSize(node.Content)
	box.X = x
	box.Y = y
	res.Nodes[node.ID] = box

	if x+box.Width > b.MaxX {
		b.MaxX = x + box.Width
	}
	if y+box.Height > b.MaxY {
		b.MaxY = y + box.Height
	}
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}

	children := idx.children[node.ID]
	if len(children) == 0 {
		return
	}

	childX := x + box.Width + HGap
	total := 0.0
	for i, child := range children {
		if i > 0 {
			total += VGap
		}
		total += idx.extents[child.ID]
	}

	midY := y + box.Height/2
	offset := midY - total/2
	for _, child := range children {
		extent := idx.extents[child.ID]
		childBox := boxSize(idx.byID[child.ID].Content)
		childY := offset + (extent-childBox.Height)/2
		place(idx, res, b, child, childX, childY)

		placed := res.Nodes[child.ID]
		res.Edges = append(res.Edges, Edge{
			FromID: node.ID,
			ToID:   child.ID,
			FromX:  x + box.Width,
			FromY:  y + box.Height/2,
			ToX:    placed.X,
			ToY:    placed.Y + placed.Height/2,
		})

		offset += extent + VGap
	}
}

// wrapLines breaks content into lines of at most maxChars characters,
// splitting on spaces where possible. Always returns at least one line.
func wrapLines(content string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(content)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len([]rune(word)) > maxChars {
			// A single word longer than the line is hard-split.
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:maxChars]))
			word = string(runes[maxChars:])
		}
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= maxChars:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
