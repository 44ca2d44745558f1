package domain

import "strings"

// OutlineText renders the subtree rooted at rootID as indented plain
// text, one node per line, two spaces per depth level. Used by the
// clipboard copy command and the CLI tree output.
func OutlineText(nodes []Node, rootID string) string {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	root, ok := byID[rootID]
	if !ok {
		return ""
	}

	var sb strings.Builder
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Content)
		sb.WriteString("\n")
		for _, child := range ChildrenOf(nodes, n.ID) {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return sb.String()
}
