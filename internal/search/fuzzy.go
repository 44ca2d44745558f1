// Package search ranks nodes against a query using fuzzy matching.
package search

import (
	"github.com/sahilm/fuzzy"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// Fuzzy is the default Searcher. EmptyAll selects the empty-query
// convention: when true an empty query returns the unfiltered full
// list, when false it returns nothing. Both conventions exist in this
// class of editor, so the choice is explicit per call site.
type Fuzzy struct {
	EmptyAll bool
}

var _ ports.Searcher = (*Fuzzy)(nil)

// NewFuzzy creates a searcher with the given empty-query convention.
func NewFuzzy(emptyAll bool) *Fuzzy {
	return &Fuzzy{EmptyAll: emptyAll}
}

type nodeSource []domain.Node

func (s nodeSource) String(i int) string { return s[i].Content }
func (s nodeSource) Len() int            { return len(s) }

// Search returns ranked matches, best first.
func (f *Fuzzy) Search(query string, nodes []domain.Node) []ports.Match {
	if query == "" {
		if !f.EmptyAll {
			return nil
		}
		out := make([]ports.Match, len(nodes))
		for i, n := range nodes {
			out[i] = ports.Match{NodeID: n.ID, Content: n.Content}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, nodeSource(nodes))
	out := make([]ports.Match, len(matches))
	for i, m := range matches {
		n := nodes[m.Index]
		out[i] = ports.Match{
			NodeID:         n.ID,
			Content:        n.Content,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}
