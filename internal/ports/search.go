package ports

import "arbor/internal/domain"

// Match is a single ranked search result.
type Match struct {
	NodeID  string
	Content string
	Score   int
	// MatchedIndexes are the rune indexes of Content that matched the
	// query, for highlight rendering.
	MatchedIndexes []int
}

// Searcher ranks nodes against a query string. Implementations declare
// their empty-query convention explicitly: either no results or the
// unfiltered full list.
type Searcher interface {
	Search(query string, nodes []domain.Node) []Match
}
