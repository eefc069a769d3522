package service

import (
	"strings"
)

// MatchesQuery reports whether a document's extracted pages contain the query
// as a case-insensitive substring. Pages are joined with a single space into
// one blob; both blob and query are lower-cased with a locale-independent
// fold. Intentionally literal substring search: no tokenization, stemming or
// whitespace normalization beyond the join. An empty query never matches.
func MatchesQuery(pages []string, query string) bool {
	if query == "" {
		return false
	}
	fullText := strings.ToLower(strings.Join(pages, " "))
	return strings.Contains(fullText, strings.ToLower(query))
}
