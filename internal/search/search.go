// Package search filters and ranks named schema items against a free-text query.
package search

import (
	"slices"
	"strings"
	"unicode"
)

// MaxItems is the number of matches kept per item kind.
const MaxItems = 10

// Result is the outcome of FilterAndSort.
type Result[T any] struct {
	Items        []T
	WasTruncated bool
}

// NormalizeQuery trims the query, strips one trailing "s", removes all
// whitespace and lower-cases it, so that "Product listings" and "productlisting"
// search for the same term.
func NormalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	q = strings.TrimSuffix(q, "s")
	q = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, q)
	return strings.ToLower(q)
}

// FilterAndSort keeps the items whose name contains term (case-insensitive),
// orders them by name length so that the closest matches come first, and caps
// the result at maxItems. Items with an empty name never match.
func FilterAndSort[T any](items []T, name func(T) string, term string, maxItems int) Result[T] {
	term = strings.ToLower(term)
	var matched []T
	for _, it := range items {
		n := name(it)
		if n == "" {
			continue
		}
		if strings.Contains(strings.ToLower(n), term) {
			matched = append(matched, it)
		}
	}

	slices.SortStableFunc(matched, func(a, b T) int {
		return len(name(a)) - len(name(b))
	})

	if len(matched) > maxItems {
		return Result[T]{Items: matched[:maxItems], WasTruncated: true}
	}
	return Result[T]{Items: matched}
}
