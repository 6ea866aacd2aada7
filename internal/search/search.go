// Package search implements the client-side style filtering the portfolio
// pages apply to their collections: a category selector combined with a
// case-insensitive free-text query.
package search

import "strings"

// Wildcard is the virtual category that short-circuits to the full
// collection.
const Wildcard = "All"

// Matcher is a record that can participate in category and text filtering.
type Matcher interface {
	// FilterCategory returns the record's category value.
	FilterCategory() string
	// FilterText returns the fields a text query is matched against.
	FilterText() []string
}

// Matches reports whether the record passes both filters: category must
// equal the selection (or the selection is the wildcard), and at least one
// text field must contain the query as a case-insensitive substring (or
// the query is empty).
func Matches(m Matcher, category, query string) bool {
	if category != "" && category != Wildcard && m.FilterCategory() != category {
		return false
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	for _, field := range m.FilterText() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Apply filters items, preserving the original collection order.
func Apply[T Matcher](items []T, category, query string) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, category, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Counts computes per-category record counts over the unfiltered
// collection, plus a wildcard entry equal to the total size. An active
// text query never changes these numbers.
func Counts[T Matcher](items []T) map[string]int {
	counts := map[string]int{Wildcard: len(items)}
	for _, item := range items {
		c := item.FilterCategory()
		if c == "" {
			continue
		}
		counts[c]++
	}
	return counts
}

// Categories returns the wildcard followed by the distinct category values
// in first-seen order.
func Categories[T Matcher](items []T) []string {
	names := []string{Wildcard}
	seen := map[string]bool{}
	for _, item := range items {
		c := item.FilterCategory()
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		names = append(names, c)
	}
	return names
}
