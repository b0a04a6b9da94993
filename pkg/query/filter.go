// Package query derives the visible note list from the canonical collection.
// It is pure with respect to its inputs and recomputed on every read.
package query

import (
	"sort"
	"strings"

	"github.com/avdw/jot/pkg/core"
)

// AllCategories selects every category.
const AllCategories = "all"

// Filter returns the ordered subset of notes matching the search string and
// the selected category key.
//
// A note matches the search when the lowercased search string is a substring
// of its title or content (an empty search matches everything). It matches the
// category when the selection is AllCategories or equals the note's category
// id. Both must hold.
//
// Ordering: important notes before the rest, then most recently updated first.
// The sort is stable, so equal notes keep their collection order.
func Filter(notes []core.Note, search, category string) []core.Note {
	q := strings.ToLower(search)

	var out []core.Note
	for _, n := range notes {
		if !matchesSearch(n, q) {
			continue
		}
		if category != AllCategories && category != "" && n.Category != category {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Important != out[j].Important {
			return out[i].Important
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func matchesSearch(n core.Note, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// CategoryCounts tallies notes per category id over the unfiltered collection.
func CategoryCounts(notes []core.Note) map[string]int {
	counts := make(map[string]int, len(notes))
	for _, n := range notes {
		counts[n.Category]++
	}
	return counts
}
