package demo

import (
	"github.com/sahilm/fuzzy"
)

type titles []*Record

func (t titles) String(i int) string {
	return t[i].Title
}

func (t titles) Len() int {
	return len(t)
}

// Filter returns the records whose title fuzzy-matches pattern, best
// matches first. An empty pattern keeps every record in order.
func Filter(records []*Record, pattern string) []*Record {
	if pattern == "" {
		return records
	}
	matches := fuzzy.FindFrom(pattern, titles(records))
	filtered := make([]*Record, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, records[m.Index])
	}
	return filtered
}
