package search

import (
	"slices"

	"github.com/HerbHall/kartstats/pkg/models"
)

// DefaultHistoryLimit bounds the remembered query list.
const DefaultHistoryLimit = 10

// Record returns a new history with query at the front. Any earlier entry
// with the same query is dropped and the list is truncated to limit. A
// non-positive limit uses DefaultHistoryLimit. The input is not modified.
func Record(items []models.SearchHistoryItem, query string, resultCount int, nowMillis int64, limit int) []models.SearchHistoryItem {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out := make([]models.SearchHistoryItem, 0, min(len(items)+1, limit))
	out = append(out, models.SearchHistoryItem{Query: query, Timestamp: nowMillis, ResultCount: resultCount})
	for i := range items {
		if len(out) == limit {
			break
		}
		if items[i].Query == query {
			continue
		}
		out = append(out, items[i])
	}
	return out
}

// Remove returns a copy of items without the entry for query and reports
// whether one was present.
func Remove(items []models.SearchHistoryItem, query string) ([]models.SearchHistoryItem, bool) {
	idx := slices.IndexFunc(items, func(it models.SearchHistoryItem) bool { return it.Query == query })
	if idx < 0 {
		return slices.Clone(items), false
	}
	return slices.Delete(slices.Clone(items), idx, idx+1), true
}
