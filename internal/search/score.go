// Package search scores entities against free-text queries, keeps a bounded
// query history and debounces interactive input.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/HerbHall/kartstats/pkg/models"
)

// Scoring tiers and result bounds.
const (
	ExactScore       = 100.0
	PrefixScore      = 80.0
	SubstringScore   = 60.0
	SimilarityWeight = 40.0

	// MinScore is exclusive: an entity must score strictly above it.
	MinScore   = 20.0
	MaxResults = 20
)

// Result is a matched entity with its relevance score.
type Result struct {
	Entity models.Entity `json:"entity"`
	Score  float64       `json:"score"`
}

// Score rates how well query matches either name of e. Comparison is
// case-insensitive and the better of the two names wins.
func Score(query string, e models.Entity) float64 {
	q := strings.ToLower(query)
	return max(scoreName(q, strings.ToLower(e.LocalName)), scoreName(q, strings.ToLower(e.ReferenceName)))
}

func scoreName(q, name string) float64 {
	switch {
	case name == q:
		return ExactScore
	case strings.HasPrefix(name, q):
		return PrefixScore
	case strings.Contains(name, q):
		return SubstringScore
	}
	return Similarity(q, name) * SimilarityWeight
}

// Similarity counts positions where a and b hold the same rune and divides by
// the longer length. Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	matches := 0
	for i := range min(len(ra), len(rb)) {
		if ra[i] == rb[i] {
			matches++
		}
	}
	return float64(matches) / float64(longest)
}

// Search scores every entity against query and returns at most MaxResults
// matches ordered by descending score. Equal scores keep input order, so
// passing Roster.All() ranks characters ahead of vehicles on ties. A blank
// query matches nothing.
func Search(query string, entities []models.Entity) []Result {
	if strings.TrimSpace(query) == "" {
		return []Result{}
	}

	results := make([]Result, 0)
	for i := range entities {
		if s := Score(query, entities[i]); s > MinScore {
			results = append(results, Result{Entity: entities[i], Score: s})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}
