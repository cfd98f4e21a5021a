// Package view produces ordered and filtered views of roster entities.
package view

import (
	"cmp"
	"slices"

	"github.com/HerbHall/kartstats/pkg/models"
)

// SortKey returns the value an entity is ordered by for the given metric.
// Speed and handling resolve through the selected sub-axes.
func SortKey(e models.Entity, metric models.Metric, f models.AxisFilter) int {
	switch metric {
	case models.MetricAcceleration:
		return e.Stats.Acceleration
	case models.MetricWeight:
		return e.Stats.Weight
	case models.MetricHandling:
		return e.Stats.Handling.Get(f.Handling)
	default:
		return e.Stats.Speed.Get(f.Speed)
	}
}

// SortEntities returns a new slice ordered by SortKey descending. Equal keys
// are ordered by LocalName ascending so the output is fully deterministic.
func SortEntities(entities []models.Entity, metric models.Metric, f models.AxisFilter) []models.Entity {
	out := slices.Clone(entities)
	slices.SortFunc(out, func(a, b models.Entity) int {
		if c := cmp.Compare(SortKey(b, metric, f), SortKey(a, metric, f)); c != 0 {
			return c
		}
		return cmp.Compare(a.LocalName, b.LocalName)
	})
	return out
}

// Filter returns the entities for which keep reports true, in input order.
func Filter(entities []models.Entity, keep func(models.Entity) bool) []models.Entity {
	out := make([]models.Entity, 0, len(entities))
	for i := range entities {
		if keep(entities[i]) {
			out = append(out, entities[i])
		}
	}
	return out
}

// MatchKind returns a Filter predicate selecting a single kind.
func MatchKind(k models.Kind) func(models.Entity) bool {
	return func(e models.Entity) bool { return e.Kind == k }
}
