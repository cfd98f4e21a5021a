// Package aggregate computes per-axis maxima over the loaded roster. The
// maxima normalise stat bars for display, so every value is floored at 1.
package aggregate

import (
	"math"

	"github.com/HerbHall/kartstats/pkg/models"
)

// floor is the minimum reported maximum for any axis.
const floor = 1

// ComputeMaxStats returns the maximum value observed on each of the ten axes
// across all given entities, characters and vehicles alike. Each axis is
// floored at 1, so an empty input yields a vector of ones.
func ComputeMaxStats(entities []models.Entity) models.StatVector {
	var out models.StatVector
	axes := models.Axes()
	for _, axis := range axes {
		out = out.Set(axis, floor)
	}
	for i := range entities {
		for _, axis := range axes {
			if v := entities[i].Stats.Get(axis); v > out.Get(axis) {
				out = out.Set(axis, v)
			}
		}
	}
	return out
}

// ActiveMax is the filter-resolved view of the maxima for the four metrics.
type ActiveMax struct {
	Speed        int `json:"speed"`
	Acceleration int `json:"acceleration"`
	Weight       int `json:"weight"`
	Handling     int `json:"handling"`
}

// Value returns the maximum for the given metric.
func (a ActiveMax) Value(m models.Metric) int {
	switch m {
	case models.MetricAcceleration:
		return a.Acceleration
	case models.MetricWeight:
		return a.Weight
	case models.MetricHandling:
		return a.Handling
	default:
		return a.Speed
	}
}

// Active resolves speed and handling maxima through the selected sub-axes.
func Active(maxima models.StatVector, f models.AxisFilter) ActiveMax {
	return ActiveMax{
		Speed:        maxima.Speed.Get(f.Speed),
		Acceleration: maxima.Acceleration,
		Weight:       maxima.Weight,
		Handling:     maxima.Handling.Get(f.Handling),
	}
}

// ComputeActiveMaxStats is ComputeMaxStats followed by Active.
func ComputeActiveMaxStats(entities []models.Entity, f models.AxisFilter) ActiveMax {
	return Active(ComputeMaxStats(entities), f)
}

// minBarPercent keeps tiny values visible on a stat bar.
const minBarPercent = 5

// BarPercent returns value as a rounded percentage of top, never below 5.
func BarPercent(value, top int) int {
	top = max(top, floor)
	pct := int(math.Round(float64(value) / float64(top) * 100))
	return max(pct, minBarPercent)
}

// Band classifies a value relative to the axis maximum.
type Band string

const (
	BandHigh Band = "high"
	BandGood Band = "good"
	BandFair Band = "fair"
	BandLow  Band = "low"
)

// BandFor returns the display band of value relative to top.
func BandFor(value, top int) Band {
	top = max(top, floor)
	ratio := float64(value) / float64(top)
	switch {
	case ratio >= 0.8:
		return BandHigh
	case ratio >= 0.6:
		return BandGood
	case ratio >= 0.4:
		return BandFair
	default:
		return BandLow
	}
}
