package models

import (
	"errors"
	"fmt"
)

// Validation errors returned by the Parse functions.
var (
	ErrInvalidSubAxis = errors.New("invalid sub-axis")
	ErrInvalidTerrain = errors.New("invalid terrain")
	ErrInvalidMetric  = errors.New("invalid metric")
	ErrInvalidKind    = errors.New("invalid kind")
)

// SubAxis selects which variant of speed or handling is displayed.
type SubAxis string

const (
	SubAxisDisplay SubAxis = "display"
	SubAxisRoad    SubAxis = "road"
	SubAxisTerrain SubAxis = "terrain"
	SubAxisWater   SubAxis = "water"
)

// ParseSubAxis validates s as a SubAxis. An empty string yields SubAxisDisplay.
func ParseSubAxis(s string) (SubAxis, error) {
	switch a := SubAxis(s); a {
	case "":
		return SubAxisDisplay, nil
	case SubAxisDisplay, SubAxisRoad, SubAxisTerrain, SubAxisWater:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSubAxis, s)
}

// Terrain is the surface a recommendation is computed for.
type Terrain string

const (
	TerrainRoad    Terrain = "road"
	TerrainTerrain Terrain = "terrain"
	TerrainWater   Terrain = "water"
)

// Terrains returns every terrain in display order.
func Terrains() []Terrain {
	return []Terrain{TerrainRoad, TerrainTerrain, TerrainWater}
}

// ParseTerrain validates s as a Terrain.
func ParseTerrain(s string) (Terrain, error) {
	switch t := Terrain(s); t {
	case TerrainRoad, TerrainTerrain, TerrainWater:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTerrain, s)
}

// SubAxis returns the stat sub-axis that carries this terrain's values.
func (t Terrain) SubAxis() SubAxis {
	return SubAxis(t)
}

// Metric is one of the four top-level stats an entity list can be sorted by.
type Metric string

const (
	MetricSpeed        Metric = "speed"
	MetricAcceleration Metric = "acceleration"
	MetricWeight       Metric = "weight"
	MetricHandling     Metric = "handling"
)

// ParseMetric validates s as a Metric. An empty string yields MetricSpeed.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case "":
		return MetricSpeed, nil
	case MetricSpeed, MetricAcceleration, MetricWeight, MetricHandling:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMetric, s)
}

// Axis names a single numeric dimension of a StatVector.
type Axis string

const (
	AxisSpeedDisplay    Axis = "speed.display"
	AxisSpeedRoad       Axis = "speed.road"
	AxisSpeedTerrain    Axis = "speed.terrain"
	AxisSpeedWater      Axis = "speed.water"
	AxisAcceleration    Axis = "acceleration"
	AxisWeight          Axis = "weight"
	AxisHandlingDisplay Axis = "handling.display"
	AxisHandlingRoad    Axis = "handling.road"
	AxisHandlingTerrain Axis = "handling.terrain"
	AxisHandlingWater   Axis = "handling.water"
)

// Axes returns all ten axes in canonical order.
func Axes() []Axis {
	return []Axis{
		AxisSpeedDisplay, AxisSpeedRoad, AxisSpeedTerrain, AxisSpeedWater,
		AxisAcceleration, AxisWeight,
		AxisHandlingDisplay, AxisHandlingRoad, AxisHandlingTerrain, AxisHandlingWater,
	}
}

// TerrainStats holds the display value of a stat plus its per-terrain values.
type TerrainStats struct {
	Display int `json:"display" yaml:"display"`
	Road    int `json:"road" yaml:"road"`
	Terrain int `json:"terrain" yaml:"terrain"`
	Water   int `json:"water" yaml:"water"`
}

// Get returns the value for the given sub-axis. Unknown sub-axes resolve to Display.
func (t TerrainStats) Get(a SubAxis) int {
	switch a {
	case SubAxisRoad:
		return t.Road
	case SubAxisTerrain:
		return t.Terrain
	case SubAxisWater:
		return t.Water
	default:
		return t.Display
	}
}

// MaxSubAxis returns the largest of the road, terrain and water values.
func (t TerrainStats) MaxSubAxis() int {
	return max(t.Road, t.Terrain, t.Water)
}

func (t TerrainStats) plus(o TerrainStats, bonus int) TerrainStats {
	return TerrainStats{
		Display: t.Display + o.Display + bonus,
		Road:    t.Road + o.Road + bonus,
		Terrain: t.Terrain + o.Terrain + bonus,
		Water:   t.Water + o.Water + bonus,
	}
}

// StatVector is the ten-axis stat block shared by characters, vehicles and combinations.
type StatVector struct {
	Speed        TerrainStats `json:"speed" yaml:"speed"`
	Acceleration int          `json:"acceleration" yaml:"acceleration"`
	Weight       int          `json:"weight" yaml:"weight"`
	Handling     TerrainStats `json:"handling" yaml:"handling"`
}

// Get returns the value stored on the given axis, or 0 for an unknown axis.
func (v StatVector) Get(axis Axis) int {
	switch axis {
	case AxisSpeedDisplay:
		return v.Speed.Display
	case AxisSpeedRoad:
		return v.Speed.Road
	case AxisSpeedTerrain:
		return v.Speed.Terrain
	case AxisSpeedWater:
		return v.Speed.Water
	case AxisAcceleration:
		return v.Acceleration
	case AxisWeight:
		return v.Weight
	case AxisHandlingDisplay:
		return v.Handling.Display
	case AxisHandlingRoad:
		return v.Handling.Road
	case AxisHandlingTerrain:
		return v.Handling.Terrain
	case AxisHandlingWater:
		return v.Handling.Water
	}
	return 0
}

// Set returns a copy of v with axis set to value. Unknown axes leave v unchanged.
func (v StatVector) Set(axis Axis, value int) StatVector {
	switch axis {
	case AxisSpeedDisplay:
		v.Speed.Display = value
	case AxisSpeedRoad:
		v.Speed.Road = value
	case AxisSpeedTerrain:
		v.Speed.Terrain = value
	case AxisSpeedWater:
		v.Speed.Water = value
	case AxisAcceleration:
		v.Acceleration = value
	case AxisWeight:
		v.Weight = value
	case AxisHandlingDisplay:
		v.Handling.Display = value
	case AxisHandlingRoad:
		v.Handling.Road = value
	case AxisHandlingTerrain:
		v.Handling.Terrain = value
	case AxisHandlingWater:
		v.Handling.Water = value
	}
	return v
}

// Combine returns the axis-wise sum of v and o with bonus added to every axis.
func (v StatVector) Combine(o StatVector, bonus int) StatVector {
	return StatVector{
		Speed:        v.Speed.plus(o.Speed, bonus),
		Acceleration: v.Acceleration + o.Acceleration + bonus,
		Weight:       v.Weight + o.Weight + bonus,
		Handling:     v.Handling.plus(o.Handling, bonus),
	}
}
