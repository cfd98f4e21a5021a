package models

import "fmt"

// Kind distinguishes characters from vehicles.
type Kind string

const (
	KindCharacter Kind = "character"
	KindVehicle   Kind = "vehicle"
)

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindCharacter, KindVehicle:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Entity is a character or vehicle with its stat vector. Entities are created
// once at load time and treated as immutable values afterwards.
type Entity struct {
	Kind          Kind       `json:"kind" yaml:"kind"`
	LocalName     string     `json:"localName" yaml:"localName"`
	ReferenceName string     `json:"referenceName" yaml:"referenceName"`
	Stats         StatVector `json:"stats" yaml:"stats"`
}

// Roster is the full loaded dataset. A reload replaces the whole Roster.
type Roster struct {
	Characters []Entity `json:"characters" yaml:"characters"`
	Vehicles   []Entity `json:"vehicles" yaml:"vehicles"`
}

// All returns characters followed by vehicles in a new slice.
func (r Roster) All() []Entity {
	out := make([]Entity, 0, len(r.Characters)+len(r.Vehicles))
	out = append(out, r.Characters...)
	return append(out, r.Vehicles...)
}

// Empty reports whether either kind has no entities.
func (r Roster) Empty() bool {
	return len(r.Characters) == 0 || len(r.Vehicles) == 0
}

// Character finds a character by local name.
func (r Roster) Character(name string) (Entity, bool) {
	return find(r.Characters, name)
}

// Vehicle finds a vehicle by local name.
func (r Roster) Vehicle(name string) (Entity, bool) {
	return find(r.Vehicles, name)
}

func find(entities []Entity, name string) (Entity, bool) {
	for i := range entities {
		if entities[i].LocalName == name {
			return entities[i], true
		}
	}
	return Entity{}, false
}

// Combination is a user-saved character and vehicle pairing.
type Combination struct {
	ID            string     `json:"id"`
	Character     Entity     `json:"character"`
	Vehicle       Entity     `json:"vehicle"`
	CombinedStats StatVector `json:"combinedStats"`
	CreatedAt     int64      `json:"createdAt"`
}

// AxisFilter selects the sub-axis used for speed and handling.
type AxisFilter struct {
	Speed    SubAxis `json:"speed"`
	Handling SubAxis `json:"handling"`
}

// Filters is the session-scoped sort and axis selection.
type Filters struct {
	SortMetric Metric     `json:"sortMetric"`
	Axes       AxisFilter `json:"axes"`
}

// DefaultFilters sorts by displayed speed.
func DefaultFilters() Filters {
	return Filters{
		SortMetric: MetricSpeed,
		Axes:       AxisFilter{Speed: SubAxisDisplay, Handling: SubAxisDisplay},
	}
}

// SearchHistoryItem is a remembered search query. Timestamp is unix milliseconds.
type SearchHistoryItem struct {
	Query       string `json:"query"`
	Timestamp   int64  `json:"timestamp"`
	ResultCount int    `json:"resultCount"`
}
