package testutil

import (
	"github.com/google/uuid"

	"github.com/HerbHall/kartstats/pkg/models"
)

// NewEntity returns an Entity with sensible defaults, suitable for test fixtures.
// Override individual fields with the With* options.
func NewEntity(opts ...func(*models.Entity)) models.Entity {
	e := models.Entity{
		Kind:          models.KindCharacter,
		LocalName:     "test-" + uuid.NewString()[:8],
		ReferenceName: "Test Entity",
		Stats:         Uniform(3),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewCharacter returns a character fixture with the given local name.
func NewCharacter(name string, opts ...func(*models.Entity)) models.Entity {
	opts = append([]func(*models.Entity){WithName(name), WithKind(models.KindCharacter)}, opts...)
	return NewEntity(opts...)
}

// NewVehicle returns a vehicle fixture with the given local name.
func NewVehicle(name string, opts ...func(*models.Entity)) models.Entity {
	opts = append([]func(*models.Entity){WithName(name), WithKind(models.KindVehicle)}, opts...)
	return NewEntity(opts...)
}

// Uniform returns a StatVector with every axis set to n.
func Uniform(n int) models.StatVector {
	var v models.StatVector
	for _, axis := range models.Axes() {
		v = v.Set(axis, n)
	}
	return v
}

// WithName sets the local name.
func WithName(name string) func(*models.Entity) {
	return func(e *models.Entity) { e.LocalName = name }
}

// WithReference sets the reference name.
func WithReference(name string) func(*models.Entity) {
	return func(e *models.Entity) { e.ReferenceName = name }
}

// WithKind sets the entity kind.
func WithKind(k models.Kind) func(*models.Entity) {
	return func(e *models.Entity) { e.Kind = k }
}

// WithStat sets a single axis.
func WithStat(axis models.Axis, value int) func(*models.Entity) {
	return func(e *models.Entity) { e.Stats = e.Stats.Set(axis, value) }
}

// WithStats replaces the whole stat vector.
func WithStats(v models.StatVector) func(*models.Entity) {
	return func(e *models.Entity) { e.Stats = v }
}
