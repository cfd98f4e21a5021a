package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/HerbHall/kartstats/internal/combination"
	"github.com/HerbHall/kartstats/pkg/models"
)

// Combinations returns the saved combinations in insertion order.
func (s *Store) Combinations() []models.Combination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cur.Combinations)
}

// AddCombination pairs the named character and vehicle and saves the result.
func (s *Store) AddCombination(ctx context.Context, character, vehicle string) (models.Combination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cur.Roster.Character(character)
	if !ok {
		return models.Combination{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, character)
	}
	v, ok := s.cur.Roster.Vehicle(vehicle)
	if !ok {
		return models.Combination{}, fmt.Errorf("%w: %q", ErrUnknownVehicle, vehicle)
	}

	combo := combination.New(c, v, s.bonus, s.now())
	s.cur.Combinations = combination.Append(s.cur.Combinations, combo)
	s.saveCombinations(ctx, "add")
	return combo, nil
}

// RemoveCombination deletes a combination by ID and reports whether it existed.
func (s *Store) RemoveCombination(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := combination.Remove(s.cur.Combinations, id)
	if !removed {
		return false
	}
	s.cur.Combinations = next
	s.saveCombinations(ctx, "remove")
	return true
}

// ClearCombinations deletes every saved combination.
func (s *Store) ClearCombinations(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Combinations = combination.Clear()
	s.saveCombinations(ctx, "clear")
}

// saveCombinations persists the collection unless it is session-only.
// Callers hold s.mu.
func (s *Store) saveCombinations(ctx context.Context, op string) {
	if s.combosLocal {
		return
	}
	if err := s.combos.Save(ctx, s.cur.Combinations); err != nil {
		s.degrade(collectionCombinations, op, err)
	}
}
