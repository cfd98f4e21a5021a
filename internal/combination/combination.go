// Package combination builds and manages user-saved character and vehicle
// pairings. All operations return new slices; inputs are never mutated.
package combination

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/kartstats/pkg/models"
)

// DefaultBonus is the game-rule constant added to every axis of a combination.
const DefaultBonus = 3

// New creates a combination of character and vehicle. Every axis of the
// combined stats is character + vehicle + bonus. The ID embeds both local
// names and the creation time plus a random suffix, so re-adding the same
// pair always produces a fresh ID.
func New(character, vehicle models.Entity, bonus int, now time.Time) models.Combination {
	return models.Combination{
		ID:            newID(character.LocalName, vehicle.LocalName, now),
		Character:     character,
		Vehicle:       vehicle,
		CombinedStats: character.Stats.Combine(vehicle.Stats, bonus),
		CreatedAt:     now.UnixMilli(),
	}
}

func newID(character, vehicle string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%s", character, vehicle, now.UnixMilli(), uuid.NewString()[:8])
}

// Append returns a new list with c added at the end.
func Append(list []models.Combination, c models.Combination) []models.Combination {
	out := make([]models.Combination, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c)
}

// Remove returns a new list without the combination whose ID is id, and
// whether anything was removed.
func Remove(list []models.Combination, id string) ([]models.Combination, bool) {
	out := make([]models.Combination, 0, len(list))
	removed := false
	for i := range list {
		if list[i].ID == id {
			removed = true
			continue
		}
		out = append(out, list[i])
	}
	return out, removed
}

// Clear returns an empty list.
func Clear() []models.Combination {
	return []models.Combination{}
}
