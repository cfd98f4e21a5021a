package dataset

import (
	"fmt"
	"strings"

	"github.com/HerbHall/kartstats/pkg/models"
)

// Limits used by Validate.
const (
	maxReasonableValue = 100
	maxVehicleWeight   = 10
	displayTolerance   = 1
)

// Validate drops entities with an empty name, a negative stat or a name
// already used by an earlier entity of the same kind, and collects soft
// warnings for the rest. The input is not modified.
func Validate(r models.Roster) (models.Roster, Report) {
	var rep Report
	out := models.Roster{
		Characters: validateKind(r.Characters, models.KindCharacter, &rep),
		Vehicles:   validateKind(r.Vehicles, models.KindVehicle, &rep),
	}
	return out, rep
}

func validateKind(entities []models.Entity, kind models.Kind, rep *Report) []models.Entity {
	kept := make([]models.Entity, 0, len(entities))
	local := make(map[string]bool, len(entities))
	reference := make(map[string]bool, len(entities))

	for i := range entities {
		e := entities[i]
		e.Kind = kind
		if msg := hardProblem(e, local, reference); msg != "" {
			rep.Dropped = append(rep.Dropped, ValidationWarning{Kind: kind, Name: e.LocalName, Message: msg})
			continue
		}
		local[e.LocalName] = true
		reference[e.ReferenceName] = true
		for _, msg := range softProblems(e) {
			rep.Warnings = append(rep.Warnings, ValidationWarning{Kind: kind, Name: e.LocalName, Message: msg})
		}
		kept = append(kept, e)
	}
	return kept
}

func hardProblem(e models.Entity, local, reference map[string]bool) string {
	switch {
	case strings.TrimSpace(e.LocalName) == "":
		return "empty local name"
	case strings.TrimSpace(e.ReferenceName) == "":
		return "empty reference name"
	case local[e.LocalName]:
		return "duplicate local name"
	case reference[e.ReferenceName]:
		return "duplicate reference name"
	}
	for _, axis := range models.Axes() {
		if e.Stats.Get(axis) < 0 {
			return fmt.Sprintf("%s is negative", axis)
		}
	}
	return ""
}

func softProblems(e models.Entity) []string {
	var out []string
	for _, axis := range models.Axes() {
		if v := e.Stats.Get(axis); v > maxReasonableValue {
			out = append(out, fmt.Sprintf("%s is %d, above %d", axis, v, maxReasonableValue))
		}
	}
	if d, m := e.Stats.Speed.Display, e.Stats.Speed.MaxSubAxis(); abs(d-m) > displayTolerance {
		out = append(out, fmt.Sprintf("speed display %d differs from sub-axis max %d", d, m))
	}
	if d, m := e.Stats.Handling.Display, e.Stats.Handling.MaxSubAxis(); abs(d-m) > displayTolerance {
		out = append(out, fmt.Sprintf("handling display %d differs from sub-axis max %d", d, m))
	}
	if e.Kind == models.KindVehicle && e.Stats.Weight > maxVehicleWeight {
		out = append(out, fmt.Sprintf("vehicle weight %d exceeds %d", e.Stats.Weight, maxVehicleWeight))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
