package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HerbHall/kartstats/pkg/models"
)

// ErrEmptyRoster is reported for a source that produced no characters or no vehicles.
var ErrEmptyRoster = errors.New("roster has no characters or no vehicles")

// LoadError is returned when no source yields a usable roster.
type LoadError struct {
	// Attempts holds one error per source tried, in order.
	Attempts []error
}

func (e *LoadError) Error() string {
	if len(e.Attempts) == 0 {
		return "load dataset: no sources configured"
	}
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return "load dataset: all sources failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the per-source errors to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	return e.Attempts
}

// ValidationWarning describes a problem with a single entity. Soft warnings
// are logged and the entity is kept; hard ones drop the entity.
type ValidationWarning struct {
	Kind    models.Kind `json:"kind"`
	Name    string      `json:"name"`
	Message string      `json:"message"`
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("%s %q: %s", w.Kind, w.Name, w.Message)
}

// Report collects the outcome of Validate.
type Report struct {
	Dropped  []ValidationWarning `json:"dropped"`
	Warnings []ValidationWarning `json:"warnings"`
}
