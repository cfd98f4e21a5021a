// Package roster provides the default character and vehicle dataset compiled
// into the binary.
package roster

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/kartstats/pkg/models"
)

//go:embed roster.yaml
var rosterRawData []byte

// rosterFile is the top-level structure of the embedded YAML.
type rosterFile struct {
	Characters []models.Entity `yaml:"characters"`
	Vehicles   []models.Entity `yaml:"vehicles"`
}

// Default provides lazy-loaded access to the embedded roster.
type Default struct {
	once   sync.Once
	roster models.Roster
	err    error
}

// New creates a Default that will parse the embedded YAML on first access.
func New() *Default {
	return &Default{}
}

// Roster returns a copy of the embedded roster with Kind set on every entity.
func (d *Default) Roster() (models.Roster, error) {
	d.once.Do(d.load)
	if d.err != nil {
		return models.Roster{}, d.err
	}
	return models.Roster{
		Characters: append([]models.Entity(nil), d.roster.Characters...),
		Vehicles:   append([]models.Entity(nil), d.roster.Vehicles...),
	}, nil
}

// Parse decodes a roster document in the embedded YAML layout.
func Parse(data []byte) (models.Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.Roster{}, fmt.Errorf("roster: parse yaml: %w", err)
	}
	for i := range f.Characters {
		f.Characters[i].Kind = models.KindCharacter
	}
	for i := range f.Vehicles {
		f.Vehicles[i].Kind = models.KindVehicle
	}
	return models.Roster{Characters: f.Characters, Vehicles: f.Vehicles}, nil
}

func (d *Default) load() {
	d.roster, d.err = Parse(rosterRawData)
}
