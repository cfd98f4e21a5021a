package dataset

import (
	"fmt"

	"github.com/HerbHall/kartstats/pkg/models"
)

// rawEntity is the flat record shape shared by the structured file and the
// spreadsheet export. Pointer fields let decoding tell a missing value from 0.
type rawEntity struct {
	Name            string `json:"name" yaml:"name"`
	EnglishName     string `json:"englishName" yaml:"englishName"`
	DisplaySpeed    *int   `json:"displaySpeed" yaml:"displaySpeed"`
	RoadSpeed       *int   `json:"roadSpeed" yaml:"roadSpeed"`
	TerrainSpeed    *int   `json:"terrainSpeed" yaml:"terrainSpeed"`
	WaterSpeed      *int   `json:"waterSpeed" yaml:"waterSpeed"`
	Acceleration    *int   `json:"acceleration" yaml:"acceleration"`
	Weight          *int   `json:"weight" yaml:"weight"`
	DisplayHandling *int   `json:"displayHandling" yaml:"displayHandling"`
	RoadHandling    *int   `json:"roadHandling" yaml:"roadHandling"`
	TerrainHandling *int   `json:"terrainHandling" yaml:"terrainHandling"`
	WaterHandling   *int   `json:"waterHandling" yaml:"waterHandling"`
}

// envelope is the structured dataset document.
type envelope struct {
	Version    string `json:"version" yaml:"version"`
	LastUpdate string `json:"lastUpdate" yaml:"lastUpdate"`
	Data       struct {
		Characters []rawEntity `json:"characters" yaml:"characters"`
		Vehicles   []rawEntity `json:"vehicles" yaml:"vehicles"`
	} `json:"data" yaml:"data"`
}

// entity converts r, reporting the first missing stat field.
func (r rawEntity) entity(kind models.Kind) (models.Entity, error) {
	fields := []struct {
		name string
		axis models.Axis
		v    *int
	}{
		{"displaySpeed", models.AxisSpeedDisplay, r.DisplaySpeed},
		{"roadSpeed", models.AxisSpeedRoad, r.RoadSpeed},
		{"terrainSpeed", models.AxisSpeedTerrain, r.TerrainSpeed},
		{"waterSpeed", models.AxisSpeedWater, r.WaterSpeed},
		{"acceleration", models.AxisAcceleration, r.Acceleration},
		{"weight", models.AxisWeight, r.Weight},
		{"displayHandling", models.AxisHandlingDisplay, r.DisplayHandling},
		{"roadHandling", models.AxisHandlingRoad, r.RoadHandling},
		{"terrainHandling", models.AxisHandlingTerrain, r.TerrainHandling},
		{"waterHandling", models.AxisHandlingWater, r.WaterHandling},
	}

	e := models.Entity{Kind: kind, LocalName: r.Name, ReferenceName: r.EnglishName}
	if e.ReferenceName == "" {
		e.ReferenceName = e.LocalName
	}
	for _, f := range fields {
		if f.v == nil {
			return models.Entity{}, fmt.Errorf("%s %q: missing %s", kind, r.Name, f.name)
		}
		e.Stats = e.Stats.Set(f.axis, *f.v)
	}
	return e, nil
}
