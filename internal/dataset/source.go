// Package dataset loads the character and vehicle roster from a structured
// file, a spreadsheet export or the embedded default, and validates it.
package dataset

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/HerbHall/kartstats/pkg/models"
	"github.com/HerbHall/kartstats/pkg/roster"
)

// Source produces a roster.
type Source interface {
	Name() string
	Load(ctx context.Context) (models.Roster, error)
}

// Compile-time interface guards.
var (
	_ Source = (*StructuredSource)(nil)
	_ Source = (*TabularSource)(nil)
	_ Source = (*EmbeddedSource)(nil)
)

// StructuredSource reads the JSON or YAML dataset envelope from a file path
// or URL. Files ending in .yaml or .yml are decoded as YAML, everything else
// as JSON.
type StructuredSource struct {
	location string
	fetch    *fetcher
	logger   *zap.Logger
}

// NewStructuredSource creates a StructuredSource for location.
func NewStructuredSource(location string, opts FetchOptions, logger *zap.Logger) *StructuredSource {
	f := newFetcher(opts, logger)
	return &StructuredSource{location: location, fetch: f, logger: f.logger}
}

// Name implements Source.
func (s *StructuredSource) Name() string { return "structured" }

// Load implements Source.
func (s *StructuredSource) Load(ctx context.Context) (models.Roster, error) {
	data, err := s.fetch.read(ctx, s.location)
	if err != nil {
		return models.Roster{}, err
	}

	var env envelope
	switch extension(s.location) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &env)
	default:
		err = json.Unmarshal(data, &env)
	}
	if err != nil {
		return models.Roster{}, fmt.Errorf("decode %s: %w", s.location, err)
	}

	r := models.Roster{
		Characters: s.convert(env.Data.Characters, models.KindCharacter),
		Vehicles:   s.convert(env.Data.Vehicles, models.KindVehicle),
	}
	s.logger.Debug("structured dataset decoded",
		zap.String("version", env.Version),
		zap.String("last_update", env.LastUpdate),
		zap.Int("characters", len(r.Characters)),
		zap.Int("vehicles", len(r.Vehicles)),
	)
	return r, nil
}

// convert skips records with missing stat fields.
func (s *StructuredSource) convert(raw []rawEntity, kind models.Kind) []models.Entity {
	out := make([]models.Entity, 0, len(raw))
	for i := range raw {
		e, err := raw[i].entity(kind)
		if err != nil {
			s.logger.Warn("skipping record", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	return out
}

// TabularSource reads the spreadsheet CSV export from a file path or URL.
type TabularSource struct {
	location string
	fetch    *fetcher
}

// NewTabularSource creates a TabularSource for location.
func NewTabularSource(location string, opts FetchOptions, logger *zap.Logger) *TabularSource {
	return &TabularSource{location: location, fetch: newFetcher(opts, logger)}
}

// Name implements Source.
func (s *TabularSource) Name() string { return "tabular" }

// Load implements Source.
func (s *TabularSource) Load(ctx context.Context) (models.Roster, error) {
	data, err := s.fetch.read(ctx, s.location)
	if err != nil {
		return models.Roster{}, err
	}
	r, err := ParseCSV(data)
	if err != nil {
		return models.Roster{}, fmt.Errorf("parse %s: %w", s.location, err)
	}
	return r, nil
}

// EmbeddedSource serves the roster compiled into the binary.
type EmbeddedSource struct {
	def *roster.Default
}

// NewEmbeddedSource creates an EmbeddedSource.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{def: roster.New()}
}

// Name implements Source.
func (s *EmbeddedSource) Name() string { return "embedded" }

// Load implements Source.
func (s *EmbeddedSource) Load(_ context.Context) (models.Roster, error) {
	return s.def.Roster()
}
