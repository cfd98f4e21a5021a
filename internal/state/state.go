// Package state holds the session's roster, filters, saved combinations and
// search history, and derives display data from them on demand.
package state

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/aggregate"
	"github.com/HerbHall/kartstats/internal/combination"
	"github.com/HerbHall/kartstats/internal/metrics"
	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/internal/search"
	"github.com/HerbHall/kartstats/internal/services"
	"github.com/HerbHall/kartstats/internal/view"
	"github.com/HerbHall/kartstats/pkg/models"
)

// Errors returned by AddCombination.
var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownVehicle   = errors.New("unknown vehicle")
)

// Collection names used in logs and metrics.
const (
	collectionCombinations = "combinations"
	collectionHistory      = "history"
)

// State is a point-in-time copy of everything the Store holds.
type State struct {
	Roster       models.Roster              `json:"roster"`
	Filters      models.Filters             `json:"filters"`
	Combinations []models.Combination       `json:"combinations"`
	History      []models.SearchHistoryItem `json:"history"`
}

// DefaultState is the state before any data is loaded.
func DefaultState() State {
	return State{
		Roster:       models.Roster{Characters: []models.Entity{}, Vehicles: []models.Entity{}},
		Filters:      models.DefaultFilters(),
		Combinations: []models.Combination{},
		History:      []models.SearchHistoryItem{},
	}
}

// Option configures a Store.
type Option func(*Store)

// WithCombinationRepository persists combinations through repo.
func WithCombinationRepository(repo services.CombinationRepository) Option {
	return func(s *Store) { s.combos = repo }
}

// WithHistoryRepository persists search history through repo.
func WithHistoryRepository(repo services.HistoryRepository) Option {
	return func(s *Store) { s.history = repo }
}

// WithBonus overrides the combination bonus.
func WithBonus(bonus int) Option {
	return func(s *Store) { s.bonus = bonus }
}

// WithHistoryLimit overrides the number of remembered queries.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.historyLimit = n }
}

// WithEngine replaces the default recommendation engine.
func WithEngine(e *recommend.Engine) Option {
	return func(s *Store) { s.engine = e }
}

// WithClock sets the time source for combination and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the single owner of mutable session state. Derived values are
// computed from the current snapshot when requested. Persistence failures
// are logged and switch the affected collection to session-only mode.
type Store struct {
	mu  sync.RWMutex
	cur State

	combos       services.CombinationRepository
	history      services.HistoryRepository
	combosLocal  bool
	historyLocal bool

	recs      *recommend.Result
	rosterGen uint64

	engine       *recommend.Engine
	bonus        int
	historyLimit int
	now          func() time.Time
	logger       *zap.Logger
}

// Compile-time interface guard.
var _ search.Recorder = (*Store)(nil)

// New creates a Store holding DefaultState. Call Hydrate once data is available.
func New(opts ...Option) *Store {
	s := &Store{
		cur:          DefaultState(),
		bonus:        combination.DefaultBonus,
		historyLimit: search.DefaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.engine == nil {
		s.engine = recommend.NewEngine(recommend.DefaultOptions(), s.logger)
	}
	s.combosLocal = s.combos == nil
	s.historyLocal = s.history == nil
	return s
}

// Hydrate installs the loaded roster and reads persisted collections. Read
// failures leave the collection empty and session-only.
func (s *Store) Hydrate(ctx context.Context, r models.Roster) {
	var (
		combos            []models.Combination
		history           []models.SearchHistoryItem
		comboErr, histErr error
	)
	if s.combos != nil {
		combos, comboErr = s.combos.Load(ctx)
	}
	if s.history != nil {
		history, histErr = s.history.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur.Roster = r
	s.recs = nil
	s.rosterGen++
	if comboErr != nil {
		s.degrade(collectionCombinations, "load", comboErr)
	} else if combos != nil {
		s.cur.Combinations = combos
	}
	if histErr != nil {
		s.degrade(collectionHistory, "load", histErr)
	} else if history != nil {
		s.cur.History = history
	}

	s.logger.Info("state hydrated",
		zap.Int("characters", len(r.Characters)),
		zap.Int("vehicles", len(r.Vehicles)),
		zap.Int("combinations", len(s.cur.Combinations)),
		zap.Int("history", len(s.cur.History)),
	)
}

// Replace swaps in a reloaded roster. Saved combinations keep their own
// copies of the entities they were built from.
func (s *Store) Replace(r models.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Roster = r
	s.recs = nil
	s.rosterGen++
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Roster: models.Roster{
			Characters: slices.Clone(s.cur.Roster.Characters),
			Vehicles:   slices.Clone(s.cur.Roster.Vehicles),
		},
		Filters:      s.cur.Filters,
		Combinations: slices.Clone(s.cur.Combinations),
		History:      slices.Clone(s.cur.History),
	}
}

// Roster returns the current roster. The slices must not be modified.
func (s *Store) Roster() models.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Roster
}

// SessionOnly reports whether either collection is no longer persisted.
func (s *Store) SessionOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.combosLocal || s.historyLocal
}

// Filters returns the session filters.
func (s *Store) Filters() models.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Filters
}

// SetFilters replaces the session filters.
func (s *Store) SetFilters(f models.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Filters = f
}

// MaxStats returns per-axis maxima over every character and vehicle.
func (s *Store) MaxStats() models.StatVector {
	return aggregate.ComputeMaxStats(s.Roster().All())
}

// ActiveMaxStats returns the maxima resolved through f.
func (s *Store) ActiveMaxStats(f models.AxisFilter) aggregate.ActiveMax {
	return aggregate.ComputeActiveMaxStats(s.Roster().All(), f)
}

// Sorted returns the entities of one kind ordered by f.
func (s *Store) Sorted(kind models.Kind, f models.Filters) []models.Entity {
	list := view.Filter(s.Roster().All(), view.MatchKind(kind))
	return view.SortEntities(list, f.SortMetric, f.Axes)
}

// Recommendations returns the ranked pairings for the current roster. The
// result is computed once per roster.
func (s *Store) Recommendations() recommend.Result {
	s.mu.RLock()
	if s.recs != nil {
		res := *s.recs
		s.mu.RUnlock()
		return res
	}
	r, gen := s.cur.Roster, s.rosterGen
	s.mu.RUnlock()

	res := s.engine.Compute(r.Characters, r.Vehicles)

	s.mu.Lock()
	// A Replace during Compute makes res stale.
	if s.rosterGen == gen {
		s.recs = &res
	}
	s.mu.Unlock()
	return res
}

// Search evaluates query immediately and records it when it matches anything.
func (s *Store) Search(query string) []search.Result {
	results := search.Search(query, s.Roster().All())
	if len(results) > 0 {
		s.RecordSearch(query, len(results))
	}
	return results
}

// degrade logs a persistence failure and stops persisting collection.
// Callers hold s.mu.
func (s *Store) degrade(collection, op string, err error) {
	metrics.PersistenceFailures.WithLabelValues(collection, op).Inc()
	s.logger.Warn("persistence failed, continuing in session-only mode",
		zap.String("collection", collection),
		zap.String("op", op),
		zap.Error(err),
	)
	switch collection {
	case collectionCombinations:
		s.combosLocal = true
	case collectionHistory:
		s.historyLocal = true
	}
}
