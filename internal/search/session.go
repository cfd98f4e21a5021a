package search

import (
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/metrics"
	"github.com/HerbHall/kartstats/pkg/models"
)

// Mode tells the presenter what to show for an Update.
type Mode string

const (
	// ModeHistory means the query was blank: show history, no results.
	ModeHistory Mode = "history"
	// ModeResults means Results holds the evaluated matches.
	ModeResults Mode = "results"
)

// Update is published once per evaluated or cleared query.
type Update struct {
	Generation uint64   `json:"generation"`
	Query      string   `json:"query"`
	Mode       Mode     `json:"mode"`
	Results    []Result `json:"results"`
}

// Recorder receives queries that produced at least one result.
type Recorder interface {
	RecordSearch(query string, resultCount int)
}

// EntitySource returns the entity list a query is evaluated against.
type EntitySource func() []models.Entity

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebouncer replaces the default wall-clock debouncer.
func WithDebouncer(d *Debouncer) SessionOption {
	return func(s *Session) { s.debouncer = d }
}

// WithRecorder sets where non-empty searches are recorded.
func WithRecorder(r Recorder) SessionOption {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// Session drives interactive search: it debounces submitted queries,
// evaluates only the survivor of each burst and publishes Updates.
type Session struct {
	source    EntitySource
	publish   func(Update)
	debouncer *Debouncer
	recorder  Recorder
	logger    *zap.Logger
}

// NewSession creates a Session that evaluates against source and passes
// every Update to publish.
func NewSession(source EntitySource, publish func(Update), opts ...SessionOption) *Session {
	s := &Session{source: source, publish: publish}
	for _, opt := range opts {
		opt(s)
	}
	if s.debouncer == nil {
		s.debouncer = NewDebouncer(DefaultDelay, nil)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Submit handles one keystroke's worth of input. A blank query cancels any
// pending evaluation and publishes a history Update immediately. Anything else
// is debounced.
func (s *Session) Submit(query string) uint64 {
	if strings.TrimSpace(query) == "" {
		gen := s.debouncer.Cancel()
		s.publish(Update{Generation: gen, Query: query, Mode: ModeHistory, Results: []Result{}})
		return gen
	}
	return s.debouncer.Trigger(func(gen uint64) { s.evaluate(gen, query) })
}

// Cancel drops any pending evaluation without publishing.
func (s *Session) Cancel() {
	s.debouncer.Cancel()
}

func (s *Session) evaluate(gen uint64, query string) {
	if !s.debouncer.IsCurrent(gen) {
		metrics.SearchEvaluations.WithLabelValues("stale").Inc()
		return
	}

	results := Search(query, s.source())

	// A newer request may have arrived while evaluating.
	if !s.debouncer.IsCurrent(gen) {
		metrics.SearchEvaluations.WithLabelValues("stale").Inc()
		s.logger.Debug("discarding stale search", zap.String("query", query), zap.Uint64("generation", gen))
		return
	}

	if len(results) == 0 {
		metrics.SearchEvaluations.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchEvaluations.WithLabelValues("results").Inc()
		if s.recorder != nil {
			s.recorder.RecordSearch(query, len(results))
		}
	}

	s.logger.Debug("search evaluated",
		zap.String("query", query),
		zap.Int("results", len(results)),
		zap.Uint64("generation", gen),
	)
	s.publish(Update{Generation: gen, Query: query, Mode: ModeResults, Results: results})
}
