package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/dataset"
	"github.com/HerbHall/kartstats/internal/state"
	"github.com/HerbHall/kartstats/internal/version"
)

// Reloader produces a fresh roster for POST /api/v1/reload.
type Reloader interface {
	Load(ctx context.Context) (dataset.Result, error)
}

// Options tunes the HTTP layer.
type Options struct {
	// SearchRate is the per-client search budget in requests per second.
	// Zero disables throttling.
	SearchRate  float64
	SearchBurst int
}

// Server is the kartstats HTTP API.
type Server struct {
	httpServer *http.Server
	state      *state.Store
	reloader   Reloader
	limiter    *clientLimiter
	logger     *zap.Logger
	mux        *http.ServeMux

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a new Server instance. reloader may be nil, in which case
// the reload endpoint reports the dataset as unavailable.
func New(addr string, st *state.Store, reloader Reloader, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		state:    st,
		reloader: reloader,
		limiter:  newClientLimiter(opts.SearchRate, opts.SearchBurst),
		logger:   logger,
		mux:      mux,
		stop:     make(chan struct{}),
	}

	s.registerRoutes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	s.mux.HandleFunc("GET /api/v1/characters", s.handleEntities)
	s.mux.HandleFunc("GET /api/v1/vehicles", s.handleEntities)
	s.mux.HandleFunc("GET /api/v1/filters", s.handleGetFilters)
	s.mux.HandleFunc("PUT /api/v1/filters", s.handlePutFilters)
	s.mux.HandleFunc("GET /api/v1/stats/max", s.handleMaxStats)
	s.mux.HandleFunc("GET /api/v1/stats/active", s.handleActiveStats)
	s.mux.HandleFunc("GET /api/v1/recommendations", s.handleRecommendations)

	s.mux.HandleFunc("GET /api/v1/search", s.limiter.wrap(s.handleSearch))
	s.mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	s.mux.HandleFunc("DELETE /api/v1/history", s.handleClearHistory)
	s.mux.HandleFunc("DELETE /api/v1/history/{query}", s.handleRemoveHistory)

	s.mux.HandleFunc("GET /api/v1/combinations", s.handleCombinations)
	s.mux.HandleFunc("POST /api/v1/combinations", s.handleAddCombination)
	s.mux.HandleFunc("DELETE /api/v1/combinations", s.handleClearCombinations)
	s.mux.HandleFunc("DELETE /api/v1/combinations/{id}", s.handleRemoveCombination)

	s.mux.HandleFunc("POST /api/v1/reload", s.handleReload)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	go s.limiter.run(s.stop)
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	s.stopOnce.Do(func() { close(s.stop) })
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Kartstats-Version", version.Short())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	r := s.state.Roster()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"service":     "kartstats",
		"version":     version.Map(),
		"characters":  len(r.Characters),
		"vehicles":    len(r.Vehicles),
		"sessionOnly": s.state.SessionOnly(),
	})
}
