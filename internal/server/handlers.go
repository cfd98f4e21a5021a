package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/aggregate"
	"github.com/HerbHall/kartstats/internal/dataset"
	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/internal/search"
	"github.com/HerbHall/kartstats/internal/state"
	"github.com/HerbHall/kartstats/internal/view"
	"github.com/HerbHall/kartstats/pkg/models"
)

// maxBodyBytes bounds request bodies on write endpoints.
const maxBodyBytes = 64 << 10

// statBar is one metric of an entity scaled against the active maximum.
type statBar struct {
	Value   int            `json:"value"`
	Percent int            `json:"percent"`
	Band    aggregate.Band `json:"band"`
}

type entityRow struct {
	models.Entity
	Bars map[models.Metric]statBar `json:"bars"`
}

func newEntityRow(e models.Entity, f models.AxisFilter, top aggregate.ActiveMax) entityRow {
	bars := make(map[models.Metric]statBar, 4)
	for _, m := range []models.Metric{models.MetricSpeed, models.MetricAcceleration, models.MetricWeight, models.MetricHandling} {
		v := view.SortKey(e, m, f)
		bars[m] = statBar{
			Value:   v,
			Percent: aggregate.BarPercent(v, top.Value(m)),
			Band:    aggregate.BandFor(v, top.Value(m)),
		}
	}
	return entityRow{Entity: e, Bars: bars}
}

type entityListResponse struct {
	Kind    models.Kind         `json:"kind"`
	Filters models.Filters      `json:"filters"`
	Items   []entityRow         `json:"items"`
	Max     aggregate.ActiveMax `json:"activeMax"`
}

type recommendationResponse struct {
	Terrain   models.Terrain    `json:"terrain"`
	Entries   []recommend.Entry `json:"entries"`
	MaxTotals recommend.Totals  `json:"maxTotals"`
	Summary   recommend.Summary `json:"summary"`
}

type searchResponse struct {
	Query   string                     `json:"query"`
	Mode    search.Mode                `json:"mode"`
	Results []search.Result            `json:"results"`
	History []models.SearchHistoryItem `json:"history,omitempty"`
}

type addCombinationRequest struct {
	Character string `json:"character"`
	Vehicle   string `json:"vehicle"`
}

type reloadResponse struct {
	Source     string   `json:"source"`
	Characters int      `json:"characters"`
	Vehicles   int      `json:"vehicles"`
	Dropped    int      `json:"dropped"`
	Warnings   []string `json:"warnings,omitempty"`
}

// filtersFromQuery overlays the sort, speed and handling query parameters
// on the stored filters.
func (s *Server) filtersFromQuery(r *http.Request) (models.Filters, error) {
	f := s.state.Filters()
	q := r.URL.Query()
	if q.Has("sort") {
		m, err := models.ParseMetric(q.Get("sort"))
		if err != nil {
			return f, err
		}
		f.SortMetric = m
	}
	if q.Has("speed") {
		a, err := models.ParseSubAxis(q.Get("speed"))
		if err != nil {
			return f, err
		}
		f.Axes.Speed = a
	}
	if q.Has("handling") {
		a, err := models.ParseSubAxis(q.Get("handling"))
		if err != nil {
			return f, err
		}
		f.Axes.Handling = a
	}
	return f, nil
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	kind := models.KindCharacter
	if strings.HasSuffix(r.URL.Path, "/vehicles") {
		kind = models.KindVehicle
	}
	f, err := s.filtersFromQuery(r)
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	top := s.state.ActiveMaxStats(f.Axes)
	sorted := s.state.Sorted(kind, f)
	rows := make([]entityRow, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, newEntityRow(e, f.Axes, top))
	}
	writeJSON(w, http.StatusOK, entityListResponse{
		Kind:    kind,
		Filters: f,
		Items:   rows,
		Max:     top,
	})
}

func (s *Server) handleGetFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Filters())
}

func (s *Server) handlePutFilters(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SortMetric string `json:"sortMetric"`
		Axes       struct {
			Speed    string `json:"speed"`
			Handling string `json:"handling"`
		} `json:"axes"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		BadRequest(w, "invalid JSON body", r.URL.Path)
		return
	}
	var (
		f   models.Filters
		err error
	)
	if f.SortMetric, err = models.ParseMetric(body.SortMetric); err == nil {
		if f.Axes.Speed, err = models.ParseSubAxis(body.Axes.Speed); err == nil {
			f.Axes.Handling, err = models.ParseSubAxis(body.Axes.Handling)
		}
	}
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	s.state.SetFilters(f)
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleMaxStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.MaxStats())
}

func (s *Server) handleActiveStats(w http.ResponseWriter, r *http.Request) {
	f, err := s.filtersFromQuery(r)
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, s.state.ActiveMaxStats(f.Axes))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	res := s.state.Recommendations()
	raw := r.URL.Query().Get("terrain")
	if raw == "" {
		writeJSON(w, http.StatusOK, res)
		return
	}
	t, err := models.ParseTerrain(raw)
	if err != nil {
		BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{
		Terrain:   t,
		Entries:   res.For(t),
		MaxTotals: res.MaxTotals,
		Summary:   res.Summary[t],
	})
}

// handleSearch evaluates the query immediately. Debouncing belongs to the
// interactive client; a blank query returns the history view.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   q,
			Mode:    search.ModeHistory,
			Results: []search.Result{},
			History: s.state.History(),
		})
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		Mode:    search.ModeResults,
		Results: s.state.Search(q),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.History())
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.state.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	q := r.PathValue("query")
	if !s.state.RemoveHistoryItem(r.Context(), q) {
		NotFound(w, "no history entry for "+q, r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCombinations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Combinations())
}

func (s *Server) handleAddCombination(w http.ResponseWriter, r *http.Request) {
	var req addCombinationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body", r.URL.Path)
		return
	}
	if req.Character == "" || req.Vehicle == "" {
		BadRequest(w, "character and vehicle are required", r.URL.Path)
		return
	}
	c, err := s.state.AddCombination(r.Context(), req.Character, req.Vehicle)
	switch {
	case errors.Is(err, state.ErrUnknownCharacter), errors.Is(err, state.ErrUnknownVehicle):
		NotFound(w, err.Error(), r.URL.Path)
		return
	case err != nil:
		s.logger.Error("add combination failed", zap.Error(err))
		InternalError(w, "failed to save combination", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleClearCombinations(w http.ResponseWriter, r *http.Request) {
	s.state.ClearCombinations(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCombination(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.state.RemoveCombination(r.Context(), id) {
		NotFound(w, "no combination with id "+id, r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		Unavailable(w, "no dataset sources configured", r.URL.Path)
		return
	}
	res, err := s.reloader.Load(r.Context())
	if err != nil {
		s.logger.Warn("dataset reload failed", zap.Error(err))
		var le *dataset.LoadError
		if errors.As(err, &le) {
			Unavailable(w, le.Error(), r.URL.Path)
			return
		}
		InternalError(w, err.Error(), r.URL.Path)
		return
	}
	s.state.Replace(res.Roster)
	s.logger.Info("dataset reloaded",
		zap.String("source", res.Source),
		zap.Int("characters", len(res.Roster.Characters)),
		zap.Int("vehicles", len(res.Roster.Vehicles)),
	)

	warnings := make([]string, 0, len(res.Report.Warnings))
	for _, wn := range res.Report.Warnings {
		warnings = append(warnings, wn.String())
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Source:     res.Source,
		Characters: len(res.Roster.Characters),
		Vehicles:   len(res.Roster.Vehicles),
		Dropped:    len(res.Report.Dropped),
		Warnings:   warnings,
	})
}
