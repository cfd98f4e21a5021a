// Package recommend ranks every character and vehicle pairing per terrain and
// selects a diversity-constrained top list.
package recommend

import (
	"cmp"
	"slices"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/metrics"
	"github.com/HerbHall/kartstats/pkg/models"
)

// Defaults for Options.
const (
	DefaultLimit      = 10
	DefaultVehicleCap = 3
)

// Weights are the score coefficients. Weight is subtracted.
type Weights struct {
	Speed        float64 `mapstructure:"speed" json:"speed"`
	Handling     float64 `mapstructure:"handling" json:"handling"`
	Acceleration float64 `mapstructure:"acceleration" json:"acceleration"`
	Weight       float64 `mapstructure:"weight" json:"weight"`
}

// DefaultWeights returns 0.4 speed, 0.3 handling, 0.2 acceleration, 0.1 weight.
func DefaultWeights() Weights {
	return Weights{Speed: 0.4, Handling: 0.3, Acceleration: 0.2, Weight: 0.1}
}

// Options tunes the selection.
type Options struct {
	Limit      int     `mapstructure:"limit"`
	VehicleCap int     `mapstructure:"vehicle_cap"`
	Weights    Weights `mapstructure:"weights"`
}

// DefaultOptions returns the standard top-10, three-per-vehicle selection.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, VehicleCap: DefaultVehicleCap, Weights: DefaultWeights()}
}

// Totals are the summed character and vehicle stats of a pairing.
type Totals struct {
	Speed        int `json:"speed"`
	Handling     int `json:"handling"`
	Acceleration int `json:"acceleration"`
	Weight       int `json:"weight"`
}

// Entry is one ranked pairing for a terrain.
type Entry struct {
	ID                string         `json:"id"`
	Rank              int            `json:"rank"`
	Terrain           models.Terrain `json:"terrain"`
	Character         models.Entity  `json:"character"`
	Vehicle           models.Entity  `json:"vehicle"`
	Score             float64        `json:"score"`
	TotalSpeed        int            `json:"totalSpeed"`
	TotalHandling     int            `json:"totalHandling"`
	TotalAcceleration int            `json:"totalAcceleration"`
	TotalWeight       int            `json:"totalWeight"`
}

// Summary describes the score distribution of the whole cross product for a terrain.
type Summary struct {
	Pairs  int     `json:"pairs"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Max    float64 `json:"max"`
}

// Result holds the ranked lists for every terrain.
type Result struct {
	ByTerrain map[models.Terrain][]Entry `json:"byTerrain"`
	MaxTotals Totals                     `json:"maxTotals"`
	Summary   map[models.Terrain]Summary `json:"summary"`
}

// For returns the ranked list for a terrain.
func (r Result) For(t models.Terrain) []Entry {
	return r.ByTerrain[t]
}

// Engine scores pairings with a fixed set of options.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// NewEngine creates an engine. Non-positive limits and an all-zero weight set
// fall back to the defaults. A nil logger disables logging.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.VehicleCap <= 0 {
		opts.VehicleCap = DefaultVehicleCap
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts, logger: logger}
}

// ComputeRecommendations runs the default engine.
func ComputeRecommendations(characters, vehicles []models.Entity) Result {
	return NewEngine(DefaultOptions(), nil).Compute(characters, vehicles)
}

// Compute scores the full cross product for each terrain and selects the top
// entries. Maximum totals span every pairing on every terrain and are floored
// at 1. If either list is empty all terrain lists are empty.
func (e *Engine) Compute(characters, vehicles []models.Entity) Result {
	res := Result{
		ByTerrain: make(map[models.Terrain][]Entry, 3),
		MaxTotals: Totals{Speed: 1, Handling: 1, Acceleration: 1, Weight: 1},
		Summary:   make(map[models.Terrain]Summary, 3),
	}

	metrics.RecommendationRuns.Inc()
	for _, terrain := range models.Terrains() {
		if len(characters) == 0 || len(vehicles) == 0 {
			res.ByTerrain[terrain] = []Entry{}
			res.Summary[terrain] = Summary{}
			continue
		}

		scored := e.scoreAll(characters, vehicles, terrain)
		metrics.RecommendationPairs.Observe(float64(len(scored)))
		for i := range scored {
			res.MaxTotals.Speed = max(res.MaxTotals.Speed, scored[i].TotalSpeed)
			res.MaxTotals.Handling = max(res.MaxTotals.Handling, scored[i].TotalHandling)
			res.MaxTotals.Acceleration = max(res.MaxTotals.Acceleration, scored[i].TotalAcceleration)
			res.MaxTotals.Weight = max(res.MaxTotals.Weight, scored[i].TotalWeight)
		}

		res.Summary[terrain] = summarize(scored)

		// Stable sort keeps cross-product order for equal scores.
		slices.SortStableFunc(scored, func(a, b Entry) int {
			return cmp.Compare(b.Score, a.Score)
		})

		top := e.selectDiverse(scored)
		for i := range top {
			top[i].Rank = i + 1
			top[i].ID = entryID(terrain, top[i].Character, top[i].Vehicle)
		}
		res.ByTerrain[terrain] = top

		e.logger.Debug("recommendations computed",
			zap.String("terrain", string(terrain)),
			zap.Int("pairs", len(scored)),
			zap.Int("selected", len(top)),
		)
	}
	return res
}

// Score computes the entry for a single pairing on a terrain.
func (e *Engine) Score(c, v models.Entity, terrain models.Terrain) Entry {
	axis := terrain.SubAxis()
	ent := Entry{
		Terrain:           terrain,
		Character:         c,
		Vehicle:           v,
		TotalSpeed:        c.Stats.Speed.Get(axis) + v.Stats.Speed.Get(axis),
		TotalHandling:     c.Stats.Handling.Get(axis) + v.Stats.Handling.Get(axis),
		TotalAcceleration: c.Stats.Acceleration + v.Stats.Acceleration,
		TotalWeight:       c.Stats.Weight + v.Stats.Weight,
	}
	w := e.opts.Weights
	ent.Score = w.Speed*float64(ent.TotalSpeed) +
		w.Handling*float64(ent.TotalHandling) +
		w.Acceleration*float64(ent.TotalAcceleration) -
		w.Weight*float64(ent.TotalWeight)
	return ent
}

// scoreAll builds entries in cross-product order: characters outer, vehicles inner.
func (e *Engine) scoreAll(characters, vehicles []models.Entity, terrain models.Terrain) []Entry {
	out := make([]Entry, 0, len(characters)*len(vehicles))
	for i := range characters {
		for j := range vehicles {
			out = append(out, e.Score(characters[i], vehicles[j], terrain))
		}
	}
	return out
}

// selectDiverse picks up to Limit entries from the score-sorted list. The
// first pass accepts a pairing only while its vehicle is under the cap; the
// second pass backfills from the top ignoring the cap. The result keeps the
// sorted order, so scores are non-increasing.
func (e *Engine) selectDiverse(sorted []Entry) []Entry {
	limit := min(e.opts.Limit, len(sorted))
	picked := make([]bool, len(sorted))
	perVehicle := make(map[string]int)
	n := 0

	for i := 0; i < len(sorted) && n < limit; i++ {
		name := sorted[i].Vehicle.LocalName
		if perVehicle[name] >= e.opts.VehicleCap {
			continue
		}
		perVehicle[name]++
		picked[i] = true
		n++
	}

	for i := 0; i < len(sorted) && n < limit; i++ {
		if !picked[i] {
			picked[i] = true
			n++
		}
	}

	out := make([]Entry, 0, n)
	for i := range sorted {
		if picked[i] {
			out = append(out, sorted[i])
		}
	}
	return out
}

func summarize(entries []Entry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	scores := make(stats.Float64Data, len(entries))
	for i := range entries {
		scores[i] = entries[i].Score
	}

	s := Summary{Pairs: len(entries)}
	// Errors only occur on empty input, which is excluded above.
	s.Mean, _ = scores.Mean()
	s.Median, _ = scores.Median()
	s.StdDev, _ = scores.StandardDeviation()
	s.Max, _ = scores.Max()
	return s
}

// entryID joins terrain and both local names with dashes.
func entryID(t models.Terrain, c, v models.Entity) string {
	return string(t) + "-" + c.LocalName + "-" + v.LocalName
}
