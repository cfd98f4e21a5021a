package dataset

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/HerbHall/kartstats/internal/metrics"
	"github.com/HerbHall/kartstats/pkg/models"
)

// Result is a validated roster and the source that produced it.
type Result struct {
	Roster models.Roster
	Source string
	Report Report
}

// Loader tries each source in order and returns the first roster that has
// at least one character and one vehicle after validation. Concurrent calls
// to Load share a single in-flight attempt.
type Loader struct {
	sources []Source
	logger  *zap.Logger
	group   singleflight.Group
}

// NewLoader creates a Loader. Sources are tried in the given order.
func NewLoader(logger *zap.Logger, sources ...Source) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{sources: sources, logger: logger}
}

// Load returns the first usable roster. If every source fails it returns a
// *LoadError describing each attempt. The shared attempt ignores the
// cancellation of any single caller; a caller whose ctx ends stops waiting
// and gets ctx.Err() while the others still receive the result.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	ch := l.group.DoChan("load", func() (any, error) {
		return l.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Shared {
			l.logger.Debug("joined in-flight dataset load")
		}
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

func (l *Loader) load(ctx context.Context) (Result, error) {
	loadErr := &LoadError{}
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			loadErr.Attempts = append(loadErr.Attempts, fmt.Errorf("%s: %w", src.Name(), err))
			break
		}

		raw, err := src.Load(ctx)
		if err != nil {
			metrics.DatasetLoads.WithLabelValues(src.Name(), "error").Inc()
			l.logger.Warn("dataset source failed", zap.String("source", src.Name()), zap.Error(err))
			loadErr.Attempts = append(loadErr.Attempts, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		r, rep := Validate(raw)
		for _, w := range rep.Dropped {
			l.logger.Warn("dropped invalid entity", zap.String("source", src.Name()), zap.Stringer("problem", w))
		}
		for _, w := range rep.Warnings {
			l.logger.Info("validation warning", zap.String("source", src.Name()), zap.Stringer("warning", w))
		}

		if r.Empty() {
			metrics.DatasetLoads.WithLabelValues(src.Name(), "empty").Inc()
			err := fmt.Errorf("%s: %w (%d characters, %d vehicles)", src.Name(), ErrEmptyRoster, len(r.Characters), len(r.Vehicles))
			l.logger.Warn("dataset source empty", zap.Error(err))
			loadErr.Attempts = append(loadErr.Attempts, err)
			continue
		}

		metrics.DatasetLoads.WithLabelValues(src.Name(), "ok").Inc()
		l.logger.Info("dataset loaded",
			zap.String("source", src.Name()),
			zap.Int("characters", len(r.Characters)),
			zap.Int("vehicles", len(r.Vehicles)),
			zap.Int("warnings", len(rep.Warnings)),
			zap.Int("dropped", len(rep.Dropped)),
		)
		return Result{Roster: r, Source: src.Name(), Report: rep}, nil
	}
	return Result{}, loadErr
}
