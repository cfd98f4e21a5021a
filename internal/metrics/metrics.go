// Package metrics exposes Prometheus instrumentation for the computation layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRuns counts full recommendation computations.
	RecommendationRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kartstats",
		Name:      "recommendation_runs_total",
		Help:      "Number of recommendation computations over the full cross product.",
	})

	// RecommendationPairs records the cross-product size per computation.
	RecommendationPairs = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kartstats",
		Name:      "recommendation_pairs",
		Help:      "Character x vehicle pairs scored per terrain.",
		Buckets:   []float64{0, 10, 100, 500, 1000, 5000, 10000},
	})

	// SearchEvaluations counts search evaluations by outcome
	// (results, empty, stale).
	SearchEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kartstats",
		Name:      "search_evaluations_total",
		Help:      "Search evaluations by outcome.",
	}, []string{"outcome"})

	// DatasetLoads counts dataset load attempts by source and result.
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kartstats",
		Name:      "dataset_loads_total",
		Help:      "Dataset load attempts by source and result.",
	}, []string{"source", "result"})

	// PersistenceFailures counts failed reads or writes of saved collections.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kartstats",
		Name:      "persistence_failures_total",
		Help:      "Failed persistence operations by collection and operation.",
	}, []string{"collection", "op"})
)
