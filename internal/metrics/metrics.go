package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdrpinto/gridpath"
)

var (
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_searches_total",
		Help: "Total number of completed searches, labelled by outcome and selection policy.",
	}, []string{"outcome", "selection"})

	ExpandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_expanded_nodes",
		Help:    "Nodes moved to the explored set per search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_duration_ms",
		Help:    "Search latency in milliseconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
	})

	StepEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_step_events_total",
		Help: "Step log events emitted, labelled by kind.",
	}, []string{"kind"})

	GridReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_grid_reloads_total",
		Help: "Grid file reloads, labelled by status.",
	}, []string{"status"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridpath_active_sessions",
		Help: "Stepping sessions currently held by the server.",
	})
)

// Outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

// ObserveResult records a finished search.
func ObserveResult(res gridpath.Result) {
	outcome := OutcomeNotFound
	if res.Found {
		outcome = OutcomeFound
	}
	Searches.WithLabelValues(outcome, res.Selection.String()).Inc()
	ExpandedNodes.Observe(float64(res.Expanded))
	SearchDuration.Observe(float64(res.Duration.Microseconds()) / 1000)

	var counts [3]int
	for _, s := range res.Steps {
		if int(s.Kind) < len(counts) {
			counts[s.Kind]++
		}
	}
	for kind, n := range counts {
		if n > 0 {
			StepEvents.WithLabelValues(gridpath.StepKind(kind).String()).Add(float64(n))
		}
	}
}

// ObserveReload records a grid reload attempt.
func ObserveReload(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	GridReloads.WithLabelValues(status).Inc()
}
