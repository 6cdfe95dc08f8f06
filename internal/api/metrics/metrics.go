// Package metrics defines and registers all custom Prometheus metrics for the
// credit scoring API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credit"

// ── Scoring metrics ───────────────────────────────────────────────────────────

// ScoresComputedTotal counts completed scoring computations.
// Label:
//   - tier: the resulting risk band number ("1" … "5")
var ScoresComputedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_computed_total",
		Help:      "Total number of credit scores computed, by risk tier.",
	},
	[]string{"tier"},
)

// ScoringErrorsTotal counts scoring requests that failed.
// Label:
//   - reason: short description of the failure (e.g. "client_not_found", "store_error", "locked")
var ScoringErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoring_errors_total",
		Help:      "Total number of scoring requests that failed.",
	},
	[]string{"reason"},
)

// ScoringDuration measures how long a single scoring computation takes,
// including the store reads.
var ScoringDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_duration_seconds",
		Help:      "Duration of score computation from request to result.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ScoresPersistedTotal counts credit score writes back to the client profile.
var ScoresPersistedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_persisted_total",
		Help:      "Total number of credit scores persisted onto client profiles.",
	},
)

// ── Data synthesis metrics ────────────────────────────────────────────────────

// SeedRunsTotal counts full dataset regenerations.
var SeedRunsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_runs_total",
		Help:      "Total number of dummy dataset regenerations.",
	},
)

// TransactionsCreatedTotal counts transactions written through the API,
// whether recorded manually or synthesized.
// Label:
//   - category: "Account" or "Financial"
var TransactionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions created, by category.",
	},
	[]string{"category"},
)
