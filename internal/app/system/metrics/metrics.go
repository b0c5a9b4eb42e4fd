// Package metrics holds the Prometheus collectors for campaign operations.
//
// Collectors register with the default registry on package init and are
// served by promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JoinsTotal counts join attempts by outcome
	// (joined, not_found, not_active, full, conflict, error).
	JoinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_campaign_joins_total",
			Help: "Total number of campaign join attempts by outcome",
		},
		[]string{"outcome"},
	)

	// JoinRetriesTotal counts conditional increments that had to be retried
	// because the campaign changed between the update and the re-read.
	JoinRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecohub_campaign_join_retries_total",
			Help: "Total number of retried conditional participant increments",
		},
	)

	// TransitionsTotal counts lifecycle transitions by edge and outcome.
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecohub_campaign_transitions_total",
			Help: "Total number of campaign status transition attempts",
		},
		[]string{"from", "to", "outcome"},
	)

	// DiscoveryDuration tracks list query latency, split by whether a
	// radius constraint was applied.
	DiscoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecohub_campaign_discovery_duration_seconds",
			Help:    "Duration of campaign discovery queries in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"geo"},
	)

	// BreakerState reports the storage circuit breaker state
	// (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ecohub_storage_breaker_state",
			Help: "Storage circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// RecordJoin records one join attempt.
func RecordJoin(outcome string) {
	JoinsTotal.WithLabelValues(outcome).Inc()
}

// RecordTransition records one transition attempt.
func RecordTransition(from, to, outcome string) {
	TransitionsTotal.WithLabelValues(from, to, outcome).Inc()
}

// ObserveDiscovery records how long a discovery query took.
func ObserveDiscovery(geo bool, d time.Duration) {
	label := "false"
	if geo {
		label = "true"
	}
	DiscoveryDuration.WithLabelValues(label).Observe(d.Seconds())
}

// SetBreakerState records a breaker state change.
func SetBreakerState(name string, state int) {
	BreakerState.WithLabelValues(name).Set(float64(state))
}
