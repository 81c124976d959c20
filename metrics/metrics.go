package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tournament"

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Bracket Metrics
var (
	BracketsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brackets_generated_total",
			Help:      "Brackets generated, by format",
		},
		[]string{"format"},
	)

	MatchMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_mutations_total",
			Help:      "Match writes by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	MatchMutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_mutation_duration_seconds",
			Help:      "Time spent applying a match write, lock wait included",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	TeamsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teams_dropped_total",
			Help:      "Teams that found no open slot downstream after a reported result",
		},
	)
)

// Live update Metrics
var (
	LiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscribers",
			Help:      "Currently registered bracket subscribers",
		},
	)

	SnapshotsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Bracket snapshots delivered to subscribers",
		},
	)
)

// Payout Metrics
var (
	PayoutsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payouts_settled_total",
			Help:      "Tournaments settled with a payout",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notification batches that could not be enqueued",
		},
		[]string{"notifier"},
	)

	ArchiveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_failures_total",
			Help:      "Final bracket snapshots that could not be archived",
		},
	)
)

// ObserveOperation records one match or bracket write started at start.
func ObserveOperation(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	MatchMutations.WithLabelValues(operation, outcome).Inc()
	MatchMutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
