// Package metrics holds the Prometheus collectors exposed on /metrics.
//
// Metrics:
//   - goaltrack_goals_created_total{frequency}
//   - goaltrack_goals_deleted_total
//   - goaltrack_checkins_total{frequency}
//   - goaltrack_exports_total{mode}
//   - goaltrack_http_requests_total{method,route,status}
//   - goaltrack_http_request_duration_seconds{method,route}
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goaltrack"

var (
	GoalsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goals_created_total",
			Help:      "Total number of goals created",
		},
		[]string{"frequency"},
	)

	GoalsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goals_deleted_total",
			Help:      "Total number of goals deleted",
		},
	)

	CheckIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Total number of progress check-ins written",
		},
		[]string{"frequency"},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of goal exports",
		},
		[]string{"mode"}, // "stream" or "archive"
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
