// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operations counts core engine operations by name and outcome.
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoplist",
			Name:      "operations_total",
			Help:      "Core operations executed, labelled by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// Conflicts counts check-and-swap failures by operation. A raised rate
	// means callers are racing on the same entities and retrying.
	Conflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoplist",
			Name:      "conflicts_total",
			Help:      "Optimistic-concurrency failures, labelled by operation.",
		},
		[]string{"operation"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoplist",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Observe records one operation outcome.
func Observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Operations.WithLabelValues(operation, outcome).Inc()
}
