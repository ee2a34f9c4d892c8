// Package metrics holds the Prometheus collectors for the rewrite relay.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider call outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeProviderError = "provider_error"
	OutcomeDecodeError   = "decode_error"
)

var (
	// Rewrite responses by HTTP status
	RewriteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewrite_requests_total",
			Help: "Total number of rewrite responses by HTTP status",
		},
		[]string{"status"},
	)

	// Completion provider latency (seconds)
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rewrite_provider_duration_seconds",
			Help:    "Completion provider call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
		},
		[]string{"outcome"},
	)
)

// RecordRewrite counts one rewrite response.
func RecordRewrite(status int) {
	RewriteRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordProviderCall observes one completion provider call.
func RecordProviderCall(outcome string, d time.Duration) {
	ProviderDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
