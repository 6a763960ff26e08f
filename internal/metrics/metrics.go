// Package metrics holds the Prometheus collectors of the notes API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	// noteOperationsTotal counts note operations by operation and result
	noteOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notes_operations_total",
		Help: "Total note operations by operation and result",
	}, []string{"operation", "result"})

	// noteOperationDuration tracks store round-trip latency
	noteOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notes_operation_duration_seconds",
		Help:    "Note operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"operation"})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notes_events_total",
		Help: "Note events by type and delivery outcome",
	}, []string{"type", "outcome"})
)

// ObserveOperation records one finished note operation.
func ObserveOperation(operation, result string, started time.Time) {
	noteOperationsTotal.WithLabelValues(operation, result).Inc()
	noteOperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// CountRejected records a request turned away before reaching the store.
func CountRejected(operation string) {
	noteOperationsTotal.WithLabelValues(operation, ResultInvalid).Inc()
}

func ObserveEvent(eventType, outcome string) {
	eventsTotal.WithLabelValues(eventType, outcome).Inc()
}
