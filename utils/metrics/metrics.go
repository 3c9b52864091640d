package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for TaskOperations
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// HTTPRequestDuration tracks request latency per route template
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// TaskOperations counts task service calls by outcome
	TaskOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Total number of task service operations",
		},
		[]string{"operation", "outcome"},
	)

	// OverdueTasks is refreshed by the overdue sweep job
	OverdueTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tasks_overdue",
			Help: "Number of tasks past their due date that are not done",
		},
	)
)

// RecordHTTPRequestDuration records the latency of a served request
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTaskOperation increments the operation counter
func RecordTaskOperation(operation, outcome string) {
	TaskOperations.WithLabelValues(operation, outcome).Inc()
}

// SetOverdueTasks publishes the latest overdue count
func SetOverdueTasks(count int64) {
	OverdueTasks.Set(float64(count))
}
