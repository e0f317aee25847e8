package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	auditEntriesTotal     *prometheus.CounterVec
	auditSuppressedTotal  *prometheus.CounterVec
	reportRebuildDuration prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		auditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of activity log entries stored, by action.",
		}, []string{"action"})

		auditSuppressedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_suppressed_total",
			Help: "Total number of activity events suppressed before storage, by reason.",
		}, []string{"reason"})

		reportRebuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "report_rebuild_duration_seconds",
			Help:    "Time spent rebuilding a project progress rollup.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			auditEntriesTotal,
			auditSuppressedTotal,
			reportRebuildDuration,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// AuditEntries exposes the counter for stored activity entries.
func AuditEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEntriesTotal
}

// AuditSuppressed exposes the counter for suppressed activity events.
func AuditSuppressed() *prometheus.CounterVec {
	RegisterMetrics()
	return auditSuppressedTotal
}

// ReportRebuildDuration exposes the rollup rebuild histogram.
func ReportRebuildDuration() prometheus.Histogram {
	RegisterMetrics()
	return reportRebuildDuration
}
