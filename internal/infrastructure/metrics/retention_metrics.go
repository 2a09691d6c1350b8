// Package metrics contains Prometheus collectors for background work.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RetentionMetrics contains Prometheus metrics for the audit log
// retention worker.
type RetentionMetrics struct {
	PurgedTotal    prometheus.Counter
	PurgeErrors    prometheus.Counter
	PurgeDuration  prometheus.Histogram
	PurgeBatchSize prometheus.Histogram
	LastPurgeTime  prometheus.Gauge
	PurgeRunsTotal *prometheus.CounterVec
}

// NewRetentionMetrics creates and registers retention metrics with the given registerer.
func NewRetentionMetrics(registerer prometheus.Registerer) *RetentionMetrics {
	metrics := &RetentionMetrics{
		PurgedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_audit_retention_purged_total",
			Help: "Total number of expired audit log entries purged",
		}),
		PurgeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_audit_retention_errors_total",
			Help: "Total number of failed purge passes",
		}),
		PurgeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_audit_retention_purge_duration_seconds",
			Help:    "Time taken by a full purge pass",
			Buckets: prometheus.DefBuckets,
		}),
		PurgeBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_audit_retention_batch_size",
			Help:    "Number of entries removed per storage call",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000},
		}),
		LastPurgeTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gatehouse_audit_retention_last_purge_timestamp_seconds",
			Help: "Unix timestamp of the last completed purge pass",
		}),
		PurgeRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatehouse_audit_retention_runs_total",
				Help: "Total number of purge passes",
			},
			[]string{"status"}, // status: success/failed
		),
	}

	registerer.MustRegister(
		metrics.PurgedTotal,
		metrics.PurgeErrors,
		metrics.PurgeDuration,
		metrics.PurgeBatchSize,
		metrics.LastPurgeTime,
		metrics.PurgeRunsTotal,
	)

	return metrics
}
