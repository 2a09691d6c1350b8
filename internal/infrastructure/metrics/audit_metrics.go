package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuditMetrics contains Prometheus metrics for audit trail writes.
type AuditMetrics struct {
	EntriesRecorded prometheus.Counter
	RecordFailures  prometheus.Counter
	EntriesDeleted  prometheus.Counter
}

// NewAuditMetrics creates and registers audit metrics with the given registerer.
func NewAuditMetrics(registerer prometheus.Registerer) *AuditMetrics {
	metrics := &AuditMetrics{
		EntriesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_audit_entries_recorded_total",
			Help: "Total number of audit log entries recorded",
		}),
		RecordFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_audit_record_failures_total",
			Help: "Total number of failed audit log writes",
		}),
		EntriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_audit_entries_deleted_total",
			Help: "Total number of audit log entries removed by batch deletion",
		}),
	}

	registerer.MustRegister(
		metrics.EntriesRecorded,
		metrics.RecordFailures,
		metrics.EntriesDeleted,
	)

	return metrics
}
