package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the interceptor does. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Enqueued *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
	Shipped  *prometheus.CounterVec
}

// NewMetrics registers the audit counters with reg. A nil reg creates
// unregistered collectors, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Enqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_records_enqueued_total",
				Help: "Audit records added to a commit, by action.",
			},
			[]string{"action"},
		),
		Skipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_records_skipped_total",
				Help: "Mutations whose audit record could not be built, by entity type.",
			},
			[]string{"entity_type"},
		),
		Shipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audit_records_shipped_total",
				Help: "Committed audit records handed to sinks, by result.",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) enqueued(action string) {
	if m != nil {
		m.Enqueued.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) skipped(entityType string) {
	if m != nil {
		m.Skipped.WithLabelValues(entityType).Inc()
	}
}

func (m *Metrics) shipped(result string, n int) {
	if m != nil {
		m.Shipped.WithLabelValues(result).Add(float64(n))
	}
}
