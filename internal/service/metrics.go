package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "squares"

// Metrics holds the Prometheus collectors for square placement.
type Metrics struct {
	CreatedTotal     prometheus.Counter
	ClearedTotal     prometheus.Counter
	FailuresTotal    *prometheus.CounterVec
	ReadRepairsTotal *prometheus.CounterVec
	Stored           prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Pass a fresh prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "created_total",
			Help:      "Total number of squares created",
		}),
		ClearedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cleared_total",
			Help:      "Total number of clear-all operations",
		}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "failures_total",
			Help:      "Failed operations by operation and error kind",
		}, []string{"op", "kind"}),
		ReadRepairsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "read_repairs_total",
			Help:      "Loads that degraded persisted content, by reason",
		}, []string{"reason"}),
		Stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stored",
			Help:      "Number of squares currently stored",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.CreatedTotal, m.ClearedTotal, m.FailuresTotal, m.ReadRepairsTotal, m.Stored)
	}
	return m
}

// ObserveRepair records a store read-repair. Matches store.RepairObserver.
func (m *Metrics) ObserveRepair(reason string, dropped int) {
	if m == nil {
		return
	}
	m.ReadRepairsTotal.WithLabelValues(reason).Inc()
}
