package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the service's prometheus instruments.
type Metrics struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	latency   prometheus.Histogram
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskgate",
			Name:      "decisions_total",
			Help:      "Validation decisions by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riskgate",
			Name:      "validation_seconds",
			Help:      "End-to-end validation latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.decisions, m.latency)
	return m
}

func (m *Metrics) observe(allowed bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	m.decisions.WithLabelValues(outcome).Inc()
	m.latency.Observe(seconds)
}
