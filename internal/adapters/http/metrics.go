package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the webhook's Prometheus collectors.
type Metrics struct {
	Requests   *prometheus.CounterVec
	Duration   prometheus.Histogram
	NodeVisits *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voxflow_webhook_requests_total",
				Help: "Webhook requests handled, by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "voxflow_interpret_duration_seconds",
				Help: "Time spent resolving and interpreting one callback",
			},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voxflow_node_visits_total",
				Help: "Flow nodes interpreted, by node type",
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(m.Requests, m.Duration, m.NodeVisits)
	return m
}

// ObserveNode is an interp.Observer that counts node visits.
func (m *Metrics) ObserveNode(nodeID, nodeType string) {
	m.NodeVisits.WithLabelValues(nodeType).Inc()
}
