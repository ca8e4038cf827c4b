package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatches and feedback. A nil *Metrics counts nothing.
type Metrics struct {
	Dispatched *prometheus.CounterVec
	Feedback   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "squirrel_dispatch_total",
				Help: "Action dispatches routed to a handler, by action name.",
			},
			[]string{"action"},
		),
		Feedback: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "squirrel_feedback_total",
				Help: "Action feedback published, by status.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.Dispatched, m.Feedback)
	return m
}

func (m *Metrics) dispatched(action string) {
	if m != nil {
		m.Dispatched.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) feedback(status string) {
	if m != nil {
		m.Feedback.WithLabelValues(status).Inc()
	}
}
