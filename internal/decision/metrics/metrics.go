// Package metrics provides observability for the decision module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module. A nil *Metrics is
// a valid no-op, so tests never need a registry.
type Metrics struct {
	// Verdict outcomes by status and engine mode
	VerdictOutcome *prometheus.CounterVec

	// Overall decision pipeline latency
	DecideLatency prometheus.Histogram
}

// New creates a Metrics instance with all decision module metrics registered.
func New() *Metrics {
	return &Metrics{
		VerdictOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bidpilot_decision_verdicts_total",
			Help: "Total verdict outcomes by status and engine mode",
		}, []string{"status", "mode"}),

		DecideLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bidpilot_decision_duration_seconds",
			Help:    "Duration of the full decision pipeline, evaluation through report assembly",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementVerdict records a verdict outcome.
func (m *Metrics) IncrementVerdict(status, mode string) {
	if m != nil {
		m.VerdictOutcome.WithLabelValues(status, mode).Inc()
	}
}

// ObserveDecideLatency records the total pipeline duration.
func (m *Metrics) ObserveDecideLatency(d time.Duration) {
	if m != nil {
		m.DecideLatency.Observe(d.Seconds())
	}
}
