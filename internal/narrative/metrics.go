package narrative

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the narrative collaborator.
type Metrics struct {
	// Calls by result ("ok", "error", "invalid", "short_circuit")
	Calls *prometheus.CounterVec

	// End-to-end generation latency
	Latency prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all narrative metrics registered.
func NewMetrics() *Metrics {
	return &Metrics{
		Calls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cna_narrative_calls_total",
			Help: "Narrative generation calls by result",
		}, []string{"result"}),

		Latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cna_narrative_duration_seconds",
			Help:    "Duration of narrative generation calls",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
	}
}

// IncCall records a call result.
func (m *Metrics) IncCall(result string) {
	if m != nil {
		m.Calls.WithLabelValues(result).Inc()
	}
}

// ObserveLatency records one call's duration.
func (m *Metrics) ObserveLatency(d time.Duration) {
	if m != nil {
		m.Latency.Observe(d.Seconds())
	}
}
