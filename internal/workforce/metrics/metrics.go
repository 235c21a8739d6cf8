package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the workforce module.
type Metrics struct {
	// Datasets imported, by outcome ("ok", "rejected")
	DatasetImports *prometheus.CounterVec

	// Snapshot recomputations and their latency
	SnapshotsComputed prometheus.Counter
	AggregateLatency  prometheus.Histogram

	// Snapshot cache access by result ("hit", "miss", "error")
	SnapshotCacheAccess *prometheus.CounterVec
}

// New creates a Metrics instance with all workforce module metrics registered.
func New() *Metrics {
	return &Metrics{
		DatasetImports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cna_dataset_imports_total",
			Help: "Total dataset import attempts by outcome",
		}, []string{"outcome"}),

		SnapshotsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cna_snapshots_computed_total",
			Help: "Total aggregate snapshot computations",
		}),

		AggregateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cna_aggregate_duration_seconds",
			Help:    "Duration of aggregate snapshot computation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		SnapshotCacheAccess: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cna_snapshot_cache_access_total",
			Help: "Snapshot cache accesses by result",
		}, []string{"result"}),
	}
}

// IncImport records an import attempt.
func (m *Metrics) IncImport(outcome string) {
	if m != nil {
		m.DatasetImports.WithLabelValues(outcome).Inc()
	}
}

// ObserveAggregate records one snapshot computation.
func (m *Metrics) ObserveAggregate(d time.Duration) {
	if m != nil {
		m.SnapshotsComputed.Inc()
		m.AggregateLatency.Observe(d.Seconds())
	}
}

// IncCacheAccess records a snapshot cache access result.
func (m *Metrics) IncCacheAccess(result string) {
	if m != nil {
		m.SnapshotCacheAccess.WithLabelValues(result).Inc()
	}
}
