package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records outcomes of the CSV import pipeline.
type IngestMetrics struct {
	batches  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewIngestMetrics registers the import pipeline metrics on the provided
// registerer. A nil registerer yields a no-op instance.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_batches_total",
		Help: "Completed import batches.",
	}, []string{"source"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_processed_total",
		Help: "Rows successfully reconciled by the import pipeline.",
	}, []string{"source"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_failed_total",
		Help: "Rows rejected by the import pipeline.",
	}, []string{"source"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_batch_duration_seconds",
		Help:    "Duration of import batches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	reg.MustRegister(batches, rows, failures, duration)
	return &IngestMetrics{
		batches:  batches,
		rows:     rows,
		failures: failures,
		duration: duration,
	}
}

// ObserveBatch records one finished batch with its row outcomes.
func (m *IngestMetrics) ObserveBatch(source string, processed, failed int, elapsed time.Duration) {
	if m == nil || m.batches == nil {
		return
	}
	label := normalizeLabel(source)
	m.batches.WithLabelValues(label).Inc()
	m.rows.WithLabelValues(label).Add(float64(processed))
	m.failures.WithLabelValues(label).Add(float64(failed))
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

func normalizeLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
