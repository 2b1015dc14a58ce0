package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportMetrics records report exports.
type ReportMetrics struct {
	exports  *prometheus.CounterVec
	rows     *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewReportMetrics registers the report metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	if reg == nil {
		return &ReportMetrics{}
	}
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_exports_total",
		Help: "Report exports by entity and output format.",
	}, []string{"entity", "format"})
	rows := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_rows",
		Help:    "Rows written per exported report.",
		Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
	}, []string{"entity"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_render_duration_seconds",
		Help:    "Time spent rendering a report.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})
	reg.MustRegister(exports, rows, duration)
	return &ReportMetrics{
		exports:  exports,
		rows:     rows,
		duration: duration,
	}
}

// ObserveExport records one successful export of rowCount rows.
func (m *ReportMetrics) ObserveExport(entity, format string, rowCount int, took time.Duration) {
	if m == nil || m.exports == nil {
		return
	}
	entity = normalizeLabel(entity)
	format = normalizeLabel(format)
	m.exports.WithLabelValues(entity, format).Inc()
	m.rows.WithLabelValues(entity).Observe(float64(rowCount))
	m.duration.WithLabelValues(format).Observe(took.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
