package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// durationBucketBoundaries covers 1ms to 60s, the range a single-file
// static analysis call is expected to fall within.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// AnalysisMetrics holds the Prometheus instruments describing the
// orchestrator's request rate, error rate, and duration (a RED triple)
// plus a counter for fallback-walker usage (§6, §7).
type AnalysisMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	fallbackTotal   prometheus.Counter
}

// NewAnalysisMetrics registers the analyzer core's instruments on reg. A
// nil reg is valid — callers that don't want instruments exposed pass
// prometheus.NewRegistry() and simply never serve it.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watttrace_analysis_requests_total",
			Help: "Total number of analyze calls, by language.",
		}, []string{"language"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "watttrace_analysis_duration_seconds",
			Help:    "Analyze call duration in seconds, by language.",
			Buckets: durationBucketBoundaries,
		}, []string{"language"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watttrace_analysis_errors_total",
			Help: "Total number of analyze calls that could not detect a language.",
		}, []string{"reason"}),
		fallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watttrace_fallback_walker_total",
			Help: "Total number of analyses that used the textual fallback walker instead of a parse tree.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration, m.errorsTotal, m.fallbackTotal)
	}

	return m
}

// RecordRequest records one completed analyze call. Safe to call on a
// nil receiver (no-op), so callers may construct an Analyzer without
// wiring metrics.
func (m *AnalysisMetrics) RecordRequest(language string, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(language).Inc()
	m.requestDuration.WithLabelValues(language).Observe(duration.Seconds())
}

// RecordUndetectable records a call that could not determine a language.
func (m *AnalysisMetrics) RecordUndetectable() {
	if m == nil {
		return
	}

	m.errorsTotal.WithLabelValues("undetectable_language").Inc()
}

// RecordFallback records a call that used the textual fallback walker.
func (m *AnalysisMetrics) RecordFallback() {
	if m == nil {
		return
	}

	m.fallbackTotal.Inc()
}
