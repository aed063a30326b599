package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ResumesUploaded    prometheus.Counter
	UploadsRejected    *prometheus.CounterVec
	AnalysisRequests   *prometheus.CounterVec
	AnalysisDuration   prometheus.Histogram
	SuggestionsCreated prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ResumesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumes_uploaded_total",
			Help: "Resumes accepted by the intake endpoint.",
		}),
		UploadsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Uploads rejected before storage, by reason.",
		}, []string{"reason"}),
		AnalysisRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Analysis calls by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Wall time of the analysis call.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		SuggestionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "suggestions_created_total",
			Help: "Suggestion records persisted.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ResumesUploaded,
		m.UploadsRejected,
		m.AnalysisRequests,
		m.AnalysisDuration,
		m.SuggestionsCreated,
	)
	return m
}

// ObserveAnalysis records one analysis call.
func (m *Metrics) ObserveAnalysis(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisRequests.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

// RejectUpload counts an upload rejected for reason.
func (m *Metrics) RejectUpload(reason string) {
	if m == nil {
		return
	}
	m.UploadsRejected.WithLabelValues(reason).Inc()
}

// UploadAccepted counts a persisted resume.
func (m *Metrics) UploadAccepted() {
	if m == nil {
		return
	}
	m.ResumesUploaded.Inc()
}

// SuggestionsAdded counts persisted suggestions.
func (m *Metrics) SuggestionsAdded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SuggestionsCreated.Add(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes metrics in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
