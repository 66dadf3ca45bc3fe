// Package metrics holds the prometheus collectors exported by wfx serve.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xrsl/wfx/pkg/score"
)

const namespace = "wfx"

// Outcome labels for the analyses counter.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Metrics owns a private registry so tests and multiple servers never
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	analyses    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	topMatch    *prometheus.HistogramVec
	recommended *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Briefs analyzed, by profile and outcome.",
		}, []string{"profile", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent extracting and scoring one brief.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"profile"}),
		topMatch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "top_match_percentage",
			Help:      "Match percentage of the first-ranked workflow.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}, []string{"profile"}),
		recommended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Times a workflow was ranked first and recommended.",
		}, []string{"workflow"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses,
		m.duration,
		m.topMatch,
		m.recommended,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAnalysis records a successful analysis.
func (m *Metrics) ObserveAnalysis(a *score.Analysis, elapsed time.Duration) {
	m.analyses.WithLabelValues(a.Profile, OutcomeOK).Inc()
	m.duration.WithLabelValues(a.Profile).Observe(elapsed.Seconds())

	top, ok := a.Top()
	if !ok {
		return
	}
	m.topMatch.WithLabelValues(a.Profile).Observe(top.MatchPercentage)
	if top.Recommended {
		m.recommended.WithLabelValues(top.Workflow).Inc()
	}
}

// ObserveRejected records a brief that could not be analyzed.
func (m *Metrics) ObserveRejected(profile string) {
	m.analyses.WithLabelValues(profile, OutcomeRejected).Inc()
}
