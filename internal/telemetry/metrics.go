package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector rolemap exports. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Rebuilds        *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	SimulationTicks prometheus.Histogram
	SkippedEdges    *prometheus.CounterVec
	Signals         *prometheus.CounterVec
	Analyses        *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	f := promauto.With(m.registry)

	m.Rebuilds = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolemap_view_rebuilds_total",
			Help: "Total number of diagram rebuilds",
		},
		[]string{"view"},
	)
	m.RenderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rolemap_render_duration_seconds",
			Help:    "Time spent building, laying out and drawing a diagram",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"view"},
	)
	m.SimulationTicks = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rolemap_simulation_ticks",
			Help:    "Force simulation ticks run before halting",
			Buckets: []float64{10, 50, 100, 200, 300},
		},
	)
	m.SkippedEdges = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolemap_dangling_edges_total",
			Help: "Edges skipped at draw time because an endpoint was missing",
		},
		[]string{"view"},
	)
	m.Signals = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolemap_signals_total",
			Help: "Interaction signals handled",
		},
		[]string{"type"},
	)
	m.Analyses = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolemap_analyses_total",
			Help: "Migration analyses run",
		},
		[]string{"archetype"},
	)

	m.registry.MustRegister(collectors.NewGoCollector())
	return m
}

// RecordRender records one rebuild of view.
func (m *Metrics) RecordRender(view string, d time.Duration, skipped int) {
	if m == nil {
		return
	}
	m.Rebuilds.WithLabelValues(view).Inc()
	m.RenderDuration.WithLabelValues(view).Observe(d.Seconds())
	if skipped > 0 {
		m.SkippedEdges.WithLabelValues(view).Add(float64(skipped))
	}
}

// RecordSimulation records the ticks a force layout ran.
func (m *Metrics) RecordSimulation(ticks int) {
	if m == nil {
		return
	}
	m.SimulationTicks.Observe(float64(ticks))
}

// RecordSignal counts one handled signal.
func (m *Metrics) RecordSignal(signal string) {
	if m == nil {
		return
	}
	m.Signals.WithLabelValues(signal).Inc()
}

// RecordAnalysis counts one analysis for archetype.
func (m *Metrics) RecordAnalysis(archetype string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(archetype).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
