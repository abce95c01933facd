package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analysis pipeline
type Registry struct {
	// Pipeline metrics
	YearsProcessedTotal *prometheus.CounterVec
	YearDuration        *prometheus.HistogramVec
	RunsTotal           *prometheus.CounterVec
	RunDuration         prometheus.Histogram
	RecordsLoadedTotal  *prometheus.CounterVec

	// Analysis metrics
	GraphNodes       *prometheus.GaugeVec
	GraphEdges       *prometheus.GaugeVec
	EdgesFilteredPct *prometheus.GaugeVec
	MetricDuration   *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initPipelineMetrics()
	r.initAnalysisMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
