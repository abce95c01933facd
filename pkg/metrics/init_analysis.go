package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lngnet_graph_nodes",
			Help: "Country nodes in the dependency network, per year",
		},
		[]string{"year"},
	)

	r.GraphEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lngnet_graph_edges",
			Help: "Surviving weighted edges in the dependency network, per year",
		},
		[]string{"year"},
	)

	r.EdgesFilteredPct = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lngnet_edges_filtered_percent",
			Help: "Share of trade pairs removed by the positive-PMI filter, per year",
		},
		[]string{"year"},
	)

	r.MetricDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lngnet_metric_duration_seconds",
			Help:    "Structural metric computation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"metric"},
	)
}
