package metrics

import (
	"strconv"
	"time"
)

// RecordYear records one completed (or skipped) year with its duration
func (r *Registry) RecordYear(status string, duration time.Duration) {
	r.YearsProcessedTotal.WithLabelValues(status).Inc()
	r.YearDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordStage records one analysis stage duration within a year
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.YearDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records a full pipeline run
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// RecordLoadedRecords records loader dispositions (accepted, self_loop, non_positive)
func (r *Registry) RecordLoadedRecords(disposition string, count int) {
	r.RecordsLoadedTotal.WithLabelValues(disposition).Add(float64(count))
}

// UpdateGraphSize records a year's network dimensions
func (r *Registry) UpdateGraphSize(year, nodes, edges, candidatePairs int) {
	label := strconv.Itoa(year)
	r.GraphNodes.WithLabelValues(label).Set(float64(nodes))
	r.GraphEdges.WithLabelValues(label).Set(float64(edges))
	if candidatePairs > 0 {
		filtered := float64(candidatePairs-edges) / float64(candidatePairs) * 100
		r.EdgesFilteredPct.WithLabelValues(label).Set(filtered)
	}
}

// TimeMetric observes the duration of one metric computation
func (r *Registry) TimeMetric(metric string, start time.Time) {
	r.MetricDuration.WithLabelValues(metric).Observe(time.Since(start).Seconds())
}
