// Package pipeline runs the full yearly analysis: load trade records, weight
// them, build the dependency network, score every country, then aggregate
// the years into the cross-year rankings and write all outputs.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/lngnet/pkg/algorithms"
	"github.com/dd0wney/lngnet/pkg/config"
	"github.com/dd0wney/lngnet/pkg/export"
	"github.com/dd0wney/lngnet/pkg/graph"
	"github.com/dd0wney/lngnet/pkg/loader"
	"github.com/dd0wney/lngnet/pkg/logging"
	"github.com/dd0wney/lngnet/pkg/metrics"
	"github.com/dd0wney/lngnet/pkg/pmi"
	"github.com/dd0wney/lngnet/pkg/ranking"
	"github.com/dd0wney/lngnet/pkg/trade"
)

// ErrNoUsableYears is returned when every year in the window was skipped.
var ErrNoUsableYears = errors.New("no year produced a usable network")

// YearStatus records what happened to one year of the window.
type YearStatus struct {
	Year           int    `json:"year"`
	Skipped        bool   `json:"skipped"`
	Reason         string `json:"reason,omitempty"`
	RecordsLoaded  int    `json:"records_loaded"`
	RecordsDropped int    `json:"records_dropped"`
	Countries      int    `json:"countries"`
	Edges          int    `json:"edges"`
	CandidatePairs int    `json:"candidate_pairs"`
}

// Summary is the run report: per-year outcomes plus the champion (rank 1)
// country per metric per year.
type Summary struct {
	RunID     string                    `json:"run_id"`
	Mode      string                    `json:"mode"`
	Years     []YearStatus              `json:"years"`
	Champions map[string]map[int]string `json:"champions"`
}

// Result bundles everything a caller needs after a finished run.
type Result struct {
	Summary     *Summary
	Records     []ranking.MetricRecord
	Tallies     map[string]*ranking.RankingTally
	ArchivePath string
}

// Pipeline wires a record source through the analysis stages.
type Pipeline struct {
	cfg     *config.Config
	source  loader.Source
	log     logging.Logger
	metrics *metrics.Registry
}

// New creates a pipeline over the given source.
func New(cfg *config.Config, source loader.Source, log logging.Logger, reg *metrics.Registry) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, log: log, metrics: reg}
}

// yearOutcome is the per-year fan-out product before the cross-year join.
type yearOutcome struct {
	status  YearStatus
	records []ranking.MetricRecord
	paths   []string
}

// Run executes the whole pipeline and writes all outputs under the
// configured output directory. Years that cannot produce a network are
// skipped with a reason in the summary, not fatal.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.log.With(logging.RunID(runID), logging.Component("pipeline"))

	mode, err := parseMode(p.cfg.Mode)
	if err != nil {
		return nil, err
	}

	// Fail before any year's work if the outputs have nowhere to go.
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	years := p.cfg.Years()
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = len(years)
	}

	log.Info("starting run",
		logging.Int("first_year", p.cfg.FirstYear),
		logging.Int("last_year", p.cfg.LastYear),
		logging.Int("workers", workers),
		logging.String("mode", mode.String()))

	outcomes := make([]yearOutcome, len(years))
	pool := newWorkerPool(workers, log)
	for i, year := range years {
		i, year := i, year
		pool.submit(func() {
			outcomes[i] = p.processYear(ctx, log, year, mode)
		})
	}
	pool.wait()

	if err := ctx.Err(); err != nil {
		p.metrics.RecordRun("cancelled", time.Since(start))
		return nil, err
	}

	summary := &Summary{
		RunID:     runID,
		Mode:      mode.String(),
		Years:     make([]YearStatus, 0, len(years)),
		Champions: make(map[string]map[int]string),
	}

	var allRecords []ranking.MetricRecord
	var allPaths []string
	usable := 0
	for _, outcome := range outcomes {
		summary.Years = append(summary.Years, outcome.status)
		if !outcome.status.Skipped {
			usable++
		}
		allRecords = append(allRecords, outcome.records...)
		allPaths = append(allPaths, outcome.paths...)
	}

	if usable == 0 {
		p.metrics.RecordRun("failed", time.Since(start))
		return nil, ErrNoUsableYears
	}

	tallies, rankingPaths, err := p.aggregate(allRecords, years)
	if err != nil {
		p.metrics.RecordRun("failed", time.Since(start))
		return nil, err
	}
	allPaths = append(allPaths, rankingPaths...)

	for metric, tally := range tallies {
		summary.Champions[metric] = make(map[int]string, len(tally.Yearly))
		for year, rows := range tally.Yearly {
			if len(rows) > 0 {
				summary.Champions[metric][year] = rows[0].Country
			}
		}
	}

	summaryPath, err := p.writeSummary(summary)
	if err != nil {
		p.metrics.RecordRun("failed", time.Since(start))
		return nil, err
	}
	allPaths = append(allPaths, summaryPath)

	archivePath, err := p.archive(runID, allPaths)
	if err != nil {
		p.metrics.RecordRun("failed", time.Since(start))
		return nil, err
	}

	p.metrics.RecordRun("ok", time.Since(start))
	log.Info("run finished",
		logging.Int("years_usable", usable),
		logging.Int("years_skipped", len(years)-usable),
		logging.Latency(time.Since(start)))

	return &Result{
		Summary:     summary,
		Records:     allRecords,
		Tallies:     tallies,
		ArchivePath: archivePath,
	}, nil
}

// processYear runs one year through load, weighting, graph construction and
// scoring. Any failure short of a programming error turns into a skipped
// year with a reason.
func (p *Pipeline) processYear(ctx context.Context, log logging.Logger, year int, mode graph.Mode) yearOutcome {
	t0 := time.Now()
	status := YearStatus{Year: year}
	yearLog := log.With(logging.Year(year))

	skip := func(reason string) yearOutcome {
		status.Skipped = true
		status.Reason = reason
		yearLog.Warn("year skipped", logging.String("reason", reason))
		p.metrics.RecordYear("skipped", time.Since(t0))
		return yearOutcome{status: status}
	}

	records, err := p.source.Load(ctx, year)
	if err != nil {
		return skip(fmt.Sprintf("load failed: %v", err))
	}
	if len(records) == 0 {
		return skip("no trade records")
	}
	status.RecordsLoaded = len(records)

	matrix := trade.NewMatrix(year)
	invalid := 0
	for _, rec := range records {
		rec.Normalize()
		if err := matrix.Add(rec); err != nil {
			invalid++
		}
	}
	status.RecordsDropped = invalid + matrix.DroppedSelfLoop + matrix.DroppedVolume
	p.metrics.RecordLoadedRecords("accepted", matrix.Accepted)
	p.metrics.RecordLoadedRecords("dropped", status.RecordsDropped)

	if matrix.Len() == 0 {
		return skip("no usable flows after cleaning")
	}
	status.CandidatePairs = matrix.Len()

	weightStart := time.Now()
	edges, err := pmi.Weight(matrix)
	if err != nil {
		return skip(fmt.Sprintf("weighting failed: %v", err))
	}
	p.metrics.RecordStage("pmi", time.Since(weightStart))
	if len(edges) == 0 {
		return skip("no positive associations survived filtering")
	}

	g, err := graph.Build(year, edges)
	if err != nil {
		return skip(fmt.Sprintf("graph construction failed: %v", err))
	}
	status.Countries = g.NodeCount()
	status.Edges = g.EdgeCount()
	p.metrics.UpdateGraphSize(year, g.NodeCount(), g.EdgeCount(), matrix.Len())

	metricRecords := p.scoreYear(g, mode)

	var paths []string
	if gephiPath, err := export.WriteGephiEdges(p.cfg.OutputDir, year, edges); err != nil {
		yearLog.Error("failed to write edge list", logging.Error(err))
	} else {
		paths = append(paths, gephiPath)
	}
	if adjPath, err := export.WriteAdjacency(p.cfg.OutputDir, g); err != nil {
		yearLog.Error("failed to write adjacency matrix", logging.Error(err))
	} else {
		paths = append(paths, adjPath)
	}

	yearLog.Info("year analyzed",
		logging.Int("countries", status.Countries),
		logging.Int("edges", status.Edges),
		logging.Latency(time.Since(t0)))
	p.metrics.RecordYear("ok", time.Since(t0))

	return yearOutcome{status: status, records: metricRecords, paths: paths}
}

// scoreYear computes every node metric for one finished graph.
func (p *Pipeline) scoreYear(g *graph.Graph, mode graph.Mode) []ranking.MetricRecord {
	var records []ranking.MetricRecord
	add := func(metric, country string, value float64) {
		records = append(records, ranking.MetricRecord{
			Year:    g.Year,
			Country: country,
			Metric:  metric,
			Value:   value,
		})
	}

	degreeStart := time.Now()
	degree := algorithms.Degree(g)
	for _, country := range g.Nodes() {
		add(ranking.MetricInDegree, country, degree.InDegree[country])
		add(ranking.MetricOutDegree, country, degree.OutDegree[country])
	}
	p.metrics.TimeMetric("degree", degreeStart)

	betweennessStart := time.Now()
	for country, value := range algorithms.BetweennessCentrality(g) {
		add(ranking.MetricBetweenness, country, value)
	}
	p.metrics.TimeMetric("betweenness", betweennessStart)

	holesStart := time.Now()
	for _, score := range algorithms.StructuralHoles(g, mode) {
		if !score.Valid {
			continue
		}
		add(ranking.MetricConstraint, score.Country, score.Constraint)
		add(ranking.MetricEffectiveSize, score.Country, score.EffectiveSize)
		add(ranking.MetricEfficiency, score.Country, score.Efficiency)
		add(ranking.MetricHierarchy, score.Country, score.Hierarchy)
	}
	p.metrics.TimeMetric("structural_holes", holesStart)

	return records
}

// aggregate runs the cross-year join: top lists, tallies, and the reshaped
// plotting tables for every metric.
func (p *Pipeline) aggregate(records []ranking.MetricRecord, years []int) (map[string]*ranking.RankingTally, []string, error) {
	sizes := map[string]int{
		ranking.MetricInDegree:      p.cfg.TopDegree,
		ranking.MetricOutDegree:     p.cfg.TopDegree,
		ranking.MetricBetweenness:   p.cfg.TopStructural,
		ranking.MetricConstraint:    p.cfg.TopStructural,
		ranking.MetricEffectiveSize: p.cfg.TopStructural,
		ranking.MetricEfficiency:    p.cfg.TopStructural,
		ranking.MetricHierarchy:     p.cfg.TopStructural,
	}

	tallies := make(map[string]*ranking.RankingTally, len(sizes))
	var paths []string
	for metric, size := range sizes {
		tally := ranking.Aggregate(records, metric, size)
		tallies[metric] = tally

		written, err := export.WriteRankings(p.cfg.OutputDir, tally)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to write %s rankings: %w", metric, err)
		}
		paths = append(paths, written...)

		countries := make([]string, 0, len(tally.Overall))
		for _, entry := range tally.Overall {
			countries = append(countries, entry.Country)
		}

		longPath, err := export.WriteLong(p.cfg.OutputDir, metric,
			ranking.Long(records, metric, countries, years))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to write %s long table: %w", metric, err)
		}
		paths = append(paths, longPath)

		propPath, err := export.WriteProportions(p.cfg.OutputDir, metric,
			ranking.Proportions(records, metric, countries, years))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to write %s proportions: %w", metric, err)
		}
		paths = append(paths, propPath)
	}

	return tallies, paths, nil
}

// writeSummary writes the run report as indented JSON.
func (p *Pipeline) writeSummary(summary *Summary) (string, error) {
	path := filepath.Join(p.cfg.OutputDir, "summary.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// archive packs every written output into one compressed artifact.
func (p *Pipeline) archive(runID string, paths []string) (string, error) {
	path := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("run_%s.lnga", runID))

	writer, err := export.NewArchiveWriter(path, runID)
	if err != nil {
		return "", err
	}
	for _, file := range paths {
		if err := writer.AddFile(file); err != nil {
			writer.Close()
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// parseMode maps the config string onto a tie direction.
func parseMode(mode string) (graph.Mode, error) {
	switch mode {
	case "outgoing":
		return graph.ModeOutgoing, nil
	case "incoming":
		return graph.ModeIncoming, nil
	case "both", "":
		return graph.ModeBoth, nil
	default:
		return graph.ModeBoth, fmt.Errorf("unknown tie direction %q", mode)
	}
}
