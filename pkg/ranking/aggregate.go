// Package ranking aggregates per-year node metrics into multi-year top-N
// lists. It is a pure counting and sorting layer: the only cross-year state
// in the whole pipeline lives here, and it only reads finalized records.
package ranking

import (
	"sort"
)

// Metric names used across the pipeline.
const (
	MetricInDegree      = "in_degree"
	MetricOutDegree     = "out_degree"
	MetricBetweenness   = "betweenness"
	MetricConstraint    = "constraint"
	MetricEffectiveSize = "effective_size"
	MetricEfficiency    = "efficiency"
	MetricHierarchy     = "hierarchy"
)

// Reporting sizes per metric family: top 20 for degree lists, top 10 for
// betweenness and structural-hole lists.
const (
	TopNDegree      = 20
	TopNBetweenness = 10
	TopNStructural  = 10
)

// Order is the ranking direction for a metric.
type Order int

const (
	// Descending ranks the largest value first.
	Descending Order = iota
	// Ascending ranks the smallest value first (constraint: lower means
	// richer in structural holes).
	Ascending
)

// OrderFor returns the ranking direction for a metric. Constraint is the
// only metric where smaller is better.
func OrderFor(metric string) Order {
	if metric == MetricConstraint {
		return Ascending
	}
	return Descending
}

// MetricRecord is one finalized (year, country, metric, value) observation.
type MetricRecord struct {
	Year    int     `json:"year"`
	Country string  `json:"country"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
}

// RankedCountry is one row of a year's top-N list.
type RankedCountry struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// TallyEntry is one row of the overall frequency ranking. Count is the
// number of years the country appeared in the per-year top-N list.
type TallyEntry struct {
	Rank    int    `json:"rank"`
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// TopN ranks one year's records for a metric and returns the first n rows.
// Ties are broken by lexical country order for determinism.
func TopN(records []MetricRecord, metric string, year, n int, order Order) []RankedCountry {
	rows := make([]RankedCountry, 0)
	for _, r := range records {
		if r.Metric != metric || r.Year != year {
			continue
		}
		rows = append(rows, RankedCountry{Country: r.Country, Value: r.Value})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			if order == Ascending {
				return rows[i].Value < rows[j].Value
			}
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Country < rows[j].Country
	})

	if n < len(rows) {
		rows = rows[:n]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// YearlyTopN builds the per-year top-N lists for a metric over all years
// present in the records.
func YearlyTopN(records []MetricRecord, metric string, n int, order Order) map[int][]RankedCountry {
	years := make(map[int]struct{})
	for _, r := range records {
		if r.Metric == metric {
			years[r.Year] = struct{}{}
		}
	}

	yearly := make(map[int][]RankedCountry, len(years))
	for year := range years {
		yearly[year] = TopN(records, metric, year, n, order)
	}
	return yearly
}

// FrequencyTally counts, per country, the number of yearly top lists it
// appears in.
func FrequencyTally(yearly map[int][]RankedCountry) map[string]int {
	tally := make(map[string]int)
	for _, rows := range yearly {
		for _, row := range rows {
			tally[row.Country]++
		}
	}
	return tally
}

// OverallTopN ranks the frequency tally: most years first, ties broken by
// lexical country order.
func OverallTopN(tally map[string]int, n int) []TallyEntry {
	entries := make([]TallyEntry, 0, len(tally))
	for country, count := range tally {
		entries = append(entries, TallyEntry{Country: country, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Country < entries[j].Country
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// AverageEntry is one row of the overall by-average ranking.
type AverageEntry struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// OverallByAverage ranks the tallied countries by their mean metric value
// over the years in which they have a record.
func OverallByAverage(records []MetricRecord, metric string, tally map[string]int) []AverageEntry {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Metric != metric {
			continue
		}
		if _, tracked := tally[r.Country]; !tracked {
			continue
		}
		sums[r.Country] += r.Value
		counts[r.Country]++
	}

	entries := make([]AverageEntry, 0, len(sums))
	for country, sum := range sums {
		entries = append(entries, AverageEntry{
			Country: country,
			Average: sum / float64(counts[country]),
			Count:   tally[country],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Average != entries[j].Average {
			return entries[i].Average > entries[j].Average
		}
		return entries[i].Country < entries[j].Country
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankingTally bundles a metric's multi-year aggregation for downstream
// consumers (reshaper, exporters, TUI).
type RankingTally struct {
	Metric  string                  `json:"metric"`
	Order   Order                   `json:"order"`
	TopSize int                     `json:"top_size"`
	Yearly  map[int][]RankedCountry `json:"yearly"`
	Overall []TallyEntry            `json:"overall"`
	Average []AverageEntry          `json:"average"`
}

// Aggregate runs the full cross-year aggregation for one metric: per-year
// top-N lists, frequency tally, and overall rankings by frequency and
// average.
func Aggregate(records []MetricRecord, metric string, n int) *RankingTally {
	order := OrderFor(metric)
	yearly := YearlyTopN(records, metric, n, order)
	tally := FrequencyTally(yearly)

	return &RankingTally{
		Metric:  metric,
		Order:   order,
		TopSize: n,
		Yearly:  yearly,
		Overall: OverallTopN(tally, n),
		Average: OverallByAverage(records, metric, tally),
	}
}
