package ranking

import (
	"sort"
)

// LongRecord is one tidy observation for plotting tools: the wide
// year-by-country table melted into rows.
type LongRecord struct {
	Year    int     `json:"year"`
	Country string  `json:"country"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
}

// Long melts the metric records for the given countries into long format,
// sorted by (country, year) the way the plotting import expects. Years in
// which a country has no record are emitted with a zero value so every
// country series has the same length.
func Long(records []MetricRecord, metric string, countries []string, years []int) []LongRecord {
	values := make(map[int]map[string]float64, len(years))
	for _, r := range records {
		if r.Metric != metric {
			continue
		}
		if values[r.Year] == nil {
			values[r.Year] = make(map[string]float64)
		}
		values[r.Year][r.Country] = r.Value
	}

	sortedCountries := make([]string, len(countries))
	copy(sortedCountries, countries)
	sort.Strings(sortedCountries)

	sortedYears := make([]int, len(years))
	copy(sortedYears, years)
	sort.Ints(sortedYears)

	rows := make([]LongRecord, 0, len(sortedCountries)*len(sortedYears))
	for _, country := range sortedCountries {
		for _, year := range sortedYears {
			rows = append(rows, LongRecord{
				Year:    year,
				Country: country,
				Metric:  metric,
				Value:   values[year][country],
			})
		}
	}
	return rows
}

// ProportionRecord is one row of the share table: a top country's percentage
// of the top group's total metric value in one year.
type ProportionRecord struct {
	Year       int     `json:"year"`
	Country    string  `json:"country"`
	Proportion float64 `json:"proportion"`
}

// Proportions computes, per year, each listed country's share (as a
// percentage) of the group's total metric value that year. Years where the
// group total is zero produce zero shares. Rows are ordered by (year,
// country).
func Proportions(records []MetricRecord, metric string, countries []string, years []int) []ProportionRecord {
	values := make(map[int]map[string]float64, len(years))
	for _, r := range records {
		if r.Metric != metric {
			continue
		}
		if values[r.Year] == nil {
			values[r.Year] = make(map[string]float64)
		}
		values[r.Year][r.Country] = r.Value
	}

	sortedCountries := make([]string, len(countries))
	copy(sortedCountries, countries)
	sort.Strings(sortedCountries)

	sortedYears := make([]int, len(years))
	copy(sortedYears, years)
	sort.Ints(sortedYears)

	rows := make([]ProportionRecord, 0, len(sortedCountries)*len(sortedYears))
	for _, year := range sortedYears {
		var total float64
		for _, country := range sortedCountries {
			total += values[year][country]
		}
		for _, country := range sortedCountries {
			share := 0.0
			if total > 0 {
				share = values[year][country] / total * 100
			}
			rows = append(rows, ProportionRecord{Year: year, Country: country, Proportion: share})
		}
	}
	return rows
}
