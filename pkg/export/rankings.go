package export

import (
	"fmt"
	"path/filepath"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/dd0wney/lngnet/pkg/ranking"
)

// WriteRankings writes a metric's full cross-year aggregation: the
// per-year top lists, the overall frequency ranking, and the overall
// by-average ranking. Returns the paths written.
func WriteRankings(dir string, tally *ranking.RankingTally) ([]string, error) {
	yearlyPath := filepath.Join(dir, fmt.Sprintf("%s_yearly_top.csv", tally.Metric))
	overallPath := filepath.Join(dir, fmt.Sprintf("%s_overall.csv", tally.Metric))
	averagePath := filepath.Join(dir, fmt.Sprintf("%s_by_average.csv", tally.Metric))

	years := maps.Keys(tally.Yearly)
	slices.Sort(years)

	yearlyRows := make([][]string, 0)
	for _, year := range years {
		for _, row := range tally.Yearly[year] {
			yearlyRows = append(yearlyRows, []string{
				strconv.Itoa(year),
				strconv.Itoa(row.Rank),
				row.Country,
				formatFloat(row.Value),
			})
		}
	}
	if err := writeCSVFile(yearlyPath,
		[]string{"Year", "Rank", "Country", "Value"}, yearlyRows); err != nil {
		return nil, err
	}

	overallRows := make([][]string, 0, len(tally.Overall))
	for _, row := range tally.Overall {
		overallRows = append(overallRows, []string{
			strconv.Itoa(row.Rank),
			row.Country,
			strconv.Itoa(row.Count),
		})
	}
	if err := writeCSVFile(overallPath,
		[]string{"Rank", "Country", "YearsInTop"}, overallRows); err != nil {
		return nil, err
	}

	averageRows := make([][]string, 0, len(tally.Average))
	for _, row := range tally.Average {
		averageRows = append(averageRows, []string{
			strconv.Itoa(row.Rank),
			row.Country,
			formatFloat(row.Average),
			strconv.Itoa(row.Count),
		})
	}
	if err := writeCSVFile(averagePath,
		[]string{"Rank", "Country", "Average", "YearsInTop"}, averageRows); err != nil {
		return nil, err
	}

	return []string{yearlyPath, overallPath, averagePath}, nil
}
