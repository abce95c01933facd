package export

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dd0wney/lngnet/pkg/ranking"
)

// WriteLong writes a metric's melted year-by-country table for the
// plotting import, one row per (country, year).
func WriteLong(dir string, metric string, rows []ranking.LongRecord) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_long.csv", metric))

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Country,
			strconv.Itoa(r.Year),
			formatFloat(r.Value),
		})
	}

	header := []string{"Country", "Year", "Value"}
	if err := writeCSVFile(path, header, out); err != nil {
		return "", err
	}
	return path, nil
}

// WriteProportions writes the per-year percentage shares of the top group.
func WriteProportions(dir string, metric string, rows []ranking.ProportionRecord) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_proportions.csv", metric))

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Year),
			r.Country,
			formatFloat(r.Proportion),
		})
	}

	header := []string{"Year", "Country", "Proportion"}
	if err := writeCSVFile(path, header, out); err != nil {
		return "", err
	}
	return path, nil
}
