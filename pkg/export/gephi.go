package export

import (
	"fmt"
	"path/filepath"

	"github.com/dd0wney/lngnet/pkg/pmi"
)

// WriteGephiEdges writes one year's weighted edges as a Gephi-importable
// edge list. Rows keep the edge order of the slice, which the weighting
// engine already emits deterministically.
func WriteGephiEdges(dir string, year int, edges []pmi.WeightedEdge) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("gephi_edges_%d.csv", year))

	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{
			e.Origin,
			e.Destination,
			formatFloat(e.Weight),
			formatFloat(e.Volume),
		})
	}

	header := []string{"Source", "Target", "Weight", "TradeVolume"}
	if err := writeCSVFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}
