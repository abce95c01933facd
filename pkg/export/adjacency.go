package export

import (
	"fmt"
	"path/filepath"

	"github.com/dd0wney/lngnet/pkg/graph"
)

// WriteAdjacency writes one year's weighted adjacency matrix as a square
// CSV table with country labels on both axes, the layout the Ucinet
// import expects. Cell (i, j) holds the weight of the i -> j edge, zero
// where no edge survived.
func WriteAdjacency(dir string, g *graph.Graph) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("adjacency_%d.csv", g.Year))

	countries, matrix := g.AdjacencyMatrix()

	header := make([]string, 0, len(countries)+1)
	header = append(header, "")
	header = append(header, countries...)

	rows := make([][]string, 0, len(countries))
	for i, country := range countries {
		row := make([]string, 0, len(countries)+1)
		row = append(row, country)
		for j := range countries {
			row = append(row, formatFloat(matrix[i][j]))
		}
		rows = append(rows, row)
	}

	if err := writeCSVFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}
