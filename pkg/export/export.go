// Package export writes finished analysis results to the formats the
// downstream tools consume: Gephi edge lists, weighted adjacency matrices,
// long-format plotting tables, ranking tables, and a compressed binary
// archive of a whole run.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// writeCSVFile creates path (and its directory) and writes header plus rows.
func writeCSVFile(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row of %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// formatFloat renders metric values the way the CSV consumers expect.
func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
