package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dd0wney/lngnet/pkg/trade"
)

// CSVSource reads one comma-separated file per year from a data directory.
// Files are named <year>_data.csv with at least the reporter (importer),
// partner (exporter) and net-weight columns of the customs exports.
type CSVSource struct {
	dataDir string
}

// NewCSVSource creates a CSV source over the given directory.
func NewCSVSource(dataDir string) *CSVSource {
	return &CSVSource{dataDir: dataDir}
}

// column aliases seen across the yearly source files
var (
	reporterColumns = []string{"reportername", "reporter"}
	partnerColumns  = []string{"partnername", "partner"}
	weightColumns   = []string{"netweight", "netwgt"}
)

// Load reads and cleans the year's file. Rows with a missing or
// non-numeric weight are skipped, matching the source preprocessing.
func (s *CSVSource) Load(ctx context.Context, year int) ([]trade.TradeRecord, error) {
	path := filepath.Join(s.dataDir, fmt.Sprintf("%d_data.csv", year))

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	reporterIdx := findColumn(header, reporterColumns)
	partnerIdx := findColumn(header, partnerColumns)
	weightIdx := findColumn(header, weightColumns)
	if reporterIdx < 0 || partnerIdx < 0 || weightIdx < 0 {
		return nil, fmt.Errorf("%s is missing a required column (have: %s)",
			path, strings.Join(header, ", "))
	}

	var records []trade.TradeRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// A ragged or otherwise malformed row is skipped like a row
			// with a bad weight; anything else is a real read failure.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(row) <= weightIdx || len(row) <= reporterIdx || len(row) <= partnerIdx {
			continue
		}

		volume, err := strconv.ParseFloat(strings.TrimSpace(row[weightIdx]), 64)
		if err != nil {
			continue
		}

		records = append(records, trade.TradeRecord{
			Year: year,
			// The partner exported to the reporting country.
			Origin:      strings.TrimSpace(row[partnerIdx]),
			Destination: strings.TrimSpace(row[reporterIdx]),
			Volume:      volume,
		})
	}

	return records, nil
}

// Close is a no-op for the CSV source.
func (s *CSVSource) Close() error {
	return nil
}

// findColumn locates the first header matching any alias, case-insensitively.
func findColumn(header []string, aliases []string) int {
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}
