// Package loader supplies TradeRecord sequences to the pipeline. Sources are
// external collaborators: they read and clean raw data, the pipeline never
// touches files or databases mid-computation.
package loader

import (
	"context"

	"github.com/dd0wney/lngnet/pkg/trade"
)

// Source yields one year's trade records.
type Source interface {
	// Load returns all trade records for the given year. A year with no
	// data returns an empty slice, not an error; the PMI engine reports
	// the degenerate year downstream.
	Load(ctx context.Context, year int) ([]trade.TradeRecord, error)

	// Close releases any held resources.
	Close() error
}
