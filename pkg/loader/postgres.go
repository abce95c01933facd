package loader

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/lngnet/pkg/trade"
)

// identifierPattern restricts table names to plain SQL identifiers since the
// table name is interpolated, not bound.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PGSource reads trade records from a PostgreSQL table with
// (year, origin, destination, volume) columns.
type PGSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPGSource creates a PostgreSQL-backed trade record source.
func NewPGSource(ctx context.Context, databaseURL, table string) (*PGSource, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PGSource{pool: pool, table: table}, nil
}

// Load returns all trade records for the given year.
func (s *PGSource) Load(ctx context.Context, year int) ([]trade.TradeRecord, error) {
	query := fmt.Sprintf(
		"SELECT origin, destination, volume FROM %s WHERE year = $1", s.table)

	rows, err := s.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade records for %d: %w", year, err)
	}
	defer rows.Close()

	var records []trade.TradeRecord
	for rows.Next() {
		rec := trade.TradeRecord{Year: year}
		if err := rows.Scan(&rec.Origin, &rec.Destination, &rec.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan trade record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading trade records for %d: %w", year, err)
	}

	return records, nil
}

// Ping checks database connectivity.
func (s *PGSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PGSource) Close() error {
	s.pool.Close()
	return nil
}
