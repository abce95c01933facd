package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/lngnet/pkg/config"
	"github.com/dd0wney/lngnet/pkg/loader"
	"github.com/dd0wney/lngnet/pkg/logging"
	"github.com/dd0wney/lngnet/pkg/metrics"
	"github.com/dd0wney/lngnet/pkg/pipeline"
	"github.com/dd0wney/lngnet/pkg/ranking"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML run configuration")
	dataDir := flag.String("data", "", "Override the CSV data directory")
	outputDir := flag.String("out", "", "Override the output directory")
	firstYear := flag.Int("first-year", 0, "Override the first analysis year")
	lastYear := flag.Int("last-year", 0, "Override the last analysis year")
	mode := flag.String("mode", "", "Tie direction: both, outgoing or incoming")
	workers := flag.Int("workers", -1, "Worker count (0 = one per year)")
	flag.Parse()

	fmt.Println("🌏 LNG Trade Network Analysis - Starting...")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *dataDir != "" {
		cfg.Loader.Type = "csv"
		cfg.Loader.DataDir = *dataDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *firstYear != 0 {
		cfg.FirstYear = *firstYear
	}
	if *lastYear != 0 {
		cfg.LastYear = *lastYear
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open record source: %v", err)
	}
	defer source.Close()

	fmt.Printf("✅ Loader ready (%s), years %d-%d, mode %s\n",
		cfg.Loader.Type, cfg.FirstYear, cfg.LastYear, cfg.Mode)

	p := pipeline.New(cfg, source, logger, metrics.NewRegistry())
	result, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Println("\n📊 Per-year results:")
	for _, ys := range result.Summary.Years {
		if ys.Skipped {
			fmt.Printf("  ⚠️  %d skipped: %s\n", ys.Year, ys.Reason)
			continue
		}
		fmt.Printf("  ✅ %d: %d countries, %d edges (%d flows loaded, %d dropped)\n",
			ys.Year, ys.Countries, ys.Edges, ys.RecordsLoaded, ys.RecordsDropped)
	}

	fmt.Println("\n🏆 Cross-year leaders (years in top list):")
	for _, metric := range []string{
		ranking.MetricInDegree,
		ranking.MetricOutDegree,
		ranking.MetricBetweenness,
		ranking.MetricConstraint,
		ranking.MetricEffectiveSize,
	} {
		tally := result.Tallies[metric]
		if tally == nil || len(tally.Overall) == 0 {
			continue
		}
		top := tally.Overall[0]
		fmt.Printf("  %-15s %s (%d)\n", metric, top.Country, top.Count)
	}

	fmt.Printf("\n💾 Results written to %s\n", cfg.OutputDir)
	fmt.Printf("📦 Archive: %s\n", result.ArchivePath)
}

// openSource builds the configured record source.
func openSource(ctx context.Context, cfg *config.Config) (loader.Source, error) {
	switch cfg.Loader.Type {
	case "postgres":
		return loader.NewPGSource(ctx, cfg.Loader.DSN, cfg.Loader.Table)
	default:
		return loader.NewCSVSource(cfg.Loader.DataDir), nil
	}
}
