// Package config loads and validates the pipeline run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoaderConfig selects the trade-record source.
type LoaderConfig struct {
	// Type is "csv" or "postgres"
	Type string `yaml:"type"`
	// DataDir holds one CSV file per year for the csv loader
	DataDir string `yaml:"data_dir"`
	// DSN is the connection string for the postgres loader
	DSN string `yaml:"dsn"`
	// Table is the trade-records table for the postgres loader
	Table string `yaml:"table"`
}

// Config is the full pipeline run configuration.
type Config struct {
	FirstYear int `yaml:"first_year"`
	LastYear  int `yaml:"last_year"`

	Loader LoaderConfig `yaml:"loader"`

	// Workers bounds the per-year parallelism (0 = one per year)
	Workers int `yaml:"workers"`

	// Mode is the structural-hole tie direction: both, outgoing or incoming
	Mode string `yaml:"mode"`

	// TopDegree and TopStructural override the reporting list sizes
	TopDegree     int `yaml:"top_degree"`
	TopStructural int `yaml:"top_structural"`

	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the configuration matching the published analysis window.
func Default() *Config {
	return &Config{
		FirstYear:     2013,
		LastYear:      2023,
		Loader:        LoaderConfig{Type: "csv", DataDir: "./data"},
		Workers:       0,
		Mode:          "both",
		TopDegree:     20,
		TopStructural: 10,
		OutputDir:     "./results",
		LogLevel:      "info",
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Years returns the inclusive analysis window as a slice.
func (c *Config) Years() []int {
	years := make([]int, 0, c.LastYear-c.FirstYear+1)
	for y := c.FirstYear; y <= c.LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Validate checks the configuration, collecting all errors.
func (c *Config) Validate() error {
	v := NewConfigValidator("Config")

	v.MinInt("first_year", c.FirstYear, 1900)
	v.MinInt("last_year", c.LastYear, c.FirstYear)
	v.OneOf("mode", c.Mode, []string{"both", "outgoing", "incoming"})
	v.OneOf("loader.type", c.Loader.Type, []string{"csv", "postgres"})
	v.MinInt("top_degree", c.TopDegree, 1)
	v.MinInt("top_structural", c.TopStructural, 1)
	v.Required("output_dir", c.OutputDir)

	switch c.Loader.Type {
	case "csv":
		v.Required("loader.data_dir", c.Loader.DataDir)
	case "postgres":
		v.Required("loader.dsn", c.Loader.DSN)
		v.Required("loader.table", c.Loader.Table)
	}

	if c.Workers < 0 {
		v.addError(fmt.Errorf("Config.workers: must not be negative, got %d", c.Workers))
	}

	return v.Validate()
}
