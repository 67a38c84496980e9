//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salescope.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salescope.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// LoadConfig holds configuration for dataset import.
type LoadConfig struct {
	// File is the path of the CSV source file.
	File string `mapstructure:"file"`
}

// ReportConfig holds configuration for report execution.
type ReportConfig struct {
	// Parallel runs the selected reports concurrently, one goroutine each.
	Parallel bool `mapstructure:"parallel"`

	// Clean removes dirty records before any report runs.
	Clean bool `mapstructure:"clean"`

	// Date is the exact calendar date for the sales_on_date report.
	Date string `mapstructure:"date"`

	// Category is the category filter for category_month_sales.
	Category string `mapstructure:"category"`

	// MinQuantity is the exclusive quantity lower bound for category_month_sales.
	MinQuantity int `mapstructure:"min_quantity"`

	// Month is the calendar month (YYYY-MM) for category_month_sales.
	Month string `mapstructure:"month"`

	// Threshold is the exclusive total_sale lower bound for the
	// high-value reports.
	Threshold float64 `mapstructure:"threshold"`

	// TopN is the row limit for the top_customers report.
	TopN int `mapstructure:"top_n"`
}

// SeedConfig holds configuration for sample dataset generation.
type SeedConfig struct {
	// Rows is the number of records to generate.
	Rows int `mapstructure:"rows"`

	// Out is the path of the CSV file to write.
	Out string `mapstructure:"out"`

	// DirtyRatio is the fraction of rows generated with a missing field.
	DirtyRatio float64 `mapstructure:"dirty_ratio"`

	// RandomSeed makes generation reproducible when non-zero.
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Report: ReportConfig{
			Date:        "2022-11-05",
			Category:    "Clothing",
			MinQuantity: 2,
			Month:       "2022-11",
			Threshold:   1000,
			TopN:        5,
		},
		Seed: SeedConfig{
			Rows:       2000,
			Out:        "retail_sales.csv",
			DirtyRatio: 0.01,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salescope.yaml
// 3. ~/.config/salescope/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salescope")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salescope"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.File == "" {
		return fmt.Errorf("source file is required for load")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Report.Date == "" {
		return fmt.Errorf("report date is required")
	}
	if c.Report.Month == "" {
		return fmt.Errorf("report month is required")
	}
	if c.Report.MinQuantity < 0 {
		return fmt.Errorf("min_quantity must be non-negative")
	}
	if c.Report.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Seed.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Seed.Out == "" {
		return fmt.Errorf("output file is required for seed")
	}
	if c.Seed.DirtyRatio < 0 || c.Seed.DirtyRatio > 1 {
		return fmt.Errorf("dirty_ratio must be between 0 and 1")
	}
	return nil
}
