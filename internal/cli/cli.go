//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salescope.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/reports"
	"github.com/salescope/salescope/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salescope",
		Short: "Retail sales loading, cleaning and reporting pipeline",
		Long: `salescope is a CLI tool that imports a retail sales CSV dataset into
PostgreSQL, removes records with missing fields, and runs a catalog of
analytical reports: category and demographic breakdowns, time-of-day
shifts, monthly trends, top customers and profitability.

The pipeline is strictly load -> clean -> report; reports are read-only
and independent, so any subset can run in any order or in parallel.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salescope.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List every report in the catalog. All reports are read-only queries
against the cleaned retail_sales table and can be run individually or
together with the 'report' command.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, def := range reports.All() {
			cmd.Println(fmt.Sprintf("  %-30s %s", def.Name, def.Description))
		}
		cmd.Println()
		cmd.Println("Use 'salescope report <name>' to run one, or 'salescope report --all'.")
	},
}
