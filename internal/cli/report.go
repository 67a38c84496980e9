package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/reports"
	"github.com/salescope/salescope/internal/sales"
)

var (
	reportAll         bool
	reportParallel    bool
	reportClean       bool
	reportDate        string
	reportCategory    string
	reportMinQuantity int
	reportMonth       string
	reportThreshold   float64
	reportTopN        int
)

var reportCmd = &cobra.Command{
	Use:   "report [name ...]",
	Short: "Run analytical reports against the cleaned table",
	Long: `Run one or more reports by name, or the whole catalog with --all.
Reports are read-only and independent; with --parallel they fan out one
goroutine each, and a failure in one report never aborts the others.

--clean removes dirty records first so reports never see unclean data.

Examples:
  salescope report category_sales top_customers
  salescope report --all --parallel --clean
  salescope report sales_on_date --date 2022-11-05`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportAll, "all", false,
		"run every report in the catalog")
	reportCmd.Flags().BoolVar(&reportParallel, "parallel", false,
		"run the selected reports concurrently")
	reportCmd.Flags().BoolVar(&reportClean, "clean", false,
		"remove dirty records before reporting")
	reportCmd.Flags().StringVar(&reportDate, "date", "",
		"date for sales_on_date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportCategory, "category", "",
		"category for category_month_sales")
	reportCmd.Flags().IntVar(&reportMinQuantity, "min-quantity", 0,
		"exclusive quantity floor for category_month_sales")
	reportCmd.Flags().StringVar(&reportMonth, "month", "",
		"month for category_month_sales (YYYY-MM)")
	reportCmd.Flags().Float64Var(&reportThreshold, "threshold", 0,
		"exclusive total_sale floor for the high-value reports")
	reportCmd.Flags().IntVar(&reportTopN, "top", 0,
		"row limit for top_customers")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportParallel {
		cfg.Report.Parallel = true
	}
	if reportClean {
		cfg.Report.Clean = true
	}
	if reportDate != "" {
		cfg.Report.Date = reportDate
	}
	if reportCategory != "" {
		cfg.Report.Category = reportCategory
	}
	if reportMinQuantity > 0 {
		cfg.Report.MinQuantity = reportMinQuantity
	}
	if reportMonth != "" {
		cfg.Report.Month = reportMonth
	}
	if reportThreshold > 0 {
		cfg.Report.Threshold = reportThreshold
	}
	if reportTopN > 0 {
		cfg.Report.TopN = reportTopN
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	defs, err := selectReports(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Reports must never see unclean data; a cleaning failure aborts
	// before anything runs.
	if cfg.Report.Clean {
		removed, err := sales.Clean(ctx, pool)
		if err != nil {
			return err
		}
		if removed > 0 {
			cmd.Printf("Removed %d dirty records before reporting\n\n", removed)
		}
	}

	params := reports.Params{
		Date:               cfg.Report.Date,
		Category:           cfg.Report.Category,
		MinQuantity:        cfg.Report.MinQuantity,
		Month:              cfg.Report.Month,
		HighValueThreshold: cfg.Report.Threshold,
		TopN:               cfg.Report.TopN,
	}

	var outcomes []reports.Outcome
	if cfg.Report.Parallel {
		outcomes = reports.RunParallel(ctx, pool, defs, params)
	} else {
		outcomes = reports.Run(ctx, pool, defs, params)
	}

	failures := 0
	for _, o := range outcomes {
		cmd.Printf("== %s: %s\n", o.Definition.Name, o.Definition.Description)
		if o.Err != nil {
			failures++
			logging.Error().
				Str("report", o.Definition.Name).
				Err(o.Err).
				Msg("Report failed")
			cmd.Printf("error: %v\n\n", o.Err)
			continue
		}
		cmd.Print(reports.Render(o.Result))
		cmd.Println()
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d reports failed", failures, len(outcomes))
	}
	return nil
}

func selectReports(names []string) ([]reports.Definition, error) {
	if reportAll || len(names) == 0 {
		return reports.All(), nil
	}

	defs := make([]reports.Definition, 0, len(names))
	for _, name := range names {
		def, err := reports.Get(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
