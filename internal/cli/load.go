package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/sales"
)

var loadFile string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import a retail sales CSV into a fresh table",
	Long: `Drop any existing retail_sales table, recreate it and bulk-import the
CSV source file. Malformed rows (wrong column count or unparseable
values) are skipped and counted; empty fields are imported as NULL and
left for the 'clean' command.

Example:
  salescope load --file retail_sales.csv --connection "postgres://..."`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadFile, "file", "",
		"CSV source file")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadFile != "" {
		cfg.Load.File = loadFile
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	source, err := os.Open(cfg.Load.File)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer source.Close()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logging.Info().
		Str("file", cfg.Load.File).
		Msg("Importing dataset")

	stats, err := sales.NewLoader().ResetAndLoad(ctx, pool, source)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := db.SaveLoadMetadata(ctx, pool, cfg.Load.File, stats.Loaded, stats.Malformed); err != nil {
		logging.Warn().Err(err).Msg("Failed to save load metadata")
	}

	cmd.Printf("Loaded %d rows (%d malformed rows skipped)\n",
		stats.Loaded, stats.Malformed)
	return nil
}
