package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/sales"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove records with missing fields",
	Long: `Delete every record in retail_sales that has a NULL in any column.
The deletion is permanent; nothing is imputed. Running clean twice in a
row removes nothing the second time.

Example:
  salescope clean --connection "postgres://..."`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	removed, err := sales.Clean(ctx, pool)
	if err != nil {
		return err
	}

	cmd.Printf("Removed %d dirty records\n", removed)
	return nil
}
