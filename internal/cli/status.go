package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/sales"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset and last-import status",
	Long: `Show the current row count, how many records still carry missing
fields, and the metadata recorded by the most recent 'load' run.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	total, dirty, err := sales.Counts(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to inspect table: %w", err)
	}

	cmd.Printf("Table %s: %d rows (%d with missing fields)\n",
		sales.TableName, total, dirty)

	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check metadata: %w", err)
	}
	if !exists {
		cmd.Println("No import metadata recorded.")
		return nil
	}

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Println()
	cmd.Println("Last import:")
	for _, k := range keys {
		cmd.Printf("  %-15s %s\n", k, metadata[k])
	}
	return nil
}
