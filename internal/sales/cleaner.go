//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/logging"
)

// A record is dirty when any of its ten nullable fields is NULL. Dirty
// records are removed outright; no values are imputed.
const cleanSQL = `
DELETE FROM retail_sales
WHERE sale_date IS NULL
   OR sale_time IS NULL
   OR customer_id IS NULL
   OR gender IS NULL
   OR age IS NULL
   OR category IS NULL
   OR quantity IS NULL
   OR price_per_unit IS NULL
   OR cogs IS NULL
   OR total_sale IS NULL
`

// Clean removes every dirty record from retail_sales and returns the
// number removed. Running it again on a clean table removes nothing.
func Clean(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	tag, err := pool.Exec(ctx, cleanSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to clean table: %w", err)
	}

	removed := tag.RowsAffected()
	logging.Info().
		Str("table", TableName).
		Int64("removed", removed).
		Msg("Cleaning complete")

	return removed, nil
}

const countsSQL = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE sale_date IS NULL
                           OR sale_time IS NULL
                           OR customer_id IS NULL
                           OR gender IS NULL
                           OR age IS NULL
                           OR category IS NULL
                           OR quantity IS NULL
                           OR price_per_unit IS NULL
                           OR cogs IS NULL
                           OR total_sale IS NULL)
FROM retail_sales
`

// Counts reports the total number of records and how many of them are
// still dirty.
func Counts(ctx context.Context, pool *pgxpool.Pool) (total, dirty int64, err error) {
	if err := pool.QueryRow(ctx, countsSQL).Scan(&total, &dirty); err != nil {
		return 0, 0, fmt.Errorf("failed to count records: %w", err)
	}
	return total, dirty, nil
}
