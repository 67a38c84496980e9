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
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/logging"
)

// LoadStats summarizes one bulk import.
type LoadStats struct {
	// Loaded is the number of rows inserted.
	Loaded int64

	// Malformed is the number of source rows skipped because they could
	// not be parsed (wrong column count or type mismatch).
	Malformed int64
}

// Loader performs the reset-and-load operation: the existing table is
// discarded and the CSV source is imported into a fresh one.
//
// Malformed rows are skipped and counted rather than aborting the whole
// import; I/O errors from the source abort immediately.
type Loader struct {
	batchSize        int
	progressInterval int64
}

// NewLoader creates a Loader with default batching.
func NewLoader() *Loader {
	return &Loader{
		batchSize:        1000,
		progressInterval: 100000,
	}
}

// ResetAndLoad drops and recreates the retail_sales table, then streams
// the CSV source into it. A header line is detected and skipped.
func (l *Loader) ResetAndLoad(ctx context.Context, pool *pgxpool.Pool, source io.Reader) (LoadStats, error) {
	var stats LoadStats

	if err := DropSchema(ctx, pool); err != nil {
		return stats, fmt.Errorf("failed to drop schema: %w", err)
	}
	if err := CreateSchema(ctx, pool); err != nil {
		return stats, fmt.Errorf("failed to create schema: %w", err)
	}

	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1 // column count is validated per row
	reader.ReuseRecord = true

	batch := make([][]any, 0, l.batchSize)
	line := 0

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Malformed++
				logging.Debug().Int("line", line).Err(err).Msg("Skipping unparseable line")
				continue
			}
			return stats, fmt.Errorf("failed to read source: %w", err)
		}

		if line == 1 && IsHeader(fields) {
			continue
		}

		rec, err := ParseRow(line, fields)
		if err != nil {
			stats.Malformed++
			logging.Debug().Int("line", line).Err(err).Msg("Skipping malformed row")
			continue
		}

		batch = append(batch, rec.CopyValues())
		if len(batch) >= l.batchSize {
			if err := l.flush(ctx, pool, batch, &stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := l.flush(ctx, pool, batch, &stats); err != nil {
			return stats, err
		}
	}

	logging.Info().
		Int64("loaded", stats.Loaded).
		Int64("malformed", stats.Malformed).
		Msg("Import complete")

	return stats, nil
}

func (l *Loader) flush(ctx context.Context, pool *pgxpool.Pool, batch [][]any, stats *LoadStats) error {
	n, err := pool.CopyFrom(ctx, pgx.Identifier{TableName}, Columns, pgx.CopyFromRows(batch))
	if err != nil {
		return fmt.Errorf("bulk insert failed: %w", err)
	}

	old := stats.Loaded
	stats.Loaded += n
	if stats.Loaded/l.progressInterval > old/l.progressInterval {
		logging.Info().
			Str("table", TableName).
			Int64("rows", stats.Loaded).
			Msg("Loading data")
	}
	return nil
}
