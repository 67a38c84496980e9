//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/salescope/salescope/internal/sales"
)

// Reference data for the generated dataset.
var (
	categories = []string{"Clothing", "Electronics", "Beauty", "Groceries", "Sports"}
	genders    = []string{"Female", "Male"}
	unitPrices = []float64{25, 30, 50, 300, 500}
)

// SampleConfig controls synthetic dataset generation.
type SampleConfig struct {
	// Rows is the number of records to generate.
	Rows int

	// DirtyRatio is the fraction of rows written with one field blanked
	// out, for exercising the cleaner.
	DirtyRatio float64
}

// WriteSampleCSV writes a synthetic retail sales dataset, header line
// included, and returns the number of data rows written. Transaction ids
// are sequential so the primary key never collides.
func WriteSampleCSV(w io.Writer, cfg SampleConfig, f *Faker) (int, error) {
	cw := csv.NewWriter(w)

	if err := cw.Write(sales.Columns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	numCustomers := max(1, cfg.Rows/4)

	for i := 1; i <= cfg.Rows; i++ {
		quantity := f.Int(1, 4)
		price := Choose(f, unitPrices)
		total := float64(quantity) * price
		cogs := total * f.Float64(0.25, 0.6)
		saleDate := f.DateRange(start, end)

		row := []string{
			strconv.Itoa(i),
			saleDate.Format("2006-01-02"),
			fmt.Sprintf("%02d:%02d:%02d", f.Int(6, 22), f.Int(0, 59), f.Int(0, 59)),
			strconv.Itoa(f.Int(1, numCustomers)),
			Choose(f, genders),
			strconv.Itoa(f.Int(18, 64)),
			Choose(f, categories),
			strconv.Itoa(quantity),
			strconv.FormatFloat(price, 'f', 2, 64),
			strconv.FormatFloat(cogs, 'f', 2, 64),
			strconv.FormatFloat(total, 'f', 2, 64),
		}

		if cfg.DirtyRatio > 0 && f.Float64(0, 1) < cfg.DirtyRatio {
			// Blank one nullable field; the key stays intact.
			row[f.Int(1, len(row)-1)] = ""
		}

		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush output: %w", err)
	}
	return cfg.Rows, nil
}
