//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports implements the analytical report catalog that runs
// against a cleaned retail_sales table. Every report is read-only and
// independent of the others, so any subset may run in any order, or all
// of them concurrently.
package reports

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is an interface that both *pgxpool.Pool and *pgx.Conn satisfy.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Params carries the filter knobs shared by the parameterized reports.
type Params struct {
	// Date is the exact date for sales_on_date (YYYY-MM-DD).
	Date string

	// Category and MinQuantity filter category_month_sales; quantity
	// must be strictly greater than MinQuantity.
	Category    string
	MinQuantity int

	// Month is the inclusive calendar month for category_month_sales
	// (YYYY-MM).
	Month string

	// HighValueThreshold is the exclusive total_sale lower bound for
	// the high-value reports.
	HighValueThreshold float64

	// TopN limits the top_customers report.
	TopN int
}

// DefaultParams returns the canonical parameter values.
func DefaultParams() Params {
	return Params{
		Date:               "2022-11-05",
		Category:           "Clothing",
		MinQuantity:        2,
		Month:              "2022-11",
		HighValueThreshold: 1000,
		TopN:               5,
	}
}

// Result is one report's output: named columns and formatted rows.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Definition describes one report in the catalog.
type Definition struct {
	// Name identifies the report on the CLI.
	Name string

	// Description is a one-line summary shown by the reports command.
	Description string

	// Run executes the report. It must not mutate the table.
	Run func(ctx context.Context, db DB, p Params) (*Result, error)
}

var (
	registry = make(map[string]Definition)
	mu       sync.RWMutex
)

// Register adds a report to the catalog.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()
	registry[def.Name] = def
}

// Get retrieves a report by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown report: %s", name)
	}
	return def, nil
}

// List returns all report names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered report, sorted by name.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// runQuery executes a SQL statement and captures the full result set,
// taking column names from the query itself.
func runQuery(ctx context.Context, db DB, sql string, args ...any) (*Result, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	res := &Result{Columns: make([]string, len(fds))}
	for i, fd := range fds {
		res.Columns[i] = fd.Name
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		res.Rows = append(res.Rows, row)
	}

	return res, rows.Err()
}
