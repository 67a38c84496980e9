//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the report catalog.
// Run with: go test -tags=integration ./internal/reports/...
// Requires PostgreSQL to be available.
// Set SALESCOPE_TEST_CONN environment variable to override connection string.

package reports_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/reports"
	"github.com/salescope/salescope/internal/sales"
	"github.com/salescope/salescope/internal/testutil"
)

// Nine clean records spanning two years, five customers and three
// categories. Customer totals: 1 -> 1700, 4 -> 800, 3 -> 700, and a
// 500/500 tie between customers 2 and 5.
const reportFixtureCSV = `transaction_id,sale_date,sale_time,customer_id,gender,age,category,quantity,price_per_unit,cogs,total_sale
1,2022-01-15,09:00:00,1,Female,19,Clothing,1,100.00,50.00,100.00
2,2022-01-20,11:59:59,2,Male,25,Clothing,2,100.00,80.00,200.00
3,2022-07-01,12:00:00,1,Female,19,Beauty,1,400.00,100.00,400.00
4,2022-07-15,17:30:00,3,Male,45,Electronics,1,600.00,200.00,600.00
5,2022-11-05,18:00:00,2,Male,25,Clothing,3,100.00,120.00,300.00
6,2023-02-01,10:15:00,1,Female,19,Electronics,2,600.00,500.00,1200.00
7,2023-02-10,20:00:00,4,Male,52,Beauty,1,800.00,300.00,800.00
8,2023-09-01,13:00:00,3,Male,45,Clothing,1,100.00,40.00,100.00
9,2023-09-02,14:00:00,5,Female,30,Beauty,1,500.00,250.00,500.00
`

func setupReportDB(t *testing.T) (*pgxpool.Pool, context.Context) {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr, "reports")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()
	if _, err := sales.NewLoader().ResetAndLoad(ctx, pool, strings.NewReader(reportFixtureCSV)); err != nil {
		t.Fatalf("Fixture load failed: %v", err)
	}
	if _, err := sales.Clean(ctx, pool); err != nil {
		t.Fatalf("Fixture clean failed: %v", err)
	}

	return pool, ctx
}

func runReport(t *testing.T, pool *pgxpool.Pool, ctx context.Context, name string) *reports.Result {
	t.Helper()

	def, err := reports.Get(name)
	if err != nil {
		t.Fatalf("Get(%s) failed: %v", name, err)
	}
	res, err := def.Run(ctx, pool, reports.DefaultParams())
	if err != nil {
		t.Fatalf("Report %s failed: %v", name, err)
	}
	return res
}

func cellFloat(t *testing.T, cell string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		t.Fatalf("Cell %q is not numeric: %v", cell, err)
	}
	return f
}

func TestCategorySumsMatchTableTotals(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "category_sales")
	if len(res.Rows) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(res.Rows))
	}

	var sumQty, sumSale float64
	for _, row := range res.Rows {
		sumQty += cellFloat(t, row[1])
		sumSale += cellFloat(t, row[2])
	}

	var tableQty, tableSale float64
	err := pool.QueryRow(ctx,
		"SELECT SUM(quantity)::float8, SUM(total_sale)::float8 FROM retail_sales",
	).Scan(&tableQty, &tableSale)
	if err != nil {
		t.Fatalf("Table totals query failed: %v", err)
	}

	if sumQty != tableQty {
		t.Errorf("Per-category quantity sum %v != table sum %v", sumQty, tableQty)
	}
	if sumSale != tableSale {
		t.Errorf("Per-category sale sum %v != table sum %v", sumSale, tableSale)
	}
}

func TestTopCustomers(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "top_customers")
	if len(res.Rows) > 5 {
		t.Fatalf("Expected at most 5 rows, got %d", len(res.Rows))
	}

	// Sorted by total descending.
	for i := 1; i < len(res.Rows); i++ {
		if cellFloat(t, res.Rows[i-1][1]) < cellFloat(t, res.Rows[i][1]) {
			t.Errorf("Rows %d and %d out of order", i-1, i)
		}
	}

	// The 500/500 tie between customers 2 and 5 resolves by customer_id.
	wantIDs := []string{"1", "4", "3", "2", "5"}
	for i, row := range res.Rows {
		if row[0] != wantIDs[i] {
			t.Errorf("Row %d customer_id = %s, want %s", i, row[0], wantIDs[i])
		}
	}
}

func TestBestMonthPerYear(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "best_month_per_year")
	want := [][]string{
		{"2022", "7", "500.00"},
		{"2023", "2", "1000.00"},
	}
	if len(res.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d: %v", len(want), len(res.Rows), res.Rows)
	}
	for i, row := range res.Rows {
		for j, cell := range want[i] {
			if row[j] != cell {
				t.Errorf("Row %d col %d = %s, want %s", i, j, row[j], cell)
			}
		}
	}
}

func TestAboveAverageSalesStrict(t *testing.T) {
	pool, ctx := setupReportDB(t)

	var avg float64
	if err := pool.QueryRow(ctx, "SELECT AVG(total_sale)::float8 FROM retail_sales").Scan(&avg); err != nil {
		t.Fatalf("Average query failed: %v", err)
	}

	res := runReport(t, pool, ctx, "above_average_sales")
	if len(res.Rows) != 4 {
		t.Errorf("Expected 4 above-average rows, got %d", len(res.Rows))
	}

	totalIdx := len(res.Columns) - 1 // total_sale is the last table column
	for _, row := range res.Rows {
		if cellFloat(t, row[totalIdx]) <= avg {
			t.Errorf("Row %v not strictly above average %v", row, avg)
		}
	}
}

func TestShiftDistribution(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "shift_distribution")
	want := [][]string{
		{"Afternoon", "4"},
		{"Evening", "2"},
		{"Morning", "3"},
	}
	if len(res.Rows) != len(want) {
		t.Fatalf("Expected %d shifts, got %d: %v", len(want), len(res.Rows), res.Rows)
	}
	for i, row := range res.Rows {
		if row[0] != want[i][0] || row[1] != want[i][1] {
			t.Errorf("Shift row %d = %v, want %v", i, row, want[i])
		}
	}
}

func TestProfitability(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "profitability")
	if len(res.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(res.Rows))
	}
	row := res.Rows[0]

	if row[0] != "1640.00" {
		t.Errorf("total_cost = %s, want 1640.00", row[0])
	}
	if row[1] != "4200.00" {
		t.Errorf("total_revenue = %s, want 4200.00", row[1])
	}
	if row[2] != "2560.00" {
		t.Errorf("profit = %s, want 2560.00", row[2])
	}
	if row[3] != "156.10" {
		t.Errorf("margin_pct = %s, want 156.10", row[3])
	}
}

func TestProfitabilityUndefinedMargin(t *testing.T) {
	pool, ctx := setupReportDB(t)

	if _, err := pool.Exec(ctx, "TRUNCATE retail_sales"); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	res := runReport(t, pool, ctx, "profitability")
	if res.Rows[0][3] != "undefined" {
		t.Errorf("margin_pct = %s, want undefined", res.Rows[0][3])
	}
}

func TestSalesOnDate(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "sales_on_date")
	if len(res.Rows) != 1 {
		t.Fatalf("Expected 1 transaction on 2022-11-05, got %d", len(res.Rows))
	}
	if res.Rows[0][0] != "5" {
		t.Errorf("Expected transaction 5, got %s", res.Rows[0][0])
	}
}

func TestRepeatCustomers(t *testing.T) {
	pool, ctx := setupReportDB(t)

	res := runReport(t, pool, ctx, "repeat_customers")
	if res.Rows[0][0] != "3" {
		t.Errorf("Expected 3 repeat customers, got %s", res.Rows[0][0])
	}
}

func TestWholeCatalogParallel(t *testing.T) {
	pool, ctx := setupReportDB(t)

	outcomes := reports.RunParallel(ctx, pool, reports.All(), reports.DefaultParams())
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("Report %s failed: %v", o.Definition.Name, o.Err)
		}
		if o.Result == nil {
			t.Errorf("Report %s returned no result", o.Definition.Name)
		}
	}
}
