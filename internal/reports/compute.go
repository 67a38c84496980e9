//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Shift labels derived from the hour of sale_time.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftEvening   = "Evening"
)

// ShiftForHour maps an hour of day to its shift: before 12 is Morning,
// 12 through 17 is Afternoon, everything later is Evening.
func ShiftForHour(hour int) string {
	switch {
	case hour < 12:
		return ShiftMorning
	case hour <= 17:
		return ShiftAfternoon
	default:
		return ShiftEvening
	}
}

// Age group labels in canonical ascending order.
var AgeGroups = []string{"Under 20", "20s", "30s", "40s", "50+"}

// AgeGroup maps an age to its bucket label.
func AgeGroup(age int) string {
	switch {
	case age < 20:
		return "Under 20"
	case age < 30:
		return "20s"
	case age < 40:
		return "30s"
	case age < 50:
		return "40s"
	default:
		return "50+"
	}
}

// RankDescending assigns a competition rank to each value: equal values
// share a rank and the next distinct value skips past the ties, ranking
// from the largest value down.
func RankDescending(values []float64) []int {
	ranks := make([]int, len(values))
	for i, v := range values {
		rank := 1
		for _, other := range values {
			if other > v {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// MonthlyAverage is the average sale value for one calendar month.
type MonthlyAverage struct {
	Year    int
	Month   int
	AvgSale float64
}

// BestMonths returns, for each year, the month(s) ranked first by average
// sale value. Ties share rank 1 and are all returned. Output is ordered
// by year, then month.
func BestMonths(averages []MonthlyAverage) []MonthlyAverage {
	byYear := make(map[int][]MonthlyAverage)
	for _, m := range averages {
		byYear[m.Year] = append(byYear[m.Year], m)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var best []MonthlyAverage
	for _, y := range years {
		months := byYear[y]
		values := make([]float64, len(months))
		for i, m := range months {
			values[i] = m.AvgSale
		}
		ranks := RankDescending(values)

		var winners []MonthlyAverage
		for i, m := range months {
			if ranks[i] == 1 {
				winners = append(winners, m)
			}
		}
		sort.Slice(winners, func(i, j int) bool { return winners[i].Month < winners[j].Month })
		best = append(best, winners...)
	}
	return best
}

// Profitability summarizes cost, revenue and margin over the whole table.
type Profitability struct {
	TotalCost     float64
	TotalRevenue  float64
	Profit        float64
	MarginPct     float64
	MarginDefined bool
}

// ComputeProfitability derives profit and margin from the cost and
// revenue sums. A zero total cost leaves the margin undefined instead of
// producing NaN or Inf.
func ComputeProfitability(totalCost, totalRevenue float64) Profitability {
	p := Profitability{
		TotalCost:    round2(totalCost),
		TotalRevenue: round2(totalRevenue),
		Profit:       round2(totalRevenue - totalCost),
	}
	if totalCost != 0 {
		p.MarginPct = round2(p.Profit * 100 / totalCost)
		p.MarginDefined = true
	}
	return p
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// hourCount is one hour's transaction count.
type hourCount struct {
	Hour  int
	Count int64
}

// ShiftCounts buckets hourly counts into shifts. Labels come back in
// alphabetical order: Afternoon, Evening, Morning.
func ShiftCounts(hours []hourCount) []struct {
	Shift string
	Count int64
} {
	totals := make(map[string]int64)
	for _, h := range hours {
		totals[ShiftForHour(h.Hour)] += h.Count
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]struct {
		Shift string
		Count int64
	}, 0, len(labels))
	for _, label := range labels {
		out = append(out, struct {
			Shift string
			Count int64
		}{label, totals[label]})
	}
	return out
}

// ageStat is the per-age transaction count and sale sum.
type ageStat struct {
	Age   int
	Count int64
	Sum   float64
}

// bucketSpend is one age group's average sale value.
type bucketSpend struct {
	Group   string
	AvgSale float64
}

// AgeGroupAverages buckets per-age stats and computes the average sale
// per bucket, in canonical bucket order. Buckets with no records are
// omitted.
func AgeGroupAverages(stats []ageStat) []bucketSpend {
	counts := make(map[string]int64)
	sums := make(map[string]float64)
	for _, s := range stats {
		g := AgeGroup(s.Age)
		counts[g] += s.Count
		sums[g] += s.Sum
	}

	var out []bucketSpend
	for _, g := range AgeGroups {
		if counts[g] == 0 {
			continue
		}
		out = append(out, bucketSpend{Group: g, AvgSale: round2(sums[g] / float64(counts[g]))})
	}
	return out
}

// Computed reports: SQL does the grouping, Go does the bucketing,
// ranking and guarded arithmetic.
var computedReports = []Definition{
	{
		Name:        "best_month_per_year",
		Description: "Highest average-sale month of each year (ties share first place)",
		Run:         runBestMonthPerYear,
	},
	{
		Name:        "shift_distribution",
		Description: "Transaction count per shift (Morning / Afternoon / Evening)",
		Run:         runShiftDistribution,
	},
	{
		Name:        "age_group_spend",
		Description: "Average sale value per customer age group",
		Run:         runAgeGroupSpend,
	},
	{
		Name:        "profitability",
		Description: "Total cost, revenue, profit and margin percentage",
		Run:         runProfitability,
	},
}

func runBestMonthPerYear(ctx context.Context, db DB, _ Params) (*Result, error) {
	rows, err := db.Query(ctx, `
        SELECT EXTRACT(YEAR FROM sale_date)::int AS year,
               EXTRACT(MONTH FROM sale_date)::int AS month,
               AVG(total_sale)::float8 AS avg_sale
        FROM retail_sales
        GROUP BY 1, 2
        ORDER BY 1, 2
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var averages []MonthlyAverage
	for rows.Next() {
		var m MonthlyAverage
		if err := rows.Scan(&m.Year, &m.Month, &m.AvgSale); err != nil {
			return nil, err
		}
		averages = append(averages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"year", "month", "avg_sale"}}
	for _, m := range BestMonths(averages) {
		res.Rows = append(res.Rows, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			formatFloat(round2(m.AvgSale)),
		})
	}
	return res, nil
}

func runShiftDistribution(ctx context.Context, db DB, _ Params) (*Result, error) {
	rows, err := db.Query(ctx, `
        SELECT EXTRACT(HOUR FROM sale_time)::int AS hour,
               COUNT(*) AS transactions
        FROM retail_sales
        GROUP BY 1
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []hourCount
	for rows.Next() {
		var h hourCount
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"shift", "transactions"}}
	for _, s := range ShiftCounts(hours) {
		res.Rows = append(res.Rows, []string{s.Shift, strconv.FormatInt(s.Count, 10)})
	}
	return res, nil
}

func runAgeGroupSpend(ctx context.Context, db DB, _ Params) (*Result, error) {
	rows, err := db.Query(ctx, `
        SELECT age,
               COUNT(*) AS transactions,
               SUM(total_sale)::float8 AS revenue
        FROM retail_sales
        GROUP BY age
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ageStat
	for rows.Next() {
		var s ageStat
		if err := rows.Scan(&s.Age, &s.Count, &s.Sum); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"age_group", "avg_sale"}}
	for _, b := range AgeGroupAverages(stats) {
		res.Rows = append(res.Rows, []string{b.Group, formatFloat(b.AvgSale)})
	}
	return res, nil
}

func runProfitability(ctx context.Context, db DB, _ Params) (*Result, error) {
	var totalCost, totalRevenue float64
	err := db.QueryRow(ctx, `
        SELECT COALESCE(SUM(cogs), 0)::float8,
               COALESCE(SUM(total_sale), 0)::float8
        FROM retail_sales
    `).Scan(&totalCost, &totalRevenue)
	if err != nil {
		return nil, err
	}

	p := ComputeProfitability(totalCost, totalRevenue)

	margin := "undefined"
	if p.MarginDefined {
		margin = fmt.Sprintf("%.2f", p.MarginPct)
	}

	return &Result{
		Columns: []string{"total_cost", "total_revenue", "profit", "margin_pct"},
		Rows: [][]string{{
			formatFloat(p.TotalCost),
			formatFloat(p.TotalRevenue),
			formatFloat(p.Profit),
			margin,
		}},
	}, nil
}

func init() {
	for _, def := range computedReports {
		Register(def)
	}
}
