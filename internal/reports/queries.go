//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import "context"

// SQL-backed reports. Column names come from the query aliases; row order
// is pinned by ORDER BY so repeated runs render identically.
var sqlReports = []Definition{
	{
		Name:        "sales_on_date",
		Description: "All transactions on one calendar date",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT *
                FROM retail_sales
                WHERE sale_date = $1::date
                ORDER BY transaction_id
            `, p.Date)
		},
	},
	{
		Name:        "category_month_sales",
		Description: "Transactions for one category above a quantity floor within one month",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT *
                FROM retail_sales
                WHERE category = $1
                  AND quantity > $2
                  AND to_char(sale_date, 'YYYY-MM') = $3
                ORDER BY transaction_id
            `, p.Category, p.MinQuantity, p.Month)
		},
	},
	{
		Name:        "category_sales",
		Description: "Units sold and revenue per category",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       SUM(quantity) AS total_quantity,
                       SUM(total_sale) AS net_sale
                FROM retail_sales
                GROUP BY category
                ORDER BY category
            `)
		},
	},
	{
		Name:        "category_orders",
		Description: "Order count and revenue per category, highest revenue first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       COUNT(*) AS total_orders,
                       SUM(total_sale) AS net_sale
                FROM retail_sales
                GROUP BY category
                ORDER BY net_sale DESC, category
            `)
		},
	},
	{
		Name:        "category_avg_age",
		Description: "Average customer age per category, oldest first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       ROUND(AVG(age), 2) AS avg_age
                FROM retail_sales
                GROUP BY category
                ORDER BY avg_age DESC, category
            `)
		},
	},
	{
		Name:        "category_gender_age",
		Description: "Average customer age per category and gender",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       gender,
                       ROUND(AVG(age), 2) AS avg_age
                FROM retail_sales
                GROUP BY category, gender
                ORDER BY category, gender
            `)
		},
	},
	{
		Name:        "high_value_sales",
		Description: "Transactions above the high-value threshold",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT *
                FROM retail_sales
                WHERE total_sale > $1
                ORDER BY total_sale DESC, transaction_id
            `, p.HighValueThreshold)
		},
	},
	{
		Name:        "high_value_profile",
		Description: "Count and average age of high-value buyers",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT COUNT(*) AS transactions,
                       ROUND(AVG(age), 2) AS avg_age
                FROM retail_sales
                WHERE total_sale > $1
            `, p.HighValueThreshold)
		},
	},
	{
		Name:        "high_value_by_category",
		Description: "High-value revenue and count per category, highest revenue first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       COUNT(*) AS transactions,
                       SUM(total_sale) AS revenue
                FROM retail_sales
                WHERE total_sale > $1
                GROUP BY category
                ORDER BY revenue DESC, category
            `, p.HighValueThreshold)
		},
	},
	{
		Name:        "high_value_by_gender",
		Description: "High-value revenue and count per gender, highest revenue first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT gender,
                       COUNT(*) AS transactions,
                       SUM(total_sale) AS revenue
                FROM retail_sales
                WHERE total_sale > $1
                GROUP BY gender
                ORDER BY revenue DESC, gender
            `, p.HighValueThreshold)
		},
	},
	{
		Name:        "gender_category_counts",
		Description: "Transaction count per gender and category",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT gender,
                       category,
                       COUNT(*) AS transactions
                FROM retail_sales
                GROUP BY gender, category
                ORDER BY gender, transactions DESC, category
            `)
		},
	},
	{
		Name:        "top_customers",
		Description: "Customers with the highest total sales",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			// Ties at the cut-off resolve by customer_id so the result
			// is stable across runs.
			return runQuery(ctx, db, `
                SELECT customer_id,
                       SUM(total_sale) AS total_sales
                FROM retail_sales
                GROUP BY customer_id
                ORDER BY total_sales DESC, customer_id ASC
                LIMIT $1
            `, p.TopN)
		},
	},
	{
		Name:        "unique_customers_per_category",
		Description: "Distinct buyers per category, most first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       COUNT(DISTINCT customer_id) AS unique_customers
                FROM retail_sales
                GROUP BY category
                ORDER BY unique_customers DESC, category
            `)
		},
	},
	{
		Name:        "monthly_revenue",
		Description: "Revenue per calendar month, oldest first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT to_char(sale_date, 'YYYY-MM') AS month,
                       SUM(total_sale) AS revenue
                FROM retail_sales
                GROUP BY 1
                ORDER BY 1
            `)
		},
	},
	{
		Name:        "customer_lifetime_value",
		Description: "Total sales per customer, highest first",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT customer_id,
                       SUM(total_sale) AS lifetime_value
                FROM retail_sales
                GROUP BY customer_id
                ORDER BY lifetime_value DESC, customer_id
            `)
		},
	},
	{
		Name:        "gender_distribution",
		Description: "Transaction count and revenue per gender",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT gender,
                       COUNT(*) AS transactions,
                       SUM(total_sale) AS revenue
                FROM retail_sales
                GROUP BY gender
                ORDER BY gender
            `)
		},
	},
	{
		Name:        "category_avg_sale",
		Description: "Average sale value per category",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT category,
                       ROUND(AVG(total_sale), 2) AS avg_sale
                FROM retail_sales
                GROUP BY category
                ORDER BY category
            `)
		},
	},
	{
		Name:        "repeat_customers",
		Description: "Number of customers with more than one purchase",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT COUNT(*) AS repeat_customers
                FROM (
                    SELECT customer_id
                    FROM retail_sales
                    GROUP BY customer_id
                    HAVING COUNT(*) > 1
                ) c
            `)
		},
	},
	{
		Name:        "hourly_sales",
		Description: "Transaction count and revenue per hour of day",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT EXTRACT(HOUR FROM sale_time)::int AS hour,
                       COUNT(*) AS transactions,
                       SUM(total_sale) AS revenue
                FROM retail_sales
                GROUP BY 1
                ORDER BY 1
            `)
		},
	},
	{
		Name:        "above_average_sales",
		Description: "Transactions whose value exceeds the overall average sale",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			// The subquery evaluates once; every returned row is strictly
			// above the table-wide average.
			return runQuery(ctx, db, `
                SELECT *
                FROM retail_sales
                WHERE total_sale > (SELECT AVG(total_sale) FROM retail_sales)
                ORDER BY total_sale DESC, transaction_id
            `)
		},
	},
	{
		Name:        "sales_summary",
		Description: "Dataset roll-up: transactions, distinct customers, distinct categories",
		Run: func(ctx context.Context, db DB, p Params) (*Result, error) {
			return runQuery(ctx, db, `
                SELECT COUNT(*) AS transactions,
                       COUNT(DISTINCT customer_id) AS customers,
                       COUNT(DISTINCT category) AS categories
                FROM retail_sales
            `)
		},
	},
}

func init() {
	for _, def := range sqlReports {
		Register(def)
	}
}
