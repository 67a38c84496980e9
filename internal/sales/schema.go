//-------------------------------------------------------------------------
//
// salescope - retail sales analytics pipeline
//
// Copyright (c) 2025 - 2026, the salescope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales defines the retail_sales table and its loading and
// cleaning operations.
package sales

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TableName is the name of the fact table all operations work against.
const TableName = "retail_sales"

// Schema SQL for the retail sales fact table. One denormalized row per
// transaction; every column except the key is nullable until the cleaner
// has run.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS retail_sales (
    transaction_id INTEGER PRIMARY KEY,
    sale_date      DATE,
    sale_time      TIME,
    customer_id    INTEGER,
    gender         VARCHAR(15),
    age            INTEGER,
    category       VARCHAR(30),
    quantity       INTEGER,
    price_per_unit NUMERIC(10,2),
    cogs           NUMERIC(10,2),
    total_sale     NUMERIC(10,2)
);

CREATE INDEX IF NOT EXISTS idx_retail_sales_date ON retail_sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_retail_sales_customer ON retail_sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_retail_sales_category ON retail_sales(category);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS retail_sales CASCADE;
`

// CreateSchema creates the retail_sales table and its indexes.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the retail_sales table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
