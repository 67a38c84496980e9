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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Columns is the CSV column order, which matches the table definition.
var Columns = []string{
	"transaction_id",
	"sale_date",
	"sale_time",
	"customer_id",
	"gender",
	"age",
	"category",
	"quantity",
	"price_per_unit",
	"cogs",
	"total_sale",
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// RowError describes a malformed source row. It is distinct from I/O
// errors so callers can tell a bad line from an unreadable source.
type RowError struct {
	Line   int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d: column %s: %s", e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// Record is one retail sales transaction. Every field except the key may
// be missing until the cleaner has run.
type Record struct {
	TransactionID int32
	SaleDate      pgtype.Date
	SaleTime      pgtype.Time
	CustomerID    pgtype.Int4
	Gender        pgtype.Text
	Age           pgtype.Int4
	Category      pgtype.Text
	Quantity      pgtype.Int4
	PricePerUnit  pgtype.Float8
	Cogs          pgtype.Float8
	TotalSale     pgtype.Float8
}

// Dirty reports whether any field of the record is missing.
func (r *Record) Dirty() bool {
	return !r.SaleDate.Valid ||
		!r.SaleTime.Valid ||
		!r.CustomerID.Valid ||
		!r.Gender.Valid ||
		!r.Age.Valid ||
		!r.Category.Valid ||
		!r.Quantity.Valid ||
		!r.PricePerUnit.Valid ||
		!r.Cogs.Valid ||
		!r.TotalSale.Valid
}

// CopyValues returns the record in table column order for bulk insert.
func (r *Record) CopyValues() []any {
	return []any{
		r.TransactionID,
		r.SaleDate,
		r.SaleTime,
		r.CustomerID,
		r.Gender,
		r.Age,
		r.Category,
		r.Quantity,
		r.PricePerUnit,
		r.Cogs,
		r.TotalSale,
	}
}

// ParseRow converts one CSV row into a Record. Empty fields become SQL
// NULLs; values that are present but unparseable make the row malformed.
func ParseRow(line int, fields []string) (*Record, error) {
	if len(fields) != len(Columns) {
		return nil, &RowError{
			Line:   line,
			Reason: fmt.Sprintf("expected %d columns, got %d", len(Columns), len(fields)),
		}
	}

	rec := &Record{}

	id := strings.TrimSpace(fields[0])
	if id == "" {
		return nil, &RowError{Line: line, Column: "transaction_id", Reason: "must not be empty"}
	}
	v, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return nil, &RowError{Line: line, Column: "transaction_id", Reason: "not an integer"}
	}
	rec.TransactionID = int32(v)

	if s := strings.TrimSpace(fields[1]); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, &RowError{Line: line, Column: "sale_date", Reason: "not a date (want YYYY-MM-DD)"}
		}
		rec.SaleDate = pgtype.Date{Time: d, Valid: true}
	}

	if s := strings.TrimSpace(fields[2]); s != "" {
		tm, err := time.Parse(timeLayout, s)
		if err != nil {
			return nil, &RowError{Line: line, Column: "sale_time", Reason: "not a time (want HH:MM:SS)"}
		}
		micros := int64(tm.Hour())*3600_000_000 +
			int64(tm.Minute())*60_000_000 +
			int64(tm.Second())*1_000_000
		rec.SaleTime = pgtype.Time{Microseconds: micros, Valid: true}
	}

	if rec.CustomerID, err = parseInt4(line, "customer_id", fields[3]); err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(fields[4]); s != "" {
		rec.Gender = pgtype.Text{String: s, Valid: true}
	}

	if rec.Age, err = parseInt4(line, "age", fields[5]); err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(fields[6]); s != "" {
		rec.Category = pgtype.Text{String: s, Valid: true}
	}

	if rec.Quantity, err = parseInt4(line, "quantity", fields[7]); err != nil {
		return nil, err
	}

	if rec.PricePerUnit, err = parseFloat8(line, "price_per_unit", fields[8]); err != nil {
		return nil, err
	}
	if rec.Cogs, err = parseFloat8(line, "cogs", fields[9]); err != nil {
		return nil, err
	}
	if rec.TotalSale, err = parseFloat8(line, "total_sale", fields[10]); err != nil {
		return nil, err
	}

	return rec, nil
}

func parseInt4(line int, column, field string) (pgtype.Int4, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return pgtype.Int4{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{}, &RowError{Line: line, Column: column, Reason: "not an integer"}
	}
	return pgtype.Int4{Int32: int32(v), Valid: true}, nil
}

func parseFloat8(line int, column, field string) (pgtype.Float8, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return pgtype.Float8{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{}, &RowError{Line: line, Column: column, Reason: "not a number"}
	}
	return pgtype.Float8{Float64: v, Valid: true}, nil
}

// IsHeader reports whether a CSV row looks like the column header line.
func IsHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), Columns[0])
}
