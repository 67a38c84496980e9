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
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/salescope/salescope/internal/sales"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("Generated CSV does not parse: %v", err)
	}
	return records
}

func TestWriteSampleCSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFakerWithSeed(1)

	n, err := WriteSampleCSV(&buf, SampleConfig{Rows: 50}, f)
	if err != nil {
		t.Fatalf("WriteSampleCSV failed: %v", err)
	}
	if n != 50 {
		t.Errorf("Expected 50 rows written, got %d", n)
	}

	records := readAll(t, &buf)
	if len(records) != 51 {
		t.Fatalf("Expected header + 50 rows, got %d records", len(records))
	}

	for i, col := range sales.Columns {
		if records[0][i] != col {
			t.Errorf("Header column %d = %q, want %q", i, records[0][i], col)
		}
	}

	for i, row := range records[1:] {
		if len(row) != len(sales.Columns) {
			t.Fatalf("Row %d has %d fields, want %d", i+1, len(row), len(sales.Columns))
		}
		if row[0] != strconv.Itoa(i+1) {
			t.Errorf("Row %d transaction_id = %q, want %d", i+1, row[0], i+1)
		}
	}
}

func TestWriteSampleCSVCleanByDefault(t *testing.T) {
	var buf bytes.Buffer
	f := NewFakerWithSeed(2)

	if _, err := WriteSampleCSV(&buf, SampleConfig{Rows: 200}, f); err != nil {
		t.Fatalf("WriteSampleCSV failed: %v", err)
	}

	for i, row := range readAll(t, &buf)[1:] {
		for j, field := range row {
			if field == "" {
				t.Errorf("Row %d field %d is empty with DirtyRatio 0", i+1, j)
			}
		}
	}
}

func TestWriteSampleCSVDirtyRatio(t *testing.T) {
	var buf bytes.Buffer
	f := NewFakerWithSeed(3)

	if _, err := WriteSampleCSV(&buf, SampleConfig{Rows: 200, DirtyRatio: 0.5}, f); err != nil {
		t.Fatalf("WriteSampleCSV failed: %v", err)
	}

	dirty := 0
	for _, row := range readAll(t, &buf)[1:] {
		if row[0] == "" {
			t.Error("transaction_id blanked; only nullable fields may be dirty")
		}
		for _, field := range row[1:] {
			if field == "" {
				dirty++
				break
			}
		}
	}

	// 0.5 ratio over 200 rows; allow generous slack for randomness.
	if dirty < 60 || dirty > 140 {
		t.Errorf("Expected roughly 100 dirty rows, got %d", dirty)
	}
}

func TestWriteSampleCSVReproducible(t *testing.T) {
	var a, b bytes.Buffer
	cfg := SampleConfig{Rows: 25, DirtyRatio: 0.2}

	if _, err := WriteSampleCSV(&a, cfg, NewFakerWithSeed(42)); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if _, err := WriteSampleCSV(&b, cfg, NewFakerWithSeed(42)); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("Same seed produced different output")
	}
}

func TestWriteSampleCSVTotals(t *testing.T) {
	var buf bytes.Buffer
	f := NewFakerWithSeed(4)

	if _, err := WriteSampleCSV(&buf, SampleConfig{Rows: 100}, f); err != nil {
		t.Fatalf("WriteSampleCSV failed: %v", err)
	}

	for i, row := range readAll(t, &buf)[1:] {
		qty, _ := strconv.Atoi(row[7])
		price, _ := strconv.ParseFloat(row[8], 64)
		cogs, _ := strconv.ParseFloat(row[9], 64)
		total, _ := strconv.ParseFloat(row[10], 64)

		if want := float64(qty) * price; total != want {
			t.Errorf("Row %d total %v != quantity*price %v", i+1, total, want)
		}
		if cogs <= 0 || cogs > total {
			t.Errorf("Row %d cogs %v outside (0, total %v]", i+1, cogs, total)
		}
	}
}
