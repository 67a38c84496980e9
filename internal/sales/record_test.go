package sales

import (
	"errors"
	"testing"
)

func validFields() []string {
	return []string{
		"1", "2022-11-05", "10:47:00", "17", "Female", "41",
		"Clothing", "3", "300.00", "129.00", "900.00",
	}
}

func TestParseRowValid(t *testing.T) {
	rec, err := ParseRow(1, validFields())
	if err != nil {
		t.Fatalf("ParseRow failed: %v", err)
	}

	if rec.TransactionID != 1 {
		t.Errorf("Expected TransactionID 1, got %d", rec.TransactionID)
	}
	if !rec.SaleDate.Valid || rec.SaleDate.Time.Format("2006-01-02") != "2022-11-05" {
		t.Errorf("Unexpected SaleDate: %+v", rec.SaleDate)
	}
	wantMicros := int64(10*3600+47*60) * 1_000_000
	if !rec.SaleTime.Valid || rec.SaleTime.Microseconds != wantMicros {
		t.Errorf("Unexpected SaleTime: %+v", rec.SaleTime)
	}
	if !rec.Quantity.Valid || rec.Quantity.Int32 != 3 {
		t.Errorf("Unexpected Quantity: %+v", rec.Quantity)
	}
	if !rec.TotalSale.Valid || rec.TotalSale.Float64 != 900 {
		t.Errorf("Unexpected TotalSale: %+v", rec.TotalSale)
	}
	if rec.Dirty() {
		t.Error("Fully populated record reported dirty")
	}
}

func TestParseRowEmptyFieldsBecomeNull(t *testing.T) {
	for i, column := range Columns[1:] {
		fields := validFields()
		fields[i+1] = ""

		rec, err := ParseRow(1, fields)
		if err != nil {
			t.Fatalf("ParseRow with empty %s failed: %v", column, err)
		}
		if !rec.Dirty() {
			t.Errorf("Record with empty %s not reported dirty", column)
		}
	}
}

func TestParseRowErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]string) []string
	}{
		{
			name:   "wrong column count",
			mutate: func(f []string) []string { return f[:5] },
		},
		{
			name: "empty transaction id",
			mutate: func(f []string) []string {
				f[0] = ""
				return f
			},
		},
		{
			name: "non-integer transaction id",
			mutate: func(f []string) []string {
				f[0] = "abc"
				return f
			},
		},
		{
			name: "bad date",
			mutate: func(f []string) []string {
				f[1] = "05/11/2022"
				return f
			},
		},
		{
			name: "bad time",
			mutate: func(f []string) []string {
				f[2] = "ten o'clock"
				return f
			},
		},
		{
			name: "non-integer age",
			mutate: func(f []string) []string {
				f[5] = "forty"
				return f
			},
		},
		{
			name: "non-numeric total",
			mutate: func(f []string) []string {
				f[10] = "9x0"
				return f
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(7, tt.mutate(validFields()))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("Expected *RowError, got %T", err)
			}
			if rowErr.Line != 7 {
				t.Errorf("Expected line 7 in error, got %d", rowErr.Line)
			}
		})
	}
}

func TestIsHeader(t *testing.T) {
	if !IsHeader(Columns) {
		t.Error("Column header line not detected")
	}
	if !IsHeader([]string{"Transaction_ID", "Sale_Date"}) {
		t.Error("Header detection should be case-insensitive")
	}
	if IsHeader(validFields()) {
		t.Error("Data row misdetected as header")
	}
}

func TestCopyValuesOrder(t *testing.T) {
	rec, err := ParseRow(1, validFields())
	if err != nil {
		t.Fatalf("ParseRow failed: %v", err)
	}
	vals := rec.CopyValues()
	if len(vals) != len(Columns) {
		t.Fatalf("Expected %d values, got %d", len(Columns), len(vals))
	}
}
