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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// formatValue renders a pgx result value as display text.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	case pgtype.Time:
		if !val.Valid {
			return ""
		}
		secs := val.Microseconds / 1_000_000
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		f, err := val.Float64Value()
		if err != nil {
			return ""
		}
		return formatFloat(f.Float64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat renders a float with two decimal places, the precision of
// every monetary column.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Render lays a result out as an aligned text table.
func Render(res *Result) string {
	if res == nil || len(res.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(res.Columns))
	for i, col := range res.Columns {
		widths[i] = len(col)
	}
	for _, row := range res.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(res.Columns)
	sep := make([]string, len(res.Columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range res.Rows {
		writeRow(row)
	}

	if len(res.Rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		b.WriteString(fmt.Sprintf("(%d rows)\n", len(res.Rows)))
	}
	return b.String()
}
