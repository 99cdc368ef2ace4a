// Package forecast performs the local column mapping for sales-forecast
// workbook uploads. This is the one import path where the client parses a
// tabular file itself: the sku column and the period columns are detected
// from the header row (with manual override), rows are normalized, and only
// the normalized rows travel to the server. BOM file imports never pass
// through here — those are parsed server-side.
package forecast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"planctl/internal/models"
)

// Mapping describes which workbook columns hold what. Column indexes are
// zero-based positions within the header row.
type Mapping struct {
	SKUColumn     int
	PeriodColumns map[int]string // column index -> period label
	Skipped       []string       // header cells that mapped to nothing
}

// skuHeaders are the header spellings recognized as the sku column.
var skuHeaders = map[string]bool{
	"sku": true, "item": true, "item_sku": true, "product": true, "code": true,
}

// DetectMapping inspects a header row and maps the sku column plus one
// column per forecast period. A period column is any header parsing as a
// YYYY-MM label. Headers mapping to neither are reported in Skipped so the
// user can see what was ignored.
func DetectMapping(header []string) (*Mapping, error) {
	m := &Mapping{SKUColumn: -1, PeriodColumns: map[int]string{}}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case skuHeaders[name]:
			if m.SKUColumn >= 0 {
				return nil, fmt.Errorf("two sku columns: %d and %d", m.SKUColumn, i)
			}
			m.SKUColumn = i
		case isPeriodLabel(name):
			m.PeriodColumns[i] = name
		default:
			if name != "" {
				m.Skipped = append(m.Skipped, cell)
			}
		}
	}
	if m.SKUColumn < 0 {
		return nil, fmt.Errorf("no sku column found in header %v", header)
	}
	if len(m.PeriodColumns) == 0 {
		return nil, fmt.Errorf("no period columns (YYYY-MM) found in header %v", header)
	}
	return m, nil
}

// isPeriodLabel accepts YYYY-MM.
func isPeriodLabel(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil || year < 1900 || year > 2999 {
		return false
	}
	month, err := strconv.Atoi(s[5:])
	return err == nil && month >= 1 && month <= 12
}

// RowError is a cell-level problem, positioned for the user (1-based row
// numbers as a spreadsheet shows them).
type RowError struct {
	Row    int
	Column string
	Msg    string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Msg)
}

// ReadWorkbook opens an .xlsx file, detects (or applies) a column mapping on
// the first sheet's header row, and returns normalized forecast rows. When
// mapping is nil the mapping is auto-detected. Blank quantity cells are
// skipped; non-numeric ones are errors.
func ReadWorkbook(path string, mapping *Mapping) ([]models.ForecastRow, *Mapping, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet %s has no data rows", sheets[0])
	}

	if mapping == nil {
		mapping, err = DetectMapping(rows[0])
		if err != nil {
			return nil, nil, err
		}
	}

	out, err := mapRows(rows, mapping)
	if err != nil {
		return nil, nil, err
	}
	return out, mapping, nil
}

// mapRows applies a mapping to raw sheet rows (rows[0] is the header).
// Output order is row-major, period columns left to right.
func mapRows(rows [][]string, m *Mapping) ([]models.ForecastRow, error) {
	header := rows[0]
	cols := make([]int, 0, len(m.PeriodColumns))
	for col := range m.PeriodColumns {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	var out []models.ForecastRow
	for ri, row := range rows[1:] {
		sku := cellAt(row, m.SKUColumn)
		if strings.TrimSpace(sku) == "" {
			continue // blank line
		}
		for _, col := range cols {
			period := m.PeriodColumns[col]
			raw := strings.TrimSpace(cellAt(row, col))
			if raw == "" {
				continue
			}
			qty, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, RowError{Row: ri + 2, Column: cellAt(header, col), Msg: "not a number: " + raw}
			}
			if qty < 0 {
				return nil, RowError{Row: ri + 2, Column: cellAt(header, col), Msg: "negative quantity"}
			}
			out = append(out, models.ForecastRow{
				SKU:      strings.TrimSpace(sku),
				Period:   period,
				Quantity: qty,
			})
		}
	}
	return out, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
