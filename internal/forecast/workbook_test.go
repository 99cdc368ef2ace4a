package forecast_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"planctl/internal/forecast"
)

// writeWorkbook creates a one-sheet .xlsx file from string rows.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for ri, row := range rows {
		for ci, value := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "forecast.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestDetectMapping(t *testing.T) {
	m, err := forecast.DetectMapping([]string{"SKU", "Description", "2026-01", "2026-02", "Notes"})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if m.SKUColumn != 0 {
		t.Errorf("sku column = %d", m.SKUColumn)
	}
	if len(m.PeriodColumns) != 2 || m.PeriodColumns[2] != "2026-01" || m.PeriodColumns[3] != "2026-02" {
		t.Errorf("period columns = %v", m.PeriodColumns)
	}
	if len(m.Skipped) != 2 {
		t.Errorf("skipped = %v, want Description and Notes", m.Skipped)
	}
}

func TestDetectMappingRejectsBadHeaders(t *testing.T) {
	if _, err := forecast.DetectMapping([]string{"Description", "2026-01"}); err == nil {
		t.Error("header without sku column must be rejected")
	}
	if _, err := forecast.DetectMapping([]string{"sku", "Description"}); err == nil {
		t.Error("header without period columns must be rejected")
	}
	if _, err := forecast.DetectMapping([]string{"sku", "item", "2026-01"}); err == nil {
		t.Error("two sku columns must be rejected")
	}
	if _, err := forecast.DetectMapping([]string{"sku", "2026-13"}); err == nil {
		t.Error("month 13 must not parse as a period")
	}
}

func TestReadWorkbookNormalizesRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"SKU", "Description", "2026-01", "2026-02"},
		{"FG-100", "Widget", 120, 80.5},
		{"", "", "", ""}, // blank line is skipped
		{"FG-200", "Gadget", "", 40},
	})

	rows, m, err := forecast.ReadWorkbook(path, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.SKUColumn != 0 {
		t.Errorf("detected sku column = %d", m.SKUColumn)
	}
	type key struct {
		sku, period string
	}
	got := map[key]float64{}
	for _, r := range rows {
		got[key{r.SKU, r.Period}] = r.Quantity
	}
	want := map[key]float64{
		{"FG-100", "2026-01"}: 120,
		{"FG-100", "2026-02"}: 80.5,
		{"FG-200", "2026-02"}: 40,
	}
	if len(got) != len(want) {
		t.Fatalf("rows = %+v, want %+v", got, want)
	}
	for k, q := range want {
		if got[k] != q {
			t.Errorf("%v = %v, want %v", k, got[k], q)
		}
	}
}

func TestReadWorkbookReportsBadCells(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"SKU", "2026-01"},
		{"FG-100", "lots"},
	})
	_, _, err := forecast.ReadWorkbook(path, nil)
	if err == nil {
		t.Fatal("non-numeric quantity must be an error")
	}
	var re forecast.RowError
	if !errors.As(err, &re) {
		t.Fatalf("error is %T, want RowError", err)
	}
	if re.Row != 2 || re.Column != "2026-01" {
		t.Errorf("position = row %d column %q", re.Row, re.Column)
	}
}

func TestReadWorkbookManualOverride(t *testing.T) {
	// Headers the detector would not recognize; the user maps them by hand.
	path := writeWorkbook(t, [][]interface{}{
		{"Ref", "Jan Demand"},
		{"FG-100", 10},
	})
	m := &forecast.Mapping{SKUColumn: 0, PeriodColumns: map[int]string{1: "2026-01"}}
	rows, _, err := forecast.ReadWorkbook(path, m)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0].SKU != "FG-100" || rows[0].Period != "2026-01" || rows[0].Quantity != 10 {
		t.Errorf("rows = %+v", rows)
	}
}
