package main

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"planctl/internal/forecast"
)

// runForecastImport reads a forecast workbook, shows the detected column
// mapping for confirmation, and uploads the normalized rows. This is the one
// upload flow where the client parses the file; BOM imports go to the server
// untouched.
func (a *App) runForecastImport(path string) error {
	rows, mapping, err := forecast.ReadWorkbook(path, nil)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cols := make([]int, 0, len(mapping.PeriodColumns))
	for c := range mapping.PeriodColumns {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	periods := make([]string, 0, len(cols))
	for _, c := range cols {
		periods = append(periods, mapping.PeriodColumns[c])
	}
	fmt.Fprintf(a.out, "detected %d period column(s): %s\n", len(periods), strings.Join(periods, ", "))
	if len(mapping.Skipped) > 0 {
		fmt.Fprintf(a.out, "ignored columns: %s\n", strings.Join(mapping.Skipped, ", "))
	}
	fmt.Fprintf(a.out, "%d forecast row(s) ready\n", len(rows))

	scanner := bufio.NewScanner(a.in)
	answer, ok := prompt(scanner, a.out, "upload? type yes to confirm: ")
	if !ok || answer != "yes" {
		fmt.Fprintln(a.out, "cancelled")
		return nil
	}

	fmt.Fprintln(a.out, "uploading ...")
	res, err := a.client.ImportForecast(context.Background(), rows)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}
