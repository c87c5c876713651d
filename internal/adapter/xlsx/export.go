// Package xlsx builds the summary-workbook download: one sheet for the
// cleaned per-raid table and one per grouped summary table.
package xlsx

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/raid-data-dashboard/internal/dataset"
	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
)

var raidHeader = []interface{}{
	"Day", "Month", "Year", "City", "Target Name", "Category",
	"HE Tons", "Incendiary Tons", "Total Tons",
	"Incendiary Share", "Area Bombing Score", "Score Category",
}

var summaryHeader = []interface{}{
	"", "Raids", "HE Tons", "Incendiary Tons", "Total Tons",
	"Mean Score", "Median Score", "Std Dev",
}

// WriteWorkbook serializes a snapshot into an xlsx workbook.
func WriteWorkbook(w io.Writer, snap *dataset.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	const raidsSheet = "Raids"
	if err := f.SetSheetName("Sheet1", raidsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRaidsSheet(f, raidsSheet, snap.Raids()); err != nil {
		return err
	}
	if err := writeSummarySheet(f, "By City", "City", stringRows(snap.ByCity())); err != nil {
		return err
	}
	if err := writeSummarySheet(f, "By Category", "Category", stringRows(snap.ByCategory())); err != nil {
		return err
	}
	if err := writeSummarySheet(f, "By Year", "Year", yearRows(snap.ByYear())); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRaidsSheet(f *excelize.File, sheet string, raids []domain.Raid) error {
	if err := f.SetSheetRow(sheet, "A1", &raidHeader); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, r := range raids {
		row := []interface{}{
			r.Day, r.Month, r.Year, r.City, r.TargetName, r.Category,
			r.HETons, r.IncendiaryTons, r.TotalTons,
			r.IncendiaryShare, r.Score, r.ScoreCategory,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// summaryRow pairs a group key with its summary, pre-sorted for stable
// workbook output.
type summaryRow struct {
	key     interface{}
	summary domain.Summary
}

func stringRows(m map[string]domain.Summary) []summaryRow {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]summaryRow, len(keys))
	for i, k := range keys {
		rows[i] = summaryRow{key: k, summary: m[k]}
	}
	return rows
}

func yearRows(m map[int]domain.Summary) []summaryRow {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([]summaryRow, len(keys))
	for i, k := range keys {
		rows[i] = summaryRow{key: k, summary: m[k]}
	}
	return rows
}

func writeSummarySheet(f *excelize.File, sheet, keyLabel string, rows []summaryRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s: %w", sheet, err)
	}

	header := append([]interface{}{}, summaryHeader...)
	header[0] = keyLabel
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	for i, r := range rows {
		row := []interface{}{
			r.key, r.summary.Count,
			r.summary.HETons, r.summary.IncendiaryTons, r.summary.TotalTons,
			r.summary.MeanScore, r.summary.MedianScore, r.summary.StdDevScore,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
