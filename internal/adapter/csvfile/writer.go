package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
)

// exportHeader is the column layout of the cleaned-table download:
// the original columns plus the derived metrics.
var exportHeader = []string{
	"DAY", "MONTH", "YEAR",
	"TARGET_LOCATION", "TARGET_NAME", "CATEGORY",
	"HE_TONS", "INCENDIARY_TONS", "TOTAL_TONS",
	"INCENDIARY_SHARE", "AREA_BOMBING_SCORE", "SCORE_CATEGORY",
	"YEAR_OUT_OF_RANGE", "TONNAGE_MISMATCH",
}

// WriteRaids serializes the cleaned per-raid table as CSV, derived
// columns appended. This is the download counterpart of Parse.
func WriteRaids(w io.Writer, raids []domain.Raid) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range raids {
		row := []string{
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.City,
			r.TargetName,
			r.Category,
			formatTons(r.HETons),
			formatTons(r.IncendiaryTons),
			formatTons(r.TotalTons),
			strconv.FormatFloat(r.IncendiaryShare, 'f', 4, 64),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			r.ScoreCategory,
			strconv.FormatBool(r.YearOutOfRange),
			strconv.FormatBool(r.TonnageMismatch),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatTons keeps the one-decimal precision of the source data.
func formatTons(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
