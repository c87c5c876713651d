// Package csvfile reads the pre-processed raid CSV and writes the
// cleaned table back out for download.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
)

// Reader loads raw raid records from a CSV file. A header row is
// required; column order is free and several historical header spellings
// are accepted.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the given file path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// columns maps normalized header names to record fields. Header names
// are normalized by upper-casing and stripping spaces and underscores,
// so "target_location", "Target Location", and "TARGETLOCATION" all
// resolve to the city column.
var columns = map[string]string{
	"DAY":   "day",
	"MONTH": "month",
	"YEAR":  "year",

	"TARGETLOCATION": "city",
	"LOCATION":       "city",
	"CITY":           "city",

	"TARGETNAME": "target_name",
	"TARGET":     "target_name",

	"CATEGORY":       "category",
	"TARGETCATEGORY": "category",

	"HETONS":            "he_tons",
	"HIGHEXPLOSIVETONS": "he_tons",

	"INCENDIARYTONS": "incendiary_tons",
	"ICTONS":         "incendiary_tons",

	"TOTALTONS": "total_tons",
	"TONS":      "total_tons",
}

// mandatory lists the logical columns that must appear in the header.
// Tonnage columns may be absent; missing tonnage reads as zero.
var mandatory = []string{"city", "category", "year"}

// ReadRecords reads the whole file into raw records. The header row is
// consumed here; ragged short rows are padded with empty fields rather
// than rejected, matching the tolerance for OCR noise.
func (r *Reader) ReadRecords(ctx context.Context) ([]domain.RawRaidRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	r.logger.Info("input loaded", "path", r.path, "rows", len(records))
	return records, nil
}

// Parse reads raid CSV content from any reader. Exposed separately so
// tests and the validate command can parse in-memory data.
func Parse(src io.Reader) ([]domain.RawRaidRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // row lengths vary in the digitized data

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var out []domain.RawRaidRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+2, err)
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		out = append(out, domain.RawRaidRecord{
			Day:            field("day"),
			Month:          field("month"),
			Year:           field("year"),
			City:           field("city"),
			TargetName:     field("target_name"),
			Category:       field("category"),
			HETons:         field("he_tons"),
			IncendiaryTons: field("incendiary_tons"),
			TotalTons:      field("total_tons"),
		})
	}

	return out, nil
}

// mapHeader resolves the header row to logical column indexes. The first
// header matching a logical column wins; extra columns are ignored.
func mapHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int)
	for i, h := range header {
		logical, ok := columns[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, taken := idx[logical]; !taken {
			idx[logical] = i
		}
	}

	var missing []string
	for _, name := range mandatory {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

func normalizeHeader(h string) string {
	h = strings.ToUpper(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}
