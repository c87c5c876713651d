package domain

import (
	"math"
	"strconv"
	"strings"
)

// MissingFieldError reports a row lacking one of the mandatory key
// fields (city, category, date). Such rows are dropped by the pipeline
// and counted per field, never fatal.
type MissingFieldError struct {
	Field string // "city", "category", or "date"
}

func (e *MissingFieldError) Error() string {
	return "raid record missing " + e.Field
}

// tonnageEpsilon is the slack allowed between HE + incendiary and the
// recorded total before a row is flagged as mismatched. The source data
// records tonnage to one decimal place.
const tonnageEpsilon = 0.1

// CleanRaid validates and coerces a raw CSV row into a Raid.
//
// Rows missing city, category, or a usable year are rejected with a
// *MissingFieldError. Tonnage fields are coerced to numeric; values that
// do not parse (or are negative) become zero, and the count of coerced
// fields is returned so callers can surface the data-quality tally.
// A row with any coerced tonnage field is never also flagged as a
// tonnage mismatch. The returned Raid carries no score; see
// Scorer.ScoreRaid.
func CleanRaid(raw RawRaidRecord) (Raid, int, error) {
	city := normalizeKey(raw.City)
	if city == "" {
		return Raid{}, 0, &MissingFieldError{Field: "city"}
	}
	category := normalizeKey(raw.Category)
	if category == "" {
		return Raid{}, 0, &MissingFieldError{Field: "category"}
	}
	year, ok := parseYear(raw.Year)
	if !ok {
		return Raid{}, 0, &MissingFieldError{Field: "date"}
	}

	coerced := 0
	he := parseTonnage(raw.HETons, &coerced)
	incendiary := parseTonnage(raw.IncendiaryTons, &coerced)
	total := parseTonnage(raw.TotalTons, &coerced)

	raid := Raid{
		City:           city,
		TargetName:     strings.TrimSpace(raw.TargetName),
		Category:       category,
		Day:            parseIntOrZero(raw.Day),
		Month:          parseIntOrZero(raw.Month),
		Year:           year,
		YearOutOfRange: year < MinYear || year > MaxYear,
		HETons:         he,
		IncendiaryTons: incendiary,
		TotalTons:      total,
	}

	if total > 0 {
		raid.IncendiaryShare = incendiary / total
		if raid.IncendiaryShare > 1 {
			raid.IncendiaryShare = 1
		}
	}
	// Coerced rows are counted once, as coercions; the mismatch check
	// applies only to rows whose tonnage parsed clean.
	if coerced == 0 && math.Abs(he+incendiary-total) > tonnageEpsilon {
		raid.TonnageMismatch = true
	}

	return raid, coerced, nil
}

// normalizeKey trims and upper-cases a grouping key so rows differing
// only in case or whitespace fall into the same group.
func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseYear resolves the year column into a four-digit year.
// The USSBS readouts encode years three ways: a full year ("1944"), a
// two-digit year ("44"), or an offset from 1940 ("4"). All resolve to
// 1944. Returns false when the column is empty or unparseable.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	year := int(v)
	switch {
	case year >= 1000:
		return year, true
	case year >= 10:
		return 1900 + year, true
	case year >= 0:
		return 1940 + year, true
	default:
		return 0, false
	}
}

// parseTonnage coerces a tonnage field to float64. Unparseable or
// negative values become zero and increment the coercion counter; this is
// the documented tolerance for OCR noise, not a correction.
func parseTonnage(s string, coerced *int) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		*coerced++
		return 0
	}
	return v
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
