package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() RawRaidRecord {
	return RawRaidRecord{
		Day:            "15",
		Month:          "2",
		Year:           "1944",
		City:           "BERLIN",
		TargetName:     "Ball Bearing Plant",
		Category:       "INDUSTRIAL",
		HETons:         "200",
		IncendiaryTons: "100",
		TotalTons:      "300",
	}
}

func TestCleanRaid(t *testing.T) {
	t.Run("well-formed row", func(t *testing.T) {
		raid, coerced, err := CleanRaid(validRecord())

		require.NoError(t, err)
		assert.Equal(t, 0, coerced)
		assert.Equal(t, "BERLIN", raid.City)
		assert.Equal(t, "Ball Bearing Plant", raid.TargetName)
		assert.Equal(t, "INDUSTRIAL", raid.Category)
		assert.Equal(t, 15, raid.Day)
		assert.Equal(t, 2, raid.Month)
		assert.Equal(t, 1944, raid.Year)
		assert.False(t, raid.YearOutOfRange)
		assert.Equal(t, 200.0, raid.HETons)
		assert.Equal(t, 100.0, raid.IncendiaryTons)
		assert.Equal(t, 300.0, raid.TotalTons)
		assert.InDelta(t, 1.0/3.0, raid.IncendiaryShare, 1e-9)
		assert.False(t, raid.TonnageMismatch)
	})

	t.Run("city normalized", func(t *testing.T) {
		rec := validRecord()
		rec.City = "  berlin "
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, "BERLIN", raid.City)
	})

	t.Run("category normalized", func(t *testing.T) {
		rec := validRecord()
		rec.Category = " industrial"
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, "INDUSTRIAL", raid.Category)
	})

	t.Run("missing city dropped", func(t *testing.T) {
		rec := validRecord()
		rec.City = "   "
		_, _, err := CleanRaid(rec)

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "city", missing.Field)
	})

	t.Run("missing category dropped", func(t *testing.T) {
		rec := validRecord()
		rec.Category = ""
		_, _, err := CleanRaid(rec)

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "category", missing.Field)
	})

	t.Run("missing year dropped as date", func(t *testing.T) {
		rec := validRecord()
		rec.Year = ""
		_, _, err := CleanRaid(rec)

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "date", missing.Field)
	})

	t.Run("unparseable year dropped as date", func(t *testing.T) {
		rec := validRecord()
		rec.Year = "19O4" // OCR letter O
		_, _, err := CleanRaid(rec)

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "date", missing.Field)
	})

	t.Run("unparseable tonnage coerced to zero", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "12.O"
		raid, coerced, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 1, coerced)
		assert.Equal(t, 0.0, raid.HETons)
	})

	t.Run("negative tonnage coerced to zero", func(t *testing.T) {
		rec := validRecord()
		rec.IncendiaryTons = "-50"
		raid, coerced, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 1, coerced)
		assert.Equal(t, 0.0, raid.IncendiaryTons)
	})

	t.Run("empty tonnage is zero without coercion", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = ""
		rec.IncendiaryTons = ""
		rec.TotalTons = ""
		raid, coerced, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 0, coerced)
		assert.Equal(t, 0.0, raid.TotalTons)
		assert.Equal(t, 0.0, raid.IncendiaryShare)
	})

	t.Run("multiple coercions counted per field", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "abc"
		rec.IncendiaryTons = "xyz"
		_, coerced, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 2, coerced)
	})

	t.Run("coerced tonnage does not flag a mismatch", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "12.O" // coerced to 0, leaving 0 + 100 far from 300
		raid, coerced, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 1, coerced)
		assert.False(t, raid.TonnageMismatch)
	})

	t.Run("tonnage mismatch flagged not corrected", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "100"
		rec.IncendiaryTons = "100"
		rec.TotalTons = "150"
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.True(t, raid.TonnageMismatch)
		assert.Equal(t, 150.0, raid.TotalTons)
	})

	t.Run("rounding slack tolerated", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "100.0"
		rec.IncendiaryTons = "50.0"
		rec.TotalTons = "150.1"
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.False(t, raid.TonnageMismatch)
	})

	t.Run("incendiary share clamped to 1", func(t *testing.T) {
		rec := validRecord()
		rec.HETons = "0"
		rec.IncendiaryTons = "200"
		rec.TotalTons = "100"
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 1.0, raid.IncendiaryShare)
		assert.True(t, raid.TonnageMismatch)
	})

	t.Run("out of range year kept and flagged", func(t *testing.T) {
		rec := validRecord()
		rec.Year = "1938"
		raid, _, err := CleanRaid(rec)

		require.NoError(t, err)
		assert.Equal(t, 1938, raid.Year)
		assert.True(t, raid.YearOutOfRange)
	})
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{"four digit", "1944", 1944, true},
		{"two digit", "44", 1944, true},
		{"offset from 1940", "4", 1944, true},
		{"offset zero", "0", 1940, true},
		{"offset five", "5", 1945, true},
		{"float readout", "1944.0", 1944, true},
		{"whitespace", " 1943 ", 1943, true},
		{"empty", "", 0, false},
		{"letters", "abc", 0, false},
		{"negative", "-4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := parseYear(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, year)
			}
		})
	}
}

func TestParseTonnage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		coerced  int
	}{
		{"plain", "125.5", 125.5, 0},
		{"zero", "0", 0, 0},
		{"empty is zero not coerced", "", 0, 0},
		{"whitespace only", "   ", 0, 0},
		{"OCR letter O", "12.O", 0, 1},
		{"letters", "N/A", 0, 1},
		{"negative", "-10", 0, 1},
		{"NaN", "NaN", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coerced := 0
			v := parseTonnage(tt.input, &coerced)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, tt.coerced, coerced)
		})
	}
}
