package csvfile

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
)

func TestWriteRaids(t *testing.T) {
	raids := []domain.Raid{
		{
			Day: 15, Month: 2, Year: 1944,
			City: "BERLIN", TargetName: "BALL BEARING PLANT", Category: "INDUSTRIAL",
			HETons: 200, IncendiaryTons: 100, TotalTons: 300,
			IncendiaryShare: 1.0 / 3.0,
			Score:           2.53, ScoreCategory: "Precise (2-4)",
		},
		{
			Year: 1938, City: "VIENNA", Category: "CITYAREA",
			TotalTons:      50,
			YearOutOfRange: true, TonnageMismatch: true,
			Score: 6.2, ScoreCategory: "Area (6-8)",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRaids(&buf, raids))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "15", first[0])
	assert.Equal(t, "1944", first[2])
	assert.Equal(t, "BERLIN", first[3])
	assert.Equal(t, "200.0", first[6])
	assert.Equal(t, "100.0", first[7])
	assert.Equal(t, "300.0", first[8])
	assert.Equal(t, "0.3333", first[9])
	assert.Equal(t, "2.53", first[10])
	assert.Equal(t, "Precise (2-4)", first[11])
	assert.Equal(t, "false", first[12])
	assert.Equal(t, "false", first[13])

	second := rows[2]
	assert.Equal(t, "VIENNA", second[3])
	assert.Equal(t, "true", second[12], "year out of range flag")
	assert.Equal(t, "true", second[13], "tonnage mismatch flag")
}

func TestWriteRaids_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRaids(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, exportHeader, rows[0])
}
