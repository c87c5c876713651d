package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("empty set yields zero summary", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
		assert.Equal(t, Summary{}, Summarize([]Raid{}))
	})

	t.Run("single raid", func(t *testing.T) {
		s := Summarize([]Raid{{HETons: 100, IncendiaryTons: 50, TotalTons: 150, Score: 4}})

		assert.Equal(t, 1, s.Count)
		assert.Equal(t, 100.0, s.HETons)
		assert.Equal(t, 50.0, s.IncendiaryTons)
		assert.Equal(t, 150.0, s.TotalTons)
		assert.Equal(t, 4.0, s.MeanScore)
		assert.Equal(t, 4.0, s.MedianScore)
		assert.Equal(t, 0.0, s.StdDevScore)
	})

	t.Run("tonnage sums and score statistics", func(t *testing.T) {
		raids := []Raid{
			{HETons: 100, IncendiaryTons: 0, TotalTons: 100, Score: 2},
			{HETons: 200, IncendiaryTons: 50, TotalTons: 250, Score: 4},
			{HETons: 50, IncendiaryTons: 150, TotalTons: 200, Score: 6},
		}

		s := Summarize(raids)

		assert.Equal(t, 3, s.Count)
		assert.Equal(t, 350.0, s.HETons)
		assert.Equal(t, 200.0, s.IncendiaryTons)
		assert.Equal(t, 550.0, s.TotalTons)
		assert.InDelta(t, 4.0, s.MeanScore, 1e-9)
		assert.InDelta(t, 4.0, s.MedianScore, 1e-9)
		// Sample std dev: sqrt(((2-4)^2 + (4-4)^2 + (6-4)^2) / 2).
		assert.InDelta(t, 2.0, s.StdDevScore, 1e-9)
	})

	t.Run("median on even count", func(t *testing.T) {
		raids := []Raid{{Score: 1}, {Score: 2}, {Score: 8}, {Score: 9}}
		s := Summarize(raids)
		assert.InDelta(t, 5.0, s.MedianScore, 1e-9)
	})
}
