package domain

import "github.com/montanaflynn/stats"

// Summary holds the aggregate statistics for one group of raids
// (a city, a target category, or a year).
type Summary struct {
	Count          int     `json:"count"`
	HETons         float64 `json:"he_tons"`
	IncendiaryTons float64 `json:"incendiary_tons"`
	TotalTons      float64 `json:"total_tons"`
	MeanScore      float64 `json:"mean_score"`
	MedianScore    float64 `json:"median_score"`
	StdDevScore    float64 `json:"std_dev_score"`
}

// Summarize computes the aggregate statistics over a set of raids.
// An empty set yields the zero Summary.
func Summarize(raids []Raid) Summary {
	if len(raids) == 0 {
		return Summary{}
	}

	s := Summary{Count: len(raids)}
	scores := make([]float64, len(raids))
	for i, r := range raids {
		s.HETons += r.HETons
		s.IncendiaryTons += r.IncendiaryTons
		s.TotalTons += r.TotalTons
		scores[i] = r.Score
	}

	// The stats functions only error on empty input, which is guarded above.
	s.MeanScore, _ = stats.Mean(scores)
	s.MedianScore, _ = stats.Median(scores)
	// Sample standard deviation, ddof=1. A single raid has no spread;
	// skipping it keeps the JSON free of NaN.
	if len(raids) > 1 {
		s.StdDevScore, _ = stats.StandardDeviationSample(scores)
	}

	return s
}
