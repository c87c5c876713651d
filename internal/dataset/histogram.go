package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
)

// distributionBins matches the reference analysis, which draws all score
// histograms with 20 bins over the fixed [0,10] axis.
const distributionBins = 20

// Bin is one bucket of the score distribution, [Low, High).
// The final bin includes the maximum score.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Distribution returns the area-bombing-score histogram for the raids
// matching the filter. Always 20 bins over [0,10], so charts stay
// comparable across slices.
func (s *Snapshot) Distribution(f Filter) []Bin {
	view := s.Slice(f)

	scores := make([]float64, len(view.Raids))
	for i, r := range view.Raids {
		scores[i] = r.Score
	}
	sort.Float64s(scores)

	dividers := make([]float64, distributionBins+1)
	floats.Span(dividers, domain.ScoreMin, domain.ScoreMax)
	// Scores sit exactly on the closed upper bound; nudge the last
	// divider so they land in the final bucket instead of panicking.
	dividers[distributionBins] = math.Nextafter(domain.ScoreMax, domain.ScoreMax+1)

	counts := stat.Histogram(nil, dividers, scores, nil)

	bins := make([]Bin, distributionBins)
	width := (domain.ScoreMax - domain.ScoreMin) / distributionBins
	for i := range bins {
		bins[i] = Bin{
			Low:   domain.ScoreMin + float64(i)*width,
			High:  domain.ScoreMin + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	return bins
}
