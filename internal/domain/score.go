package domain

import "sort"

// Score scale bounds. 0 is clearly precision bombing, 10 clearly area
// bombing.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// ScoreWeights configures the blend of the three component scores.
// Incendiary must be positive so the overall score is strictly monotonic
// in incendiary share; config validation enforces this.
type ScoreWeights struct {
	Target     float64
	Incendiary float64
	Tonnage    float64
}

// DefaultScoreWeights mirrors the reference classification: target
// designation dominates, incendiary share second, raw tonnage last.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Target: 0.5, Incendiary: 0.3, Tonnage: 0.2}
}

// DefaultTonnageCeiling caps the tonnage component. Raids above this
// total tonnage all receive the maximum tonnage score; the reference
// analysis clips tonnage at 500 tons for the same reason.
const DefaultTonnageCeiling = 500.0

// Scorer computes area bombing scores from a raid's target category,
// incendiary share, and total tonnage.
type Scorer struct {
	weights        ScoreWeights
	weightSum      float64
	tonnageCeiling float64
	areaCategories map[string]struct{}
}

// NewScorer builds a Scorer. Zero-value weights fall back to the
// defaults, a non-positive ceiling to DefaultTonnageCeiling. Category
// names are matched case-insensitively against the cleaned (upper-cased)
// raid category.
func NewScorer(w ScoreWeights, tonnageCeiling float64, areaCategories []string) *Scorer {
	if w == (ScoreWeights{}) {
		w = DefaultScoreWeights()
	}
	if tonnageCeiling <= 0 {
		tonnageCeiling = DefaultTonnageCeiling
	}

	set := make(map[string]struct{}, len(areaCategories))
	for _, c := range areaCategories {
		c = normalizeKey(c)
		if c != "" {
			set[c] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, c := range DefaultAreaCategories() {
			set[c] = struct{}{}
		}
	}

	return &Scorer{
		weights:        w,
		weightSum:      w.Target + w.Incendiary + w.Tonnage,
		tonnageCeiling: tonnageCeiling,
		areaCategories: set,
	}
}

// DefaultAreaCategories lists the USSBS target categories treated as
// designated city-area attacks.
func DefaultAreaCategories() []string {
	return []string{"CITYAREA", "CITY AREA", "TOWN", "TOWNAREA"}
}

// ScoreRaid fills in Score, ScoreCategory, and ProcessedAt on a cleaned
// raid. Pure aside from reading the package clock.
func (s *Scorer) ScoreRaid(r Raid) Raid {
	r.Score = s.score(r)
	r.ScoreCategory = ScoreCategory(r.Score)
	r.ProcessedAt = clock.Now()
	return r
}

// score blends the three component scores and clamps to [0,10]. The
// clamp absorbs outliers caused by data-entry errors (e.g. incendiary
// tonnage exceeding total).
func (s *Scorer) score(r Raid) float64 {
	target, incendiary, tonnage := s.ComponentScores(r)
	v := (s.weights.Target*target + s.weights.Incendiary*incendiary + s.weights.Tonnage*tonnage) / s.weightSum
	return clamp(v, ScoreMin, ScoreMax)
}

// ComponentScores returns the three 0-10 component scores: target
// designation, incendiary share, and tonnage.
func (s *Scorer) ComponentScores(r Raid) (target, incendiary, tonnage float64) {
	if _, ok := s.areaCategories[r.Category]; ok {
		target = ScoreMax
	}
	incendiary = clamp(r.IncendiaryShare*ScoreMax, ScoreMin, ScoreMax)
	tonnage = clamp(r.TotalTons/s.tonnageCeiling*ScoreMax, ScoreMin, ScoreMax)
	return target, incendiary, tonnage
}

// ScoreCategory maps a score to its presentation bin. Bin edges follow
// the reference classification: [0,2) very precise through [8,10] heavy
// area.
func ScoreCategory(score float64) string {
	switch {
	case score < 2:
		return "Very Precise (0-2)"
	case score < 4:
		return "Precise (2-4)"
	case score < 6:
		return "Mixed (4-6)"
	case score < 8:
		return "Area (6-8)"
	default:
		return "Heavy Area (8-10)"
	}
}

// ScoreCategories returns the bin labels in ascending score order.
func ScoreCategories() []string {
	return []string{
		"Very Precise (0-2)",
		"Precise (2-4)",
		"Mixed (4-6)",
		"Area (6-8)",
		"Heavy Area (8-10)",
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AreaCategoryList returns the configured area categories, for logging.
func (s *Scorer) AreaCategoryList() []string {
	out := make([]string, 0, len(s.areaCategories))
	for c := range s.areaCategories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
