package domain

import "time"

// RawRaidRecord is one row of the attack-by-attack CSV, all fields as
// read from the file. Cleaning and type coercion happen in CleanRaid.
type RawRaidRecord struct {
	Day            string
	Month          string
	Year           string
	City           string // target location
	TargetName     string
	Category       string
	HETons         string
	IncendiaryTons string
	TotalTons      string
}

// Raid is the cleaned, scored representation of a single bombing mission.
type Raid struct {
	City       string `json:"city"`
	TargetName string `json:"target_name,omitempty"`
	Category   string `json:"category"`

	Day   int `json:"day,omitempty"`
	Month int `json:"month,omitempty"`
	Year  int `json:"year"`
	// YearOutOfRange marks years outside 1940-1945. Such rows are kept
	// and surfaced rather than dropped; they may be genuine early/late
	// raids or OCR misreads worth flagging.
	YearOutOfRange bool `json:"year_out_of_range,omitempty"`

	HETons         float64 `json:"he_tons"`
	IncendiaryTons float64 `json:"incendiary_tons"`
	TotalTons      float64 `json:"total_tons"`
	// IncendiaryShare is incendiary tonnage over total tonnage, in [0,1].
	// Zero-total raids have share 0.
	IncendiaryShare float64 `json:"incendiary_share"`
	// TonnageMismatch is set when HE + incendiary disagrees with the
	// recorded total beyond rounding. Tolerated, never corrected.
	TonnageMismatch bool `json:"tonnage_mismatch,omitempty"`

	Score         float64 `json:"area_bombing_score"`
	ScoreCategory string  `json:"score_category"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Expected year domain for the strategic bombing campaign.
const (
	MinYear = 1940
	MaxYear = 1945
)
