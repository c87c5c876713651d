// Package domain models digitized USSBS bombing-raid records.
//
// # Data Source
//
// Raid records come from the United States Strategic Bombing Survey
// (USSBS) attack-by-attack readouts held at the National Archives,
// digitized via OCR. The input CSV is the pre-processed per-raid table;
// each row is one recorded mission against a European target. The OCR
// origin means the data carries transcription noise: this package
// tolerates and counts defects rather than rejecting rows, because a
// dropped row loses a real historical raid while a coerced field only
// loses one measurement.
//
// # Column Conventions
//
// Year encoding (varies across readout batches):
//
//	"1944" — full year
//	"44"   — two-digit year, resolved as 1900+44
//	"4"    — offset from 1940, resolved as 1940+4
//
// The expected domain is 1940-1945. Years outside it are kept and
// flagged (YearOutOfRange) instead of clamped or dropped; an out-of-range
// year usually means an OCR misread worth surfacing, occasionally a
// genuine very early raid.
//
// Tonnage columns:
//
//	HE tons, incendiary tons, and total tons, recorded to one decimal
//	place. Total should equal HE + incendiary; mismatches beyond 0.1
//	tons set TonnageMismatch and are counted, never corrected.
//	Unparseable or negative tonnage coerces to zero.
//
// # Area Bombing Score
//
// Each raid gets a score in [0,10]: 0 is clearly precision bombing, 10
// clearly area bombing. The score blends three 0-10 components:
//
//	target:     10 if the USSBS category designates a city-area attack
//	incendiary: incendiary share of total tonnage, scaled
//	tonnage:    total tons against a 500-ton ceiling, scaled
//
// Weights are configurable (default 0.5/0.3/0.2); the incendiary weight
// must be positive so more incendiary share always means a higher score.
// Presentation bins: Very Precise [0,2), Precise [2,4), Mixed [4,6),
// Area [6,8), Heavy Area [8,10].
package domain
