// Command validate runs the aggregation pipeline over a raid CSV and
// checks the structural invariants of the output: drop accounting,
// the partition property of each grouping, score range, and tonnage
// conservation. Exit code 0 means all phases passed.
//
// Usage:
//
//	go run ./cmd/validate -input processed_data/usaaf_raids_full.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/raid-data-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/observability"
	"github.com/couchcryptid/raid-data-dashboard/internal/pipeline"
)

// tonnageSlack absorbs float accumulation error when comparing group
// sums against per-raid sums.
const tonnageSlack = 1e-6

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the raw raid CSV")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input); code != 0 {
		os.Exit(code)
	}
}

func run(input string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()
	scorer := domain.NewScorer(domain.DefaultScoreWeights(), domain.DefaultTonnageCeiling, nil)

	reader := csvfile.NewReader(input, logger)
	p := pipeline.New(reader, scorer, logger, metrics)

	result, err := p.Run(context.Background())
	if err != nil && !errors.Is(err, pipeline.ErrEmptyInput) {
		fmt.Fprintf(os.Stderr, "FATAL: pipeline: %v\n", err)
		return 1
	}

	fmt.Println("=== Raid Data Integrity Validation ===")
	fmt.Println()

	phases := []*phase{
		validateDropAccounting(result),
		validatePartition(result),
		validateScoreRange(result),
		validateTonnageConservation(result),
	}

	fmt.Println()
	allPassed := true
	for _, ph := range phases {
		status := "\033[32mPASS\033[0m"
		if !ph.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(ph.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", ph.name, status)
	}

	q := result.Quality
	fmt.Println()
	fmt.Printf("Rows: %d read, %d cleaned, %d dropped (%d city, %d category, %d date)\n",
		q.RowsRead, len(result.Raids), q.Dropped(),
		q.DroppedMissingCity, q.DroppedMissingCategory, q.DroppedMissingDate)
	fmt.Printf("Defects: %d tonnage coercions, %d tonnage mismatches, %d out-of-range years\n",
		q.TonnageCoerced, q.TonnageMismatches, q.OutOfRangeYears)
	fmt.Printf("Groups: %d cities, %d categories, %d years\n",
		len(result.ByCity), len(result.ByCategory), len(result.ByYear))

	for _, ph := range phases {
		if ph.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", ph.name)
		for i, e := range ph.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateDropAccounting(result pipeline.Result) *phase {
	p := &phase{name: "Drop accounting (read = cleaned + dropped)"}
	q := result.Quality
	if q.RowsRead != len(result.Raids)+q.Dropped() {
		p.errorf("rows_read=%d but cleaned=%d + dropped=%d", q.RowsRead, len(result.Raids), q.Dropped())
	}
	return p
}

// validatePartition checks that every cleaned raid lands in exactly one
// group of each grouping: group counts sum to the cleaned row count.
func validatePartition(result pipeline.Result) *phase {
	p := &phase{name: "Partition property (city/category/year)"}

	total := func(counts []int) int {
		sum := 0
		for _, c := range counts {
			sum += c
		}
		return sum
	}

	var cityCounts, catCounts, yearCounts []int
	for _, s := range result.ByCity {
		cityCounts = append(cityCounts, s.Count)
	}
	for _, s := range result.ByCategory {
		catCounts = append(catCounts, s.Count)
	}
	for _, s := range result.ByYear {
		yearCounts = append(yearCounts, s.Count)
	}

	cleaned := len(result.Raids)
	if got := total(cityCounts); got != cleaned {
		p.errorf("city groups sum to %d, want %d", got, cleaned)
	}
	if got := total(catCounts); got != cleaned {
		p.errorf("category groups sum to %d, want %d", got, cleaned)
	}
	if got := total(yearCounts); got != cleaned {
		p.errorf("year groups sum to %d, want %d", got, cleaned)
	}
	return p
}

func validateScoreRange(result pipeline.Result) *phase {
	p := &phase{name: "Score range [0,10]"}
	for i, r := range result.Raids {
		if r.Score < domain.ScoreMin || r.Score > domain.ScoreMax {
			p.errorf("raid %d (%s %d): score %.3f out of range", i, r.City, r.Year, r.Score)
		}
	}
	return p
}

// validateTonnageConservation checks that summing group tonnage equals
// summing the cleaned table directly, for each grouping.
func validateTonnageConservation(result pipeline.Result) *phase {
	p := &phase{name: "Tonnage conservation across groupings"}

	var he, incendiary, totalTons float64
	for _, r := range result.Raids {
		he += r.HETons
		incendiary += r.IncendiaryTons
		totalTons += r.TotalTons
	}

	check := func(name string, groupHE, groupIC, groupTotal float64) {
		if math.Abs(groupHE-he) > tonnageSlack {
			p.errorf("%s: HE sum %.4f, want %.4f", name, groupHE, he)
		}
		if math.Abs(groupIC-incendiary) > tonnageSlack {
			p.errorf("%s: incendiary sum %.4f, want %.4f", name, groupIC, incendiary)
		}
		if math.Abs(groupTotal-totalTons) > tonnageSlack {
			p.errorf("%s: total sum %.4f, want %.4f", name, groupTotal, totalTons)
		}
	}

	sumString := func(m map[string]domain.Summary) (h, ic, t float64) {
		for _, s := range m {
			h += s.HETons
			ic += s.IncendiaryTons
			t += s.TotalTons
		}
		return h, ic, t
	}

	h, ic, t := sumString(result.ByCity)
	check("by city", h, ic, t)
	h, ic, t = sumString(result.ByCategory)
	check("by category", h, ic, t)

	h, ic, t = 0, 0, 0
	for _, s := range result.ByYear {
		h += s.HETons
		ic += s.IncendiaryTons
		t += s.TotalTons
	}
	check("by year", h, ic, t)

	return p
}
