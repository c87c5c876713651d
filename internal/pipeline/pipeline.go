package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/observability"
)

// RecordSource reads all raw raid records from the input.
type RecordSource interface {
	ReadRecords(ctx context.Context) ([]domain.RawRaidRecord, error)
}

// ErrEmptyInput signals that no rows survived cleaning. Callers must
// treat this as "no data", not as a fault: the dashboard renders empty
// tables rather than crashing.
var ErrEmptyInput = errors.New("no usable raid records in input")

// Quality tallies the row-level defects recovered during a run. All of
// them are non-fatal; the pipeline favors availability over strict
// correctness because the source data is known to carry OCR noise.
type Quality struct {
	RowsRead               int `json:"rows_read"`
	DroppedMissingCity     int `json:"dropped_missing_city"`
	DroppedMissingCategory int `json:"dropped_missing_category"`
	DroppedMissingDate     int `json:"dropped_missing_date"`
	TonnageCoerced         int `json:"tonnage_coerced"`
	TonnageMismatches      int `json:"tonnage_mismatches"`
	OutOfRangeYears        int `json:"out_of_range_years"`
}

// Dropped returns the total rows removed for missing key fields.
func (q Quality) Dropped() int {
	return q.DroppedMissingCity + q.DroppedMissingCategory + q.DroppedMissingDate
}

// Result is the complete output of one pipeline run: the cleaned
// per-raid table, the three grouped summary tables, and the quality
// report. Immutable once returned.
type Result struct {
	Raids      []domain.Raid             `json:"raids"`
	ByCity     map[string]domain.Summary `json:"by_city"`
	ByCategory map[string]domain.Summary `json:"by_category"`
	ByYear     map[int]domain.Summary    `json:"by_year"`
	Quality    Quality                   `json:"quality"`
}

// Pipeline runs the clean-score-group transform over a record source.
// Stateless across runs; each Run loads its own copy of the input.
type Pipeline struct {
	source  RecordSource
	scorer  *domain.Scorer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given source, scorer, and observability.
func New(source RecordSource, scorer *domain.Scorer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		scorer:  scorer,
		logger:  logger,
		metrics: metrics,
	}
}

// Run executes one full pipeline pass. Returns ErrEmptyInput (with a
// zero-group Result) when no rows survive cleaning.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	raw, err := p.source.ReadRecords(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read records: %w", err)
	}

	res := p.transform(raw)

	p.metrics.PipelineRuns.Inc()
	p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	p.metrics.DatasetRaids.Set(float64(len(res.Raids)))

	p.logger.Info("pipeline run complete",
		"rows_read", res.Quality.RowsRead,
		"raids", len(res.Raids),
		"dropped", res.Quality.Dropped(),
		"tonnage_coerced", res.Quality.TonnageCoerced,
		"tonnage_mismatches", res.Quality.TonnageMismatches,
		"out_of_range_years", res.Quality.OutOfRangeYears,
		"cities", len(res.ByCity),
		"categories", len(res.ByCategory),
		"years", len(res.ByYear),
		"duration", time.Since(start),
	)

	if len(res.Raids) == 0 {
		return res, ErrEmptyInput
	}
	return res, nil
}

// transform cleans and scores every row, then groups the survivors.
// Row order in Result.Raids follows input order, so reruns over the same
// input produce identical output.
func (p *Pipeline) transform(raw []domain.RawRaidRecord) Result {
	quality := Quality{RowsRead: len(raw)}
	p.metrics.RowsRead.Add(float64(len(raw)))

	raids := make([]domain.Raid, 0, len(raw))
	for i, rec := range raw {
		raid, coerced, err := domain.CleanRaid(rec)
		if err != nil {
			p.countDrop(&quality, err, i)
			continue
		}

		if coerced > 0 {
			quality.TonnageCoerced += coerced
			p.metrics.TonnageCoerced.Add(float64(coerced))
		}
		if raid.TonnageMismatch {
			quality.TonnageMismatches++
			p.metrics.TonnageMismatches.Inc()
		}
		if raid.YearOutOfRange {
			quality.OutOfRangeYears++
			p.metrics.OutOfRangeYears.Inc()
			p.logger.Debug("year outside expected domain", "row", i, "year", raid.Year, "city", raid.City)
		}

		raids = append(raids, p.scorer.ScoreRaid(raid))
	}

	return Result{
		Raids:      raids,
		ByCity:     groupBy(raids, func(r domain.Raid) string { return r.City }),
		ByCategory: groupBy(raids, func(r domain.Raid) string { return r.Category }),
		ByYear:     groupBy(raids, func(r domain.Raid) int { return r.Year }),
		Quality:    quality,
	}
}

// countDrop records a missing-field rejection in the quality report and
// metrics. Unknown errors cannot occur today but are counted as date
// drops rather than lost.
func (p *Pipeline) countDrop(q *Quality, err error, row int) {
	var missing *domain.MissingFieldError
	field := "date"
	if errors.As(err, &missing) {
		field = missing.Field
	}

	switch field {
	case "city":
		q.DroppedMissingCity++
	case "category":
		q.DroppedMissingCategory++
	default:
		q.DroppedMissingDate++
	}
	p.metrics.RowsDropped.WithLabelValues(field).Inc()
	p.logger.Debug("dropped row", "row", row, "reason", err)
}

// groupBy partitions raids by key and summarizes each partition. Every
// raid lands in exactly one group per grouping.
func groupBy[K comparable](raids []domain.Raid, key func(domain.Raid) K) map[K]domain.Summary {
	buckets := make(map[K][]domain.Raid)
	for _, r := range raids {
		k := key(r)
		buckets[k] = append(buckets[k], r)
	}

	out := make(map[K]domain.Summary, len(buckets))
	for k, group := range buckets {
		out[k] = domain.Summarize(group)
	}
	return out
}
