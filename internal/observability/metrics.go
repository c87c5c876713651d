package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// aggregation pipeline and the dashboard API.
type Metrics struct {
	RowsRead          prometheus.Counter
	RowsDropped       *prometheus.CounterVec // label: field={city,category,date}
	TonnageCoerced    prometheus.Counter
	TonnageMismatches prometheus.Counter
	OutOfRangeYears   prometheus.Counter

	PipelineRuns     prometheus.Counter
	PipelineDuration prometheus.Histogram
	DatasetRaids     prometheus.Gauge

	// Dashboard serving metrics.
	FilterCache *prometheus.CounterVec // label: result={hit,miss}
	Exports     *prometheus.CounterVec // label: format={csv,xlsx}
}

// NewMetrics creates and registers all metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "rows_read_total",
			Help:      "Total raw rows read from the input CSV.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped for a missing mandatory key field.",
		}, []string{"field"}),
		TonnageCoerced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "tonnage_coerced_total",
			Help:      "Tonnage fields coerced to zero (unparseable or negative).",
		}),
		TonnageMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "tonnage_mismatches_total",
			Help:      "Rows where HE + incendiary disagrees with total tonnage.",
		}),
		OutOfRangeYears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "out_of_range_years_total",
			Help:      "Rows with a year outside 1940-1945, kept and flagged.",
		}),
		PipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "pipeline_runs_total",
			Help:      "Completed aggregation pipeline runs.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "raid_dashboard",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a complete clean-score-group run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetRaids: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "raid_dashboard",
			Name:      "dataset_raids",
			Help:      "Cleaned raids in the currently served dataset.",
		}),
		FilterCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "filter_cache_total",
			Help:      "Filter-slice cache lookups by result.",
		}, []string{"result"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raid_dashboard",
			Name:      "exports_total",
			Help:      "Download exports served, by format.",
		}, []string{"format"}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.TonnageCoerced,
		m.TonnageMismatches,
		m.OutOfRangeYears,
		m.PipelineRuns,
		m.PipelineDuration,
		m.DatasetRaids,
		m.FilterCache,
		m.Exports,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "rows_read_total"}),
		RowsDropped:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "rows_dropped_total"}, []string{"field"}),
		TonnageCoerced:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "tonnage_coerced_total"}),
		TonnageMismatches: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "tonnage_mismatches_total"}),
		OutOfRangeYears:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "out_of_range_years_total"}),
		PipelineRuns:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "pipeline_runs_total"}),
		PipelineDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "raid_dashboard", Name: "pipeline_duration_seconds"}),
		DatasetRaids:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "raid_dashboard", Name: "dataset_raids"}),
		FilterCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "filter_cache_total"}, []string{"result"}),
		Exports:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "raid_dashboard", Name: "exports_total"}, []string{"format"}),
	}
}
