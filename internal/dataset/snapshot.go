// Package dataset holds the read-only serving view over one pipeline
// run. A Snapshot is an immutable value: filter actions re-slice the
// already-computed tables in memory, there is no writer after
// construction and therefore no locking discipline beyond the slice
// cache's own mutex.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/observability"
	"github.com/couchcryptid/raid-data-dashboard/internal/pipeline"
)

// Snapshot wraps a pipeline Result for the dashboard API.
type Snapshot struct {
	result  pipeline.Result
	metrics *observability.Metrics
	cache   *lruCache
}

// New builds a Snapshot over a pipeline result. cacheSize bounds the
// filter-slice cache; metrics may be nil.
func New(result pipeline.Result, cacheSize int, metrics *observability.Metrics) *Snapshot {
	return &Snapshot{
		result:  result,
		metrics: metrics,
		cache:   newLRUCache(cacheSize),
	}
}

// Empty reports whether the snapshot holds no cleaned raids.
func (s *Snapshot) Empty() bool { return len(s.result.Raids) == 0 }

// Raids returns the full cleaned per-raid table. Callers must not mutate it.
func (s *Snapshot) Raids() []domain.Raid { return s.result.Raids }

// Quality returns the run's data-quality report.
func (s *Snapshot) Quality() pipeline.Quality { return s.result.Quality }

// ByCity returns the city summary table.
func (s *Snapshot) ByCity() map[string]domain.Summary { return s.result.ByCity }

// ByCategory returns the target-category summary table.
func (s *Snapshot) ByCategory() map[string]domain.Summary { return s.result.ByCategory }

// ByYear returns the year summary table.
func (s *Snapshot) ByYear() map[int]domain.Summary { return s.result.ByYear }

// Filter selects a subset of the cleaned table. Zero-valued fields match
// everything; City and Category are matched against the normalized
// (upper-cased) keys, Query is a case-insensitive substring match on the
// target name.
type Filter struct {
	City     string
	Category string
	Year     int
	Query    string
}

// Normalize upper-cases the key fields so user input matches the cleaned
// table regardless of case.
func (f Filter) Normalize() Filter {
	f.City = strings.ToUpper(strings.TrimSpace(f.City))
	f.Category = strings.ToUpper(strings.TrimSpace(f.Category))
	f.Query = strings.TrimSpace(f.Query)
	return f
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.City == "" && f.Category == "" && f.Year == 0 && f.Query == ""
}

func (f Filter) key() string {
	return fmt.Sprintf("%s|%s|%d|%s", f.City, f.Category, f.Year, strings.ToUpper(f.Query))
}

func (f Filter) matches(r domain.Raid) bool {
	if f.City != "" && r.City != f.City {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToUpper(r.TargetName), strings.ToUpper(f.Query)) {
		return false
	}
	return true
}

// View is a filtered slice of the cleaned table with its own summary.
type View struct {
	Raids   []domain.Raid
	Summary domain.Summary
}

// Slice returns the raids matching the filter plus their recomputed
// summary. Results are cached per canonical filter key since dashboard
// users click through the same handful of filters repeatedly.
func (s *Snapshot) Slice(f Filter) View {
	f = f.Normalize()
	key := f.key()

	if v, ok := s.cache.get(key); ok {
		s.cacheCount("hit")
		return v
	}
	s.cacheCount("miss")

	var matched []domain.Raid
	if f.IsZero() {
		matched = s.result.Raids
	} else {
		for _, r := range s.result.Raids {
			if f.matches(r) {
				matched = append(matched, r)
			}
		}
	}
	if matched == nil {
		// JSON consumers always see an array, never null.
		matched = []domain.Raid{}
	}

	v := View{Raids: matched, Summary: domain.Summarize(matched)}
	s.cache.put(key, v)
	return v
}

// Options lists the distinct filter values present in the dataset.
type Options struct {
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
	Years      []int    `json:"years"`
}

// Options returns the sorted distinct cities, categories, and years.
func (s *Snapshot) Options() Options {
	opts := Options{
		Cities:     sortedKeys(s.result.ByCity),
		Categories: sortedKeys(s.result.ByCategory),
	}
	for y := range s.result.ByYear {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	return opts
}

func sortedKeys(m map[string]domain.Summary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Snapshot) cacheCount(result string) {
	if s.metrics != nil {
		s.metrics.FilterCache.WithLabelValues(result).Inc()
	}
}
