// Package http serves the dashboard API: filter re-slices of the
// cleaned raid table, the grouped summary tables, score distributions,
// file exports, and the pre-rendered chart images.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/raid-data-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/raid-data-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/raid-data-dashboard/internal/dataset"
	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/observability"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Server exposes the dashboard API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	snapshot   *dataset.Snapshot
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server. chartsDir may be empty
// when no pre-rendered charts are deployed; the /charts routes then
// return 404.
func NewServer(addr string, snap *dataset.Snapshot, chartsDir string, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		snapshot: snap,
		metrics:  metrics,
		logger:   logger,
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", s.handleFilters)
		r.Get("/raids", s.handleRaids)
		r.Get("/quality", s.handleQuality)
		r.Get("/summary/cities", s.handleSummaryCities)
		r.Get("/summary/categories", s.handleSummaryCategories)
		r.Get("/summary/years", s.handleSummaryYears)
		r.Get("/summary/distribution", s.handleDistribution)
		r.Get("/export/raids.csv", s.handleExportCSV)
		r.Get("/export/summaries.xlsx", s.handleExportXLSX)
	})

	if chartsDir != "" {
		fs := http.StripPrefix("/charts/", http.FileServer(http.Dir(chartsDir)))
		r.Get("/charts/*", fs.ServeHTTP)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReady reports ready once a snapshot is loaded. An empty dataset
// is still ready: the dashboard renders "no data" instead of failing.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.snapshot == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "dataset not loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, filtersResponse{
		Options: s.snapshot.Options(),
		NoData:  s.snapshot.Empty(),
	})
}

func (s *Server) handleQuality(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, qualityResponse{
		Quality: s.snapshot.Quality(),
		NoData:  s.snapshot.Empty(),
	})
}

func (s *Server) handleRaids(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	offset, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.snapshot.Slice(filter)

	page := view.Raids
	if offset >= len(page) {
		page = []domain.Raid{}
	} else {
		page = page[offset:]
	}
	if len(page) > limit {
		page = page[:limit]
	}

	writeJSON(w, http.StatusOK, raidsResponse{
		Raids:   page,
		Summary: view.Summary,
		Total:   len(view.Raids),
		Offset:  offset,
		Limit:   limit,
		NoData:  s.snapshot.Empty(),
	})
}

func (s *Server) handleSummaryCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, summaryResponse{
		Groups: s.snapshot.ByCity(),
		NoData: s.snapshot.Empty(),
	})
}

func (s *Server) handleSummaryCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, summaryResponse{
		Groups: s.snapshot.ByCategory(),
		NoData: s.snapshot.Empty(),
	})
}

func (s *Server) handleSummaryYears(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, yearSummaryResponse{
		Groups: s.snapshot.ByYear(),
		NoData: s.snapshot.Empty(),
	})
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.snapshot.Slice(filter)
	writeJSON(w, http.StatusOK, distributionResponse{
		Bins:   s.snapshot.Distribution(filter),
		Total:  len(view.Raids),
		NoData: s.snapshot.Empty(),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.snapshot.Slice(filter)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="raids.csv"`)
	if err := csvfile.WriteRaids(w, view.Raids); err != nil {
		s.logger.Error("csv export failed", "error", err)
		return
	}
	s.metrics.Exports.WithLabelValues("csv").Inc()
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="raid_summaries.xlsx"`)
	if err := xlsx.WriteWorkbook(w, s.snapshot); err != nil {
		s.logger.Error("xlsx export failed", "error", err)
		return
	}
	s.metrics.Exports.WithLabelValues("xlsx").Inc()
}

func parseFilter(r *http.Request) (dataset.Filter, error) {
	q := r.URL.Query()
	f := dataset.Filter{
		City:     q.Get("city"),
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}

	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return dataset.Filter{}, errInvalidParam("year", y)
		}
		f.Year = year
	}

	return f, nil
}

func parsePagination(r *http.Request) (offset, limit int, err error) {
	q := r.URL.Query()
	limit = defaultPageSize

	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errInvalidParam("offset", v)
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return 0, 0, errInvalidParam("limit", v)
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return offset, limit, nil
}

type paramError struct {
	name, value string
}

func errInvalidParam(name, value string) error {
	return &paramError{name: name, value: value}
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " parameter: " + e.value
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
