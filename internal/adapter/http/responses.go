package http

import (
	"github.com/couchcryptid/raid-data-dashboard/internal/dataset"
	"github.com/couchcryptid/raid-data-dashboard/internal/domain"
	"github.com/couchcryptid/raid-data-dashboard/internal/pipeline"
)

// Every response carries no_data so the dashboard can render the empty
// state instead of treating an empty table as an error.

type filtersResponse struct {
	Options dataset.Options `json:"options"`
	NoData  bool            `json:"no_data"`
}

type qualityResponse struct {
	Quality pipeline.Quality `json:"quality"`
	NoData  bool             `json:"no_data"`
}

type raidsResponse struct {
	Raids   []domain.Raid  `json:"raids"`
	Summary domain.Summary `json:"summary"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
	NoData  bool           `json:"no_data"`
}

type summaryResponse struct {
	Groups map[string]domain.Summary `json:"groups"`
	NoData bool                      `json:"no_data"`
}

type yearSummaryResponse struct {
	Groups map[int]domain.Summary `json:"groups"`
	NoData bool                   `json:"no_data"`
}

type distributionResponse struct {
	Bins   []dataset.Bin `json:"bins"`
	Total  int           `json:"total"`
	NoData bool          `json:"no_data"`
}
