package dto

// ConfigsQuery holds the parsed query parameters of GET /api/configs.
// Multi-select id filters arrive comma-separated and are split by the
// handler before reaching the service.
type ConfigsQuery struct {
	ManufacturerIDs []int64
	MarkerIDs       []int64
	AssayIDs        []int64
	QualityRating   string
	CVBucket        string // lt5, 5to10, 10to15, gt15
	Search          string
	SortBy          string
	SortOrder       string // asc, desc
	Limit           int
	Offset          int
}

// ConfigsFilters echoes the filters that were applied.
type ConfigsFilters struct {
	ManufacturerIDs []int64 `json:"manufacturer_ids,omitempty"`
	MarkerIDs       []int64 `json:"marker_ids,omitempty"`
	AssayIDs        []int64 `json:"assay_ids,omitempty"`
	QualityRating   string  `json:"quality_rating,omitempty"`
	CVBucket        string  `json:"cv_bucket,omitempty"`
	Search          string  `json:"search,omitempty"`
}

// ConfigsResponse is the fixed response shape of GET /api/configs.
type ConfigsResponse struct {
	Data       interface{}    `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	Filters    ConfigsFilters `json:"filters"`
}
