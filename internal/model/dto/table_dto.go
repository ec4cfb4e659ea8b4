package dto

// BrowseQuery holds the parsed query parameters of GET /api/tables/:name.
type BrowseQuery struct {
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// BrowseResponse is the generic table browse payload. Rows carry explicit
// column order so clients render columns deterministically.
type BrowseResponse struct {
	Table      string                   `json:"table"`
	Columns    []string                 `json:"columns"`
	Data       []map[string]interface{} `json:"data"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalPages int                      `json:"totalPages"`
}
