package dto

// FairScore is the fixed-shape score object returned by the FAIR route and
// decoded from the scoring LLM call.
type FairScore struct {
	Findable        float64  `json:"findable"`
	Accessible      float64  `json:"accessible"`
	Interoperable   float64  `json:"interoperable"`
	Reusable        float64  `json:"reusable"`
	Overall         float64  `json:"overall"`
	Recommendations []string `json:"recommendations"`
}

// FairAnalyzeResponse is returned by POST /api/datasets/:id/fair/analyze.
type FairAnalyzeResponse struct {
	DatasetID  int64     `json:"dataset_id"`
	Score      FairScore `json:"score"`
	ExportPath string    `json:"export_path,omitempty"`
}

// DatasetFileItem is one downloadable file on a dataset detail view.
type DatasetFileItem struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	TableNumber string `json:"table_number,omitempty"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	SizeBytes   int64  `json:"size_bytes"`
	DownloadURL string `json:"download_url"`
}

// DatasetListItem is one dataset card on the browse surface.
type DatasetListItem struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	PaperTitle string   `json:"paper_title,omitempty"`
	PaperDOI   string   `json:"paper_doi,omitempty"`
	PaperYear  int      `json:"paper_year,omitempty"`
	DataTypes  []string `json:"data_types,omitempty"`
	FileCount  int      `json:"file_count"`
	FairScore  *float64 `json:"fair_score,omitempty"`
}
