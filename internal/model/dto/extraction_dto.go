package dto

// TableInfo describes one table the analysis step found in the paper.
// It is echoed back by the client as the extract request body.
type TableInfo struct {
	TableNumber      string `json:"table_number" binding:"required"`
	Caption          string `json:"caption"`
	PageNumber       int    `json:"page_number"`
	EstimatedRows    int    `json:"estimated_rows"`
	EstimatedColumns int    `json:"estimated_columns"`
	DataType         string `json:"data_type,omitempty"`
}

// FigureInfo describes one figure detected during analysis.
type FigureInfo struct {
	FigureNumber string `json:"figure_number"`
	Caption      string `json:"caption"`
	PageNumber   int    `json:"page_number"`
}

// PaperMetadata is the bibliographic metadata the analysis call returns.
type PaperMetadata struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	DOI     string   `json:"doi"`
	Year    int      `json:"year"`
}

// PaperAnalysis is the decoded JSON payload of the analysis LLM call.
type PaperAnalysis struct {
	PaperMetadata PaperMetadata `json:"paper_metadata"`
	Tables        []TableInfo   `json:"tables"`
	Figures       []FigureInfo  `json:"figures"`
	DataTypes     []string      `json:"data_types"`
}

// UploadResponse is returned after a successful PDF upload.
type UploadResponse struct {
	SessionID   string `json:"session_id"`
	PDFFilename string `json:"pdf_filename"`
	State       string `json:"state"`
}

// AnalyzeResponse is returned by the analyze route.
type AnalyzeResponse struct {
	SessionID     string        `json:"session_id"`
	State         string        `json:"state"`
	PaperMetadata PaperMetadata `json:"paper_metadata"`
	TablesFound   int           `json:"tables_found"`
	Tables        []TableInfo   `json:"tables"`
	Figures       []FigureInfo  `json:"figures"`
	DataTypes     []string      `json:"data_types"`
}

// ExtractRequest is the extract route body.
type ExtractRequest struct {
	Table TableInfo `json:"table" binding:"required"`
}

// TableStats summarizes the produced CSV.
type TableStats struct {
	TotalRows       int     `json:"total_rows"`
	TotalColumns    int     `json:"total_columns"`
	CompletenessPct float64 `json:"completeness_pct"`
}

// ExtractResponse is returned by the extract route.
type ExtractResponse struct {
	SessionID     string     `json:"session_id"`
	State         string     `json:"state"`
	TableNumber   string     `json:"table_number"`
	CSVPath       string     `json:"csv_path"`
	Stats         TableStats `json:"stats"`
	TotalAttempts int        `json:"total_attempts"`
}

// ImportRequest finalizes a session into a dataset.
type ImportRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ImportResponse is returned by the import route.
type ImportResponse struct {
	DatasetID int64 `json:"dataset_id"`
	FileCount int   `json:"file_count"`
}
