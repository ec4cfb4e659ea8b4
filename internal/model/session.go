package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Session states. Transitions are monotonic except that extracted can
// re-enter extracting for the next table of the same paper.
const (
	StateUploaded   = "uploaded"
	StateAnalyzing  = "analyzing"
	StateAnalyzed   = "analyzed"
	StateExtracting = "extracting"
	StateExtracted  = "extracted"
	StateFailed     = "failed"
)

// Pipeline stages recorded on failure.
const (
	StageAnalyze = "analyze"
	StageExtract = "extract"
)

// StringArray stores a JSON array in a text column.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// ExtractionSession is one in-flight paper-to-data conversion. The database
// row is the sole source of truth; there is no in-memory session cache.
type ExtractionSession struct {
	SessionID          string      `gorm:"primaryKey;size:36" json:"session_id"`
	PDFPath            string      `gorm:"size:500;not null" json:"pdf_path"`
	PDFFilename        string      `gorm:"size:255;not null" json:"pdf_filename"`
	State              string      `gorm:"size:20;default:uploaded;index" json:"state"`
	PaperTitle         string      `gorm:"size:500" json:"paper_title,omitempty"`
	PaperAuthors       string      `gorm:"type:text" json:"paper_authors,omitempty"`
	PaperDOI           string      `gorm:"size:200" json:"paper_doi,omitempty"`
	PaperYear          int         `json:"paper_year,omitempty"`
	TablesFound        int         `json:"tables_found"`
	DataTypesAvailable StringArray `gorm:"type:text" json:"data_types_available,omitempty"`
	FailureReason      string      `gorm:"type:text" json:"failure_reason,omitempty"`
	FailedStage        string      `gorm:"size:20" json:"failed_stage,omitempty"`
	CreatedAt          time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func (ExtractionSession) TableName() string {
	return "extraction_sessions"
}

// Terminal reports whether no further pipeline step will run for the session.
// extracted is terminal-ish only: it re-enters extracting for the next table.
func (s *ExtractionSession) Terminal() bool {
	return s.State == StateFailed
}
