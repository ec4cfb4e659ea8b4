package model

import (
	"time"
)

// Dataset is an imported collection of extracted tables from one paper.
type Dataset struct {
	ID           int64       `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:300;not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description,omitempty"`
	SessionID    string      `gorm:"size:36;index" json:"session_id,omitempty"`
	PaperTitle   string      `gorm:"size:500" json:"paper_title,omitempty"`
	PaperAuthors string      `gorm:"type:text" json:"paper_authors,omitempty"`
	PaperDOI     string      `gorm:"size:200" json:"paper_doi,omitempty"`
	PaperYear    int         `json:"paper_year,omitempty"`
	DataTypes    StringArray `gorm:"type:text" json:"data_types,omitempty"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Files []DataFile `gorm:"foreignKey:DatasetID" json:"files,omitempty"`
}

func (Dataset) TableName() string {
	return "datasets"
}

// DataFile is one CSV file belonging to a dataset. Blob keys follow
// {datasetId}/csv/{filename}.
type DataFile struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	DatasetID   int64     `gorm:"not null;index" json:"dataset_id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	BlobKey     string    `gorm:"size:500;not null" json:"blob_key"`
	TableNumber string    `gorm:"size:20" json:"table_number,omitempty"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (DataFile) TableName() string {
	return "data_files"
}

// FairScoreBreakdown holds the FAIR-compliance scores for one dataset,
// upserted by the scoring pipeline.
type FairScoreBreakdown struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	DatasetID       int64     `gorm:"not null;uniqueIndex" json:"dataset_id"`
	Findable        float64   `json:"findable"`
	Accessible      float64   `json:"accessible"`
	Interoperable   float64   `json:"interoperable"`
	Reusable        float64   `json:"reusable"`
	Overall         float64   `json:"overall"`
	Recommendations string    `gorm:"type:text" json:"recommendations,omitempty"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FairScoreBreakdown) TableName() string {
	return "fair_score_breakdown"
}
