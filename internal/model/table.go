package model

import (
	"time"
)

// ExtractedTable is one CSV artifact derived from one table in the source
// paper. Re-extraction overwrites the same blob path and updates the row in
// place rather than creating a new record.
type ExtractedTable struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	SessionID       string    `gorm:"size:36;not null;index:idx_session_table,unique" json:"session_id"`
	TableNumber     string    `gorm:"size:20;not null;index:idx_session_table,unique" json:"table_number"`
	Caption         string    `gorm:"type:text" json:"caption,omitempty"`
	PageNumber      int       `json:"page_number"`
	CSVPath         string    `gorm:"size:500;not null" json:"csv_path"`
	RowCount        int       `json:"row_count"`
	ColumnCount     int       `json:"column_count"`
	CompletenessPct float64   `json:"completeness_pct"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ExtractedTable) TableName() string {
	return "extracted_tables"
}
