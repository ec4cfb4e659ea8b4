package model

import (
	"time"
)

// Sample is a thermochronology sample record (fission-track or (U-Th)/He),
// displayed as-is on the browse surface.
type Sample struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	DatasetID   int64     `gorm:"index" json:"dataset_id,omitempty"`
	SampleName  string    `gorm:"size:100;not null" json:"sample_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ElevationM  float64   `json:"elevation_m"`
	Lithology   string    `gorm:"size:200" json:"lithology,omitempty"`
	MineralType string    `gorm:"size:50" json:"mineral_type,omitempty"` // apatite, zircon
	Method      string    `gorm:"size:50;index" json:"method,omitempty"` // FT, (U-Th)/He
	AgeMa       float64   `json:"age_ma"`
	AgeErrorMa  float64   `json:"age_error_ma"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Sample) TableName() string {
	return "samples"
}
