package model

import (
	"time"
)

// Manufacturer of a diagnostic assay platform.
type Manufacturer struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}

// Marker is the analyte an assay detects (e.g. HBsAg, anti-HCV).
type Marker struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	DiseaseArea string `gorm:"size:100" json:"disease_area,omitempty"`
}

func (Marker) TableName() string {
	return "markers"
}

// Assay is one diagnostic test product.
type Assay struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:200;not null" json:"name"`
	ManufacturerID int64  `gorm:"index" json:"manufacturer_id"`
	MarkerID       int64  `gorm:"index" json:"marker_id"`
	Platform       string `gorm:"size:100" json:"platform,omitempty"`
}

func (Assay) TableName() string {
	return "assays"
}

// TestConfig is one quality-control performance record for an assay
// configuration: a denormalized row fetched and displayed as-is.
type TestConfig struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	ManufacturerID   int64     `gorm:"index" json:"manufacturer_id"`
	MarkerID         int64     `gorm:"index" json:"marker_id"`
	AssayID          int64     `gorm:"index" json:"assay_id"`
	ManufacturerName string    `gorm:"size:200" json:"manufacturer_name"`
	MarkerName       string    `gorm:"size:100" json:"marker_name"`
	AssayName        string    `gorm:"size:200" json:"assay_name"`
	QCLevel          string    `gorm:"size:50" json:"qc_level,omitempty"`
	MeanValue        float64   `json:"mean_value"`
	SDValue          float64   `json:"sd_value"`
	CVPct            float64   `gorm:"index" json:"cv_pct"`
	NumResults       int       `json:"num_results"`
	QualityRating    string    `gorm:"size:20;index" json:"quality_rating,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Manufacturer *Manufacturer `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Marker       *Marker       `gorm:"foreignKey:MarkerID" json:"marker,omitempty"`
	Assay        *Assay        `gorm:"foreignKey:AssayID" json:"assay,omitempty"`
}

func (TestConfig) TableName() string {
	return "test_configs"
}
