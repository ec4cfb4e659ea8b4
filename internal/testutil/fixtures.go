package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
)

// TestSession creates an extraction session in state uploaded.
func TestSession(t *testing.T, db *gorm.DB, opts ...func(*model.ExtractionSession)) *model.ExtractionSession {
	t.Helper()

	session := &model.ExtractionSession{
		SessionID:   uuid.NewString(),
		PDFPath:     "/tmp/uploads/test/paper.pdf",
		PDFFilename: "paper.pdf",
		State:       model.StateUploaded,
	}

	for _, opt := range opts {
		opt(session)
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return session
}

// WithState sets the initial session state.
func WithState(state string) func(*model.ExtractionSession) {
	return func(s *model.ExtractionSession) {
		s.State = state
	}
}

// WithPaper sets the paper metadata fields.
func WithPaper(title string, year, tableCount int) func(*model.ExtractionSession) {
	return func(s *model.ExtractionSession) {
		s.PaperTitle = title
		s.PaperYear = year
		s.TablesFound = tableCount
	}
}

// WithCreatedAt backdates the session, for retention tests.
func WithCreatedAt(at time.Time) func(*model.ExtractionSession) {
	return func(s *model.ExtractionSession) {
		s.CreatedAt = at
	}
}

// TestExtractedTable creates an extracted table row for a session.
func TestExtractedTable(t *testing.T, db *gorm.DB, sessionID, tableNumber string, opts ...func(*model.ExtractedTable)) *model.ExtractedTable {
	t.Helper()

	table := &model.ExtractedTable{
		SessionID:       sessionID,
		TableNumber:     tableNumber,
		Caption:         "Test table",
		PageNumber:      1,
		CSVPath:         fmt.Sprintf("%s/tables/table-%s.csv", sessionID, tableNumber),
		RowCount:        3,
		ColumnCount:     5,
		CompletenessPct: 1.0,
	}

	for _, opt := range opts {
		opt(table)
	}

	if err := db.Create(table).Error; err != nil {
		t.Fatalf("Failed to create test extracted table: %v", err)
	}

	return table
}

// TestDataset creates a dataset, optionally with files via WithFile.
func TestDataset(t *testing.T, db *gorm.DB, opts ...func(*model.Dataset)) *model.Dataset {
	t.Helper()

	dataset := &model.Dataset{
		Name:       fmt.Sprintf("Dataset %d", time.Now().UnixNano()%100000),
		PaperTitle: "Thermochronology of the test range",
		PaperYear:  2020,
		DataTypes:  model.StringArray{"fission_track"},
	}

	for _, opt := range opts {
		opt(dataset)
	}

	if err := db.Create(dataset).Error; err != nil {
		t.Fatalf("Failed to create test dataset: %v", err)
	}

	return dataset
}

// WithDataTypes sets the dataset's data types.
func WithDataTypes(types ...string) func(*model.Dataset) {
	return func(d *model.Dataset) {
		d.DataTypes = model.StringArray(types)
	}
}

// TestDataFile attaches a CSV file record to a dataset.
func TestDataFile(t *testing.T, db *gorm.DB, datasetID int64, filename string) *model.DataFile {
	t.Helper()

	file := &model.DataFile{
		DatasetID:   datasetID,
		Filename:    filename,
		BlobKey:     fmt.Sprintf("%d/csv/%s", datasetID, filename),
		RowCount:    3,
		ColumnCount: 5,
	}

	if err := db.Create(file).Error; err != nil {
		t.Fatalf("Failed to create test data file: %v", err)
	}

	return file
}

// TestTestConfig creates one QC config row with its reference rows.
func TestTestConfig(t *testing.T, db *gorm.DB, opts ...func(*model.TestConfig)) *model.TestConfig {
	t.Helper()

	manufacturer := &model.Manufacturer{Name: fmt.Sprintf("Maker %d", time.Now().UnixNano()%100000)}
	if err := db.Create(manufacturer).Error; err != nil {
		t.Fatalf("Failed to create test manufacturer: %v", err)
	}
	marker := &model.Marker{Name: "HBsAg"}
	if err := db.Create(marker).Error; err != nil {
		t.Fatalf("Failed to create test marker: %v", err)
	}
	assay := &model.Assay{Name: "Test Assay", ManufacturerID: manufacturer.ID, MarkerID: marker.ID}
	if err := db.Create(assay).Error; err != nil {
		t.Fatalf("Failed to create test assay: %v", err)
	}

	cfg := &model.TestConfig{
		ManufacturerID:   manufacturer.ID,
		MarkerID:         marker.ID,
		AssayID:          assay.ID,
		ManufacturerName: manufacturer.Name,
		MarkerName:       marker.Name,
		AssayName:        assay.Name,
		MeanValue:        1.2,
		SDValue:          0.1,
		CVPct:            8.3,
		NumResults:       40,
		QualityRating:    "good",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	return cfg
}

// WithCV sets the CV percentage.
func WithCV(cv float64) func(*model.TestConfig) {
	return func(c *model.TestConfig) {
		c.CVPct = cv
	}
}

// WithRating sets the quality rating.
func WithRating(rating string) func(*model.TestConfig) {
	return func(c *model.TestConfig) {
		c.QualityRating = rating
	}
}

// WithNames overrides the denormalized name columns.
func WithNames(manufacturer, marker, assay string) func(*model.TestConfig) {
	return func(c *model.TestConfig) {
		c.ManufacturerName = manufacturer
		c.MarkerName = marker
		c.AssayName = assay
	}
}

// TestSample creates one thermochronology sample row.
func TestSample(t *testing.T, db *gorm.DB, opts ...func(*model.Sample)) *model.Sample {
	t.Helper()

	sample := &model.Sample{
		SampleName:  fmt.Sprintf("S-%d", time.Now().UnixNano()%100000),
		Latitude:    -33.87,
		Longitude:   151.21,
		ElevationM:  420,
		MineralType: "apatite",
		Method:      "FT",
		AgeMa:       12.5,
		AgeErrorMa:  1.1,
	}

	for _, opt := range opts {
		opt(sample)
	}

	if err := db.Create(sample).Error; err != nil {
		t.Fatalf("Failed to create test sample: %v", err)
	}

	return sample
}
