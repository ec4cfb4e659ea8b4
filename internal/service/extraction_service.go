package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/extraction"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pdf"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

// extractableStates are the session states the extract operation accepts.
// extracted re-enters extracting when the paper has more tables.
var extractableStates = []string{model.StateAnalyzed, model.StateExtracting, model.StateExtracted}

// ExtractionService orchestrates the paper-to-data pipeline: PDF text
// extraction, LLM analysis, per-table extraction under the retry controller,
// and the final import into a dataset. One pipeline run lives entirely
// within one request; tables are processed one at a time.
type ExtractionService struct {
	sessions *repository.SessionRepository
	tables   *repository.ExtractedTableRepository
	datasets *repository.DatasetRepository
	store    storage.Store
	llm      *llm.Client
	cfg      *config.Config
}

func NewExtractionService(
	sessions *repository.SessionRepository,
	tables *repository.ExtractedTableRepository,
	datasets *repository.DatasetRepository,
	store storage.Store,
	llmClient *llm.Client,
	cfg *config.Config,
) *ExtractionService {
	return &ExtractionService{
		sessions: sessions,
		tables:   tables,
		datasets: datasets,
		store:    store,
		llm:      llmClient,
		cfg:      cfg,
	}
}

// Upload stores the PDF under the session's temp directory and creates the
// session in state uploaded.
func (s *ExtractionService) Upload(filename string, data []byte) (*dto.UploadResponse, error) {
	sessionID := uuid.NewString()

	dir := filepath.Join(s.cfg.Upload.TempDir, sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	pdfPath := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(pdfPath, data, 0644); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to save pdf: %w", err)
	}

	session := &model.ExtractionSession{
		SessionID:   sessionID,
		PDFPath:     pdfPath,
		PDFFilename: filepath.Base(filename),
		State:       model.StateUploaded,
	}
	if err := s.sessions.Create(session); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	log.Printf("Session %s: uploaded %s (%d bytes)", sessionID, session.PDFFilename, len(data))

	return &dto.UploadResponse{
		SessionID:   sessionID,
		PDFFilename: session.PDFFilename,
		State:       session.State,
	}, nil
}

// GetSession returns the session row for status polling.
func (s *ExtractionService) GetSession(sessionID string) (*model.ExtractionSession, []*model.ExtractedTable, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	tables, err := s.tables.ListBySession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, tables, nil
}

// Analyze runs the analysis half of the pipeline: extract the PDF text,
// ask the model for the paper's metadata and table inventory, and record it
// on the session. Requires state uploaded. Any failure is fatal for the
// session (stage analyze); the analysis path is never retried.
func (s *ExtractionService) Analyze(ctx context.Context, sessionID string) (*dto.AnalyzeResponse, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := s.transition(sessionID, []string{model.StateUploaded}, model.StateAnalyzing); err != nil {
		return nil, err
	}

	log.Printf("Session %s: extracting pdf text", sessionID)
	text, pageCount, err := pdf.ExtractTextFile(session.PDFPath)
	if err != nil {
		return nil, s.failSession(sessionID, model.StageAnalyze, fmt.Errorf("pdf extraction failed: %w", err))
	}
	log.Printf("Session %s: %d pages of text extracted", sessionID, pageCount)

	var analysis dto.PaperAnalysis
	err = s.llm.CompleteJSON(ctx,
		extraction.AnalysisSystemPrompt,
		extraction.BuildAnalysisPrompt(text),
		llm.Options{MaxTokens: s.cfg.LLM.MaxTokens, Temperature: s.cfg.LLM.Temperature},
		&analysis,
	)
	if err != nil {
		return nil, s.failSession(sessionID, model.StageAnalyze, fmt.Errorf("paper analysis failed: %w", err))
	}

	dataTypes := analysis.DataTypes
	if len(dataTypes) == 0 {
		dataTypes = dataTypesFromTables(analysis.Tables)
	}

	authors := strings.Join(analysis.PaperMetadata.Authors, "; ")
	err = s.sessions.UpdatePaperMetadata(sessionID,
		analysis.PaperMetadata.Title, authors, analysis.PaperMetadata.DOI,
		analysis.PaperMetadata.Year, len(analysis.Tables), dataTypes)
	if err != nil {
		return nil, s.failSession(sessionID, model.StageAnalyze, fmt.Errorf("failed to record analysis: %w", err))
	}

	if err := s.transition(sessionID, []string{model.StateAnalyzing}, model.StateAnalyzed); err != nil {
		return nil, err
	}

	log.Printf("Session %s: analysis found %d tables, %d figures",
		sessionID, len(analysis.Tables), len(analysis.Figures))

	return &dto.AnalyzeResponse{
		SessionID:     sessionID,
		State:         model.StateAnalyzed,
		PaperMetadata: analysis.PaperMetadata,
		TablesFound:   len(analysis.Tables),
		Tables:        analysis.Tables,
		Figures:       analysis.Figures,
		DataTypes:     dataTypes,
	}, nil
}

// Extract runs the retry-controlled extraction of one table, writes the CSV
// blob, and upserts the extracted_tables record. Requires state analyzed,
// extracting, or extracted.
func (s *ExtractionService) Extract(ctx context.Context, sessionID string, table dto.TableInfo) (*dto.ExtractResponse, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := s.transition(sessionID, extractableStates, model.StateExtracting); err != nil {
		return nil, err
	}

	text, _, err := pdf.ExtractTextFile(session.PDFPath)
	if err != nil {
		return nil, s.failSession(sessionID, model.StageExtract, fmt.Errorf("pdf extraction failed: %w", err))
	}
	window := pdf.PageWindow(text, table.PageNumber)

	controller := extraction.NewController(extraction.RetryConfig{
		MaxRetries:        s.cfg.Extraction.MaxRetries,
		InitialDelay:      s.cfg.Extraction.InitialDelay(),
		MaxDelay:          s.cfg.Extraction.MaxDelay(),
		BackoffMultiplier: s.cfg.Extraction.BackoffMultiplier,
	})

	op := func(ctx context.Context, hints []string, lastErr error) (*extraction.TableData, error) {
		prompt := extraction.BuildExtractionPrompt(window, table, hints, lastErr)
		raw, err := s.llm.Complete(ctx, extraction.ExtractionSystemPrompt, prompt,
			llm.Options{MaxTokens: s.cfg.LLM.MaxTokens, Temperature: s.cfg.LLM.Temperature})
		if err != nil {
			return nil, err
		}

		rows, err := extraction.ParseCSV(raw)
		if err != nil {
			return nil, err
		}

		stats, err := extraction.Validate(rows, table.EstimatedColumns,
			s.cfg.Extraction.ColumnTolerance, s.cfg.Extraction.CompletenessFloor)
		if err != nil {
			return nil, err
		}

		encoded, err := extraction.EncodeCSV(rows)
		if err != nil {
			return nil, err
		}
		return &extraction.TableData{Rows: rows, Stats: stats, RawCSV: encoded}, nil
	}

	result := controller.RunWithRetry(ctx, op)
	for _, a := range result.Attempts {
		if a.Success {
			log.Printf("Session %s: table %s attempt %d succeeded in %s",
				sessionID, table.TableNumber, a.Number, a.Duration)
		} else {
			log.Printf("Session %s: table %s attempt %d failed (%s) in %s: %v",
				sessionID, table.TableNumber, a.Number, a.Kind, a.Duration, a.Err)
		}
	}

	if !result.Success {
		err := fmt.Errorf("table %s extraction failed after %d attempts: %w",
			table.TableNumber, result.TotalAttempts(), result.LastErr)
		return nil, s.failSession(sessionID, model.StageExtract, err)
	}

	key := storage.TableKey(sessionID, table.TableNumber)
	if err := s.store.Put(key, []byte(result.Data.RawCSV), "text/csv"); err != nil {
		return nil, s.failSession(sessionID, model.StageExtract, fmt.Errorf("failed to store csv: %w", err))
	}

	record := &model.ExtractedTable{
		SessionID:       sessionID,
		TableNumber:     table.TableNumber,
		Caption:         table.Caption,
		PageNumber:      table.PageNumber,
		CSVPath:         key,
		RowCount:        result.Data.Stats.Rows,
		ColumnCount:     result.Data.Stats.Columns,
		CompletenessPct: result.Data.Stats.CompletenessPct,
	}
	if err := s.tables.Upsert(record); err != nil {
		return nil, s.failSession(sessionID, model.StageExtract, fmt.Errorf("failed to record table: %w", err))
	}

	if err := s.transition(sessionID, []string{model.StateExtracting}, model.StateExtracted); err != nil {
		return nil, err
	}

	return &dto.ExtractResponse{
		SessionID:   sessionID,
		State:       model.StateExtracted,
		TableNumber: table.TableNumber,
		CSVPath:     key,
		Stats: dto.TableStats{
			TotalRows:       result.Data.Stats.Rows,
			TotalColumns:    result.Data.Stats.Columns,
			CompletenessPct: result.Data.Stats.CompletenessPct,
		},
		TotalAttempts: result.TotalAttempts(),
	}, nil
}

// Import finalizes an extracted session into a dataset: copies each table
// CSV to its {datasetId}/csv/{filename} key and creates the data_files rows.
func (s *ExtractionService) Import(ctx context.Context, sessionID string, req *dto.ImportRequest) (*dto.ImportResponse, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.State != model.StateExtracted {
		return nil, &InvalidStateError{Actual: session.State, Expected: []string{model.StateExtracted}}
	}

	tables, err := s.tables.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	dataset := &model.Dataset{
		Name:         req.Name,
		Description:  req.Description,
		SessionID:    sessionID,
		PaperTitle:   session.PaperTitle,
		PaperAuthors: session.PaperAuthors,
		PaperDOI:     session.PaperDOI,
		PaperYear:    session.PaperYear,
		DataTypes:    session.DataTypesAvailable,
	}
	if err := s.datasets.Create(dataset); err != nil {
		return nil, err
	}

	count := 0
	for _, t := range tables {
		data, err := s.store.Get(t.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", t.TableNumber, err)
		}

		filename := fmt.Sprintf("table-%s.csv", t.TableNumber)
		key := storage.DatasetCSVKey(dataset.ID, filename)
		if err := s.store.Put(key, data, "text/csv"); err != nil {
			return nil, fmt.Errorf("failed to copy table %s: %w", t.TableNumber, err)
		}

		file := &model.DataFile{
			DatasetID:   dataset.ID,
			Filename:    filename,
			BlobKey:     key,
			TableNumber: t.TableNumber,
			RowCount:    t.RowCount,
			ColumnCount: t.ColumnCount,
			SizeBytes:   int64(len(data)),
		}
		if err := s.datasets.CreateFile(file); err != nil {
			return nil, err
		}
		count++
	}

	log.Printf("Session %s: imported as dataset %d (%d files)", sessionID, dataset.ID, count)

	return &dto.ImportResponse{DatasetID: dataset.ID, FileCount: count}, nil
}

// transition applies the SQL-guarded state change and converts a guard
// failure into InvalidStateError naming the actual state.
func (s *ExtractionService) transition(sessionID string, from []string, to string) error {
	err := s.sessions.TransitionState(sessionID, from, to)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrStateConflict) {
		actual := "unknown"
		if session, getErr := s.sessions.GetByID(sessionID); getErr == nil {
			actual = session.State
		}
		return &InvalidStateError{Actual: actual, Expected: from}
	}
	return err
}

// failSession durably marks the session failed and returns the original
// error for the HTTP layer to surface.
func (s *ExtractionService) failSession(sessionID, stage string, err error) error {
	log.Printf("Session %s: %s stage failed: %v", sessionID, stage, err)
	if markErr := s.sessions.MarkFailed(sessionID, err.Error(), stage); markErr != nil {
		log.Printf("Session %s: failed to mark session failed: %v", sessionID, markErr)
	}
	return err
}

func dataTypesFromTables(tables []dto.TableInfo) []string {
	seen := make(map[string]bool)
	var types []string
	for _, t := range tables {
		if t.DataType == "" || seen[t.DataType] {
			continue
		}
		seen[t.DataType] = true
		types = append(types, t.DataType)
	}
	return types
}
