package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

// csvSampleLimit bounds how much of each CSV goes into the scoring prompt.
const csvSampleLimit = 2000

const fairSystemPrompt = `You are a FAIR data compliance assessor for geoscience datasets. Score the dataset you are shown against the reporting standard provided, on the four FAIR dimensions.

Respond with JSON only, in this exact shape:
{"findable": 0.0, "accessible": 0.0, "interoperable": 0.0, "reusable": 0.0, "overall": 0.0, "recommendations": [""]}

Scores range 0 to 100. overall is the mean of the four dimensions. recommendations lists concrete gaps against the reporting standard.`

// FairService runs the FAIR-compliance scoring pipeline for one dataset.
type FairService struct {
	datasets *repository.DatasetRepository
	store    storage.Store
	llm      *llm.Client
	cfg      *config.Config
}

func NewFairService(
	datasets *repository.DatasetRepository,
	store storage.Store,
	llmClient *llm.Client,
	cfg *config.Config,
) *FairService {
	return &FairService{
		datasets: datasets,
		store:    store,
		llm:      llmClient,
		cfg:      cfg,
	}
}

// Analyze downloads the dataset's CSVs, loads the reporting-standard
// reference document, asks the model for a score breakdown, and upserts the
// fair_score_breakdown row. No partial success: any failure surfaces whole.
func (s *FairService) Analyze(ctx context.Context, datasetID int64) (*dto.FairAnalyzeResponse, error) {
	dataset, err := s.datasets.GetByIDWithFiles(datasetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}

	standard, err := os.ReadFile(s.cfg.FAIR.StandardPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporting standard: %w", err)
	}

	prompt, err := s.buildPrompt(dataset, string(standard))
	if err != nil {
		return nil, err
	}

	var score dto.FairScore
	err = s.llm.CompleteJSON(ctx, fairSystemPrompt, prompt,
		llm.Options{MaxTokens: s.cfg.LLM.MaxTokens, Temperature: s.cfg.LLM.Temperature}, &score)
	if err != nil {
		return nil, fmt.Errorf("fair scoring failed: %w", err)
	}

	breakdown := &model.FairScoreBreakdown{
		DatasetID:       datasetID,
		Findable:        score.Findable,
		Accessible:      score.Accessible,
		Interoperable:   score.Interoperable,
		Reusable:        score.Reusable,
		Overall:         score.Overall,
		Recommendations: strings.Join(score.Recommendations, "\n"),
	}
	if err := s.datasets.UpsertFairScore(breakdown); err != nil {
		return nil, fmt.Errorf("failed to record fair score: %w", err)
	}

	resp := &dto.FairAnalyzeResponse{DatasetID: datasetID, Score: score}

	if s.cfg.FAIR.GenerateExports {
		exportKey, err := s.generateTemplateExport(dataset, score)
		if err != nil {
			// The score is already durably recorded; the export is optional.
			log.Printf("Dataset %d: template export failed: %v", datasetID, err)
		} else {
			resp.ExportPath = exportKey
		}
	}

	log.Printf("Dataset %d: fair score %.1f (F %.1f / A %.1f / I %.1f / R %.1f)",
		datasetID, score.Overall, score.Findable, score.Accessible, score.Interoperable, score.Reusable)

	return resp, nil
}

// buildPrompt assembles the dataset description, a sample of each CSV, and
// the reporting standard into one scoring prompt.
func (s *FairService) buildPrompt(dataset *model.Dataset, standard string) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Dataset: %s\n", dataset.Name)
	if dataset.PaperTitle != "" {
		fmt.Fprintf(&sb, "Source paper: %s", dataset.PaperTitle)
		if dataset.PaperYear > 0 {
			fmt.Fprintf(&sb, " (%d)", dataset.PaperYear)
		}
		sb.WriteString("\n")
	}
	if dataset.PaperDOI != "" {
		fmt.Fprintf(&sb, "DOI: %s\n", dataset.PaperDOI)
	}
	if len(dataset.DataTypes) > 0 {
		fmt.Fprintf(&sb, "Data types: %s\n", strings.Join(dataset.DataTypes, ", "))
	}

	sb.WriteString("\nFiles:\n")
	for _, file := range dataset.Files {
		data, err := s.store.Get(file.BlobKey)
		if err != nil {
			return "", fmt.Errorf("failed to download %s: %w", file.Filename, err)
		}
		sample := string(data)
		if len(sample) > csvSampleLimit {
			sample = sample[:csvSampleLimit] + "\n..."
		}
		fmt.Fprintf(&sb, "\n--- %s (%d rows, %d columns) ---\n%s\n",
			file.Filename, file.RowCount, file.ColumnCount, sample)
	}

	sb.WriteString("\nReporting standard:\n\n")
	sb.WriteString(standard)
	return sb.String(), nil
}

// generateTemplateExport writes an XLSX summary of the score breakdown to
// the dataset's exports prefix in the blob store.
func (s *FairService) generateTemplateExport(dataset *model.Dataset, score dto.FairScore) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "FAIR Assessment"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	rows := [][]interface{}{
		{"Dataset", dataset.Name},
		{"Paper", dataset.PaperTitle},
		{"DOI", dataset.PaperDOI},
		{},
		{"Dimension", "Score"},
		{"Findable", score.Findable},
		{"Accessible", score.Accessible},
		{"Interoperable", score.Interoperable},
		{"Reusable", score.Reusable},
		{"Overall", score.Overall},
		{},
		{"Recommendations"},
	}
	for _, rec := range score.Recommendations {
		rows = append(rows, []interface{}{rec})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", err
	}

	key := storage.FairExportKey(dataset.ID)
	if err := s.store.Put(key, buf.Bytes(),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err != nil {
		return "", err
	}
	return key, nil
}
