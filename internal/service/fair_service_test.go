package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

const fairScoreJSON = `{"findable": 72.0, "accessible": 80.0, "interoperable": 60.0, "reusable": 48.0, "overall": 65.0, "recommendations": ["Add a DOI for the dataset", "Report analytical uncertainties per grain"]}`

type fairEnv struct {
	db       *gorm.DB
	svc      *FairService
	datasets *repository.DatasetRepository
	store    *storage.LocalStore
}

func newFairEnv(t *testing.T, llmURL string, generateExports bool) *fairEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	standardPath := filepath.Join(t.TempDir(), "standard.md")
	require.NoError(t, os.WriteFile(standardPath,
		[]byte("# Reporting standard\nEvery sample must report lat, lon, elevation."), 0644))

	cfg := &config.Config{}
	cfg.LLM = config.LLMConfig{BaseURL: llmURL, APIKey: "test-key", Model: "test-model", MaxTokens: 1024}
	cfg.FAIR = config.FAIRConfig{StandardPath: standardPath, GenerateExports: generateExports}

	datasets := repository.NewDatasetRepository(db)
	svc := NewFairService(datasets, store, llm.NewClient(cfg.LLM), cfg)

	return &fairEnv{db: db, svc: svc, datasets: datasets, store: store}
}

func TestFairService_Analyze(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Messages[1].Content
		w.Write(llmReply(t, fairScoreJSON))
	}))
	defer server.Close()

	env := newFairEnv(t, server.URL, false)

	dataset := testutil.TestDataset(t, env.db)
	file := testutil.TestDataFile(t, env.db, dataset.ID, "table-1.csv")
	require.NoError(t, env.store.Put(file.BlobKey, []byte("sample,age_ma\nS1,12.5\n"), "text/csv"))

	resp, err := env.svc.Analyze(context.Background(), dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.ID, resp.DatasetID)
	assert.InDelta(t, 65.0, resp.Score.Overall, 0.001)
	assert.Empty(t, resp.ExportPath)

	// The prompt carries the CSV sample and the reporting standard.
	assert.Contains(t, gotPrompt, "sample,age_ma")
	assert.Contains(t, gotPrompt, "Reporting standard")
	assert.Contains(t, gotPrompt, dataset.Name)

	score, err := env.datasets.GetFairScore(dataset.ID)
	require.NoError(t, err)
	assert.InDelta(t, 72.0, score.Findable, 0.001)
	assert.Contains(t, score.Recommendations, "Add a DOI")
}

func TestFairService_Analyze_RescoreOverwrites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(llmReply(t, fairScoreJSON))
	}))
	defer server.Close()

	env := newFairEnv(t, server.URL, false)
	dataset := testutil.TestDataset(t, env.db)
	file := testutil.TestDataFile(t, env.db, dataset.ID, "table-1.csv")
	require.NoError(t, env.store.Put(file.BlobKey, []byte("a,b\n1,2\n"), "text/csv"))

	_, err := env.svc.Analyze(context.Background(), dataset.ID)
	require.NoError(t, err)
	first, err := env.datasets.GetFairScore(dataset.ID)
	require.NoError(t, err)

	_, err = env.svc.Analyze(context.Background(), dataset.ID)
	require.NoError(t, err)
	second, err := env.datasets.GetFairScore(dataset.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestFairService_Analyze_GeneratesExport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(llmReply(t, fairScoreJSON))
	}))
	defer server.Close()

	env := newFairEnv(t, server.URL, true)
	dataset := testutil.TestDataset(t, env.db)
	file := testutil.TestDataFile(t, env.db, dataset.ID, "table-1.csv")
	require.NoError(t, env.store.Put(file.BlobKey, []byte("a,b\n1,2\n"), "text/csv"))

	resp, err := env.svc.Analyze(context.Background(), dataset.ID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ExportPath)
	assert.True(t, strings.HasSuffix(resp.ExportPath, "fair-template.xlsx"))

	exported, err := env.store.Get(resp.ExportPath)
	require.NoError(t, err)
	assert.NotEmpty(t, exported)
}

func TestFairService_Analyze_DatasetNotFound(t *testing.T) {
	env := newFairEnv(t, "http://unused", false)

	_, err := env.svc.Analyze(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestFairService_Analyze_BadScoreJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(llmReply(t, "I would rate this dataset as quite FAIR overall."))
	}))
	defer server.Close()

	env := newFairEnv(t, server.URL, false)
	dataset := testutil.TestDataset(t, env.db)
	file := testutil.TestDataFile(t, env.db, dataset.ID, "table-1.csv")
	require.NoError(t, env.store.Put(file.BlobKey, []byte("a,b\n1,2\n"), "text/csv"))

	_, err := env.svc.Analyze(context.Background(), dataset.ID)
	require.Error(t, err)

	// No score row is written on failure.
	_, err = env.datasets.GetFairScore(dataset.ID)
	assert.Error(t, err)
}
