package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

func newDatasetService(t *testing.T, db *gorm.DB) (*DatasetService, *repository.DatasetRepository) {
	t.Helper()
	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	repo := repository.NewDatasetRepository(db)
	return NewDatasetService(repo, store), repo
}

func TestDatasetService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newDatasetService(t, db)

	scored := testutil.TestDataset(t, db)
	testutil.TestDataFile(t, db, scored.ID, "table-1.csv")
	require.NoError(t, repo.UpsertFairScore(&model.FairScoreBreakdown{
		DatasetID: scored.ID, Overall: 65,
	}))
	testutil.TestDataset(t, db)

	items, total, err := svc.List(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	var withScore, withoutScore int
	for _, item := range items {
		if item.FairScore != nil {
			withScore++
			assert.InDelta(t, 65.0, *item.FairScore, 0.001)
		} else {
			withoutScore++
		}
	}
	assert.Equal(t, 1, withScore)
	assert.Equal(t, 1, withoutScore)
}

func TestDatasetService_List_ClampsPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newDatasetService(t, db)
	testutil.TestDataset(t, db)

	items, _, err := svc.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, _, err = svc.List(-5, 9999)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDatasetService_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newDatasetService(t, db)

	dataset := testutil.TestDataset(t, db)
	dataFile := testutil.TestDataFile(t, db, dataset.ID, "table-1.csv")

	found, files, score, err := svc.Get(dataset.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.ID, found.ID)
	assert.Nil(t, score)

	require.Len(t, files, 1)
	assert.Equal(t, "table-1.csv", files[0].Filename)
	assert.Equal(t, "local://"+dataFile.BlobKey, files[0].DownloadURL)

	require.NoError(t, repo.UpsertFairScore(&model.FairScoreBreakdown{DatasetID: dataset.ID, Overall: 50}))
	_, _, score, err = svc.Get(dataset.ID)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 50.0, score.Overall, 0.001)
}

// signingStore signs its download URLs, like the OSS client with a private
// bucket.
type signingStore struct {
	*storage.LocalStore
}

func (s *signingStore) SignedURL(key string, expireSeconds ...int64) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func TestDatasetService_Get_SignedDownloadURLs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	local, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	svc := NewDatasetService(repository.NewDatasetRepository(db), &signingStore{local})

	dataset := testutil.TestDataset(t, db)
	dataFile := testutil.TestDataFile(t, db, dataset.ID, "table-1.csv")

	_, files, _, err := svc.Get(dataset.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "https://signed.example.com/"+dataFile.BlobKey, files[0].DownloadURL)
}

func TestDatasetService_Get_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newDatasetService(t, db)

	_, _, _, err := svc.Get(12345)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}
