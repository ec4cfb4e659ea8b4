package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

func TestBrowseRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBrowseRepository(db)
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "A-1"; s.AgeMa = 20 })
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "B-2"; s.AgeMa = 5 })
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "C-3"; s.AgeMa = 12 })

	rows, total, err := repo.List("samples", []string{"sample_name", "age_ma"}, &dto.BrowseQuery{
		SortBy: "age_ma", SortOrder: "desc", Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[0]["sample_name"])

	// Only the selected columns come back.
	_, hasLat := rows[0]["latitude"]
	assert.False(t, hasLat)
}

func TestBrowseRepository_List_Offset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBrowseRepository(db)
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "A-1" })
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "B-2" })

	rows, _, err := repo.List("samples", []string{"sample_name"}, &dto.BrowseQuery{
		SortBy: "sample_name", Limit: 10, Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B-2", rows[0]["sample_name"])
}

func TestBrowseRepository_ListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBrowseRepository(db)
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "B-2" })
	testutil.TestSample(t, db, func(s *model.Sample) { s.SampleName = "A-1" })

	rows, err := repo.ListAll("samples", []string{"sample_name"}, "sample_name")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[0]["sample_name"])
}
