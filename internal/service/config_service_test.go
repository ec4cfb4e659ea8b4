package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

func TestConfigService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewConfigService(repository.NewConfigRepository(db))
	for i := 0; i < 5; i++ {
		testutil.TestTestConfig(t, db)
	}

	resp, err := svc.List(&dto.ConfigsQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.PageSize)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestConfigService_List_UnalignedOffset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewConfigService(repository.NewConfigRepository(db))
	for i := 0; i < 5; i++ {
		testutil.TestTestConfig(t, db)
	}

	// An offset inside the first page still reports page 1.
	resp, err := svc.List(&dto.ConfigsQuery{Limit: 50, Offset: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)

	resp, err = svc.List(&dto.ConfigsQuery{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page)
}

func TestConfigService_List_PaginationBounds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewConfigService(repository.NewConfigRepository(db))

	_, err := svc.List(&dto.ConfigsQuery{Limit: 0})
	assert.ErrorIs(t, err, ErrBadPagination)

	_, err = svc.List(&dto.ConfigsQuery{Limit: 101})
	assert.ErrorIs(t, err, ErrBadPagination)

	_, err = svc.List(&dto.ConfigsQuery{Limit: 50, Offset: -1})
	assert.ErrorIs(t, err, ErrBadPagination)

	// Boundary values are legal.
	_, err = svc.List(&dto.ConfigsQuery{Limit: 1})
	assert.NoError(t, err)
	_, err = svc.List(&dto.ConfigsQuery{Limit: 100})
	assert.NoError(t, err)
}

func TestConfigService_List_BadSortColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewConfigService(repository.NewConfigRepository(db))

	_, err := svc.List(&dto.ConfigsQuery{Limit: 50, SortBy: "password"})
	assert.ErrorIs(t, err, ErrBadSortColumn)
}

func TestConfigService_List_EchoesFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewConfigService(repository.NewConfigRepository(db))

	resp, err := svc.List(&dto.ConfigsQuery{
		Limit:         50,
		CVBucket:      "lt5",
		QualityRating: "good",
		Search:        "Roche",
	})
	require.NoError(t, err)
	assert.Equal(t, "lt5", resp.Filters.CVBucket)
	assert.Equal(t, "good", resp.Filters.QualityRating)
	assert.Equal(t, "Roche", resp.Filters.Search)
}
