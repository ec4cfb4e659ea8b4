package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

func TestExtractedTableRepository_Upsert_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewExtractedTableRepository(db)
	session := testutil.TestSession(t, db)

	table := &model.ExtractedTable{
		SessionID:       session.SessionID,
		TableNumber:     "1",
		CSVPath:         session.SessionID + "/tables/table-1.csv",
		RowCount:        3,
		ColumnCount:     5,
		CompletenessPct: 1.0,
	}
	err := repo.Upsert(table)
	require.NoError(t, err)
	assert.NotZero(t, table.ID)
}

func TestExtractedTableRepository_Upsert_UpdatesInPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewExtractedTableRepository(db)
	session := testutil.TestSession(t, db)
	first := testutil.TestExtractedTable(t, db, session.SessionID, "2")

	again := &model.ExtractedTable{
		SessionID:       session.SessionID,
		TableNumber:     "2",
		CSVPath:         first.CSVPath,
		RowCount:        10,
		ColumnCount:     4,
		CompletenessPct: 0.9,
	}
	err := repo.Upsert(again)
	require.NoError(t, err)

	// Re-extraction keeps the same record, not a second row.
	assert.Equal(t, first.ID, again.ID)

	tables, err := repo.ListBySession(session.SessionID)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 10, tables[0].RowCount)
}

func TestExtractedTableRepository_ListBySession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewExtractedTableRepository(db)
	session := testutil.TestSession(t, db)
	other := testutil.TestSession(t, db)

	testutil.TestExtractedTable(t, db, session.SessionID, "2")
	testutil.TestExtractedTable(t, db, session.SessionID, "1")
	testutil.TestExtractedTable(t, db, other.SessionID, "1")

	tables, err := repo.ListBySession(session.SessionID)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "1", tables[0].TableNumber)
	assert.Equal(t, "2", tables[1].TableNumber)
}

func TestExtractedTableRepository_GetBySessionAndNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewExtractedTableRepository(db)
	session := testutil.TestSession(t, db)
	created := testutil.TestExtractedTable(t, db, session.SessionID, "S1")

	found, err := repo.GetBySessionAndNumber(session.SessionID, "S1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetBySessionAndNumber(session.SessionID, "S2")
	assert.Error(t, err)
}
