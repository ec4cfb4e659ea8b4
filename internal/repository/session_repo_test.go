package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/testutil"
)

func TestSessionRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := &model.ExtractionSession{
		SessionID:   "11111111-1111-1111-1111-111111111111",
		PDFPath:     "/tmp/uploads/x/paper.pdf",
		PDFFilename: "paper.pdf",
		State:       model.StateUploaded,
	}

	err := repo.Create(session)
	require.NoError(t, err)

	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StateUploaded, found.State)
	assert.Equal(t, "paper.pdf", found.PDFFilename)
}

func TestSessionRepository_TransitionState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := testutil.TestSession(t, db)

	err := repo.TransitionState(session.SessionID, []string{model.StateUploaded}, model.StateAnalyzing)
	require.NoError(t, err)

	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StateAnalyzing, found.State)
}

func TestSessionRepository_TransitionState_GuardViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := testutil.TestSession(t, db)

	// analyze is only legal from uploaded; extract is not.
	err := repo.TransitionState(session.SessionID, []string{model.StateAnalyzed, model.StateExtracting, model.StateExtracted}, model.StateExtracting)
	assert.ErrorIs(t, err, ErrStateConflict)

	// The guard must leave the row untouched.
	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StateUploaded, found.State)
}

func TestSessionRepository_TransitionState_ExtractedLoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := testutil.TestSession(t, db, testutil.WithState(model.StateExtracted))

	// extracted re-enters extracting for the next table.
	err := repo.TransitionState(session.SessionID, []string{model.StateAnalyzed, model.StateExtracting, model.StateExtracted}, model.StateExtracting)
	require.NoError(t, err)

	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StateExtracting, found.State)
}

func TestSessionRepository_MarkFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := testutil.TestSession(t, db, testutil.WithState(model.StateAnalyzing))

	err := repo.MarkFailed(session.SessionID, "pdf has no extractable text layer", model.StageAnalyze)
	require.NoError(t, err)

	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StateFailed, found.State)
	assert.Equal(t, model.StageAnalyze, found.FailedStage)
	assert.Contains(t, found.FailureReason, "no extractable text")
	assert.True(t, found.Terminal())
}

func TestSessionRepository_UpdatePaperMetadata(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	session := testutil.TestSession(t, db, testutil.WithState(model.StateAnalyzing))

	err := repo.UpdatePaperMetadata(session.SessionID,
		"Exhumation of the Test Range", "Smith, A; Jones, B", "10.1000/test", 2019,
		3, []string{"fission_track", "u_th_he"})
	require.NoError(t, err)

	found, err := repo.GetByID(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Exhumation of the Test Range", found.PaperTitle)
	assert.Equal(t, 2019, found.PaperYear)
	assert.Equal(t, 3, found.TablesFound)
	assert.Equal(t, model.StringArray{"fission_track", "u_th_he"}, found.DataTypesAvailable)
}

func TestSessionRepository_ListOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	old := testutil.TestSession(t, db, testutil.WithCreatedAt(time.Now().Add(-48*time.Hour)))
	testutil.TestSession(t, db)

	expired, err := repo.ListOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, old.SessionID, expired[0].SessionID)
}
