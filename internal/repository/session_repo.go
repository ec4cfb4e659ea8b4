package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
)

// ErrStateConflict means a guarded state transition matched zero rows: the
// session was not in any of the allowed source states. The single-writer
// guard lives in this predicate, not in application locks.
var ErrStateConflict = errors.New("session state conflict")

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.ExtractionSession) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByID(sessionID string) (*model.ExtractionSession, error) {
	var session model.ExtractionSession
	err := r.db.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// TransitionState moves the session to newState only if its current state
// is one of from. Returns ErrStateConflict when the guard fails.
func (r *SessionRepository) TransitionState(sessionID string, from []string, newState string) error {
	res := r.db.Model(&model.ExtractionSession{}).
		Where("session_id = ? AND state IN ?", sessionID, from).
		Update("state", newState)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// MarkFailed records the terminal failed state with a human-readable reason
// and the stage that failed.
func (r *SessionRepository) MarkFailed(sessionID, reason, stage string) error {
	return r.db.Model(&model.ExtractionSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"state":          model.StateFailed,
			"failure_reason": reason,
			"failed_stage":   stage,
		}).Error
}

// UpdatePaperMetadata stores the analysis result on the session row.
func (r *SessionRepository) UpdatePaperMetadata(sessionID string, title, authors, doi string, year, tableCount int, dataTypes []string) error {
	return r.db.Model(&model.ExtractionSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"paper_title":          title,
			"paper_authors":        authors,
			"paper_doi":            doi,
			"paper_year":           year,
			"tables_found":         tableCount,
			"data_types_available": model.StringArray(dataTypes),
		}).Error
}

// ListOlderThan returns sessions created before the cutoff, for the manual
// cleanup tool. Sessions are never deleted automatically.
func (r *SessionRepository) ListOlderThan(cutoff time.Time) ([]*model.ExtractionSession, error) {
	var sessions []*model.ExtractionSession
	err := r.db.Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}
