package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
)

type ExtractedTableRepository struct {
	db *gorm.DB
}

func NewExtractedTableRepository(db *gorm.DB) *ExtractedTableRepository {
	return &ExtractedTableRepository{db: db}
}

// Upsert creates the record on first extraction and updates it in place on
// re-extraction; the blob path stays stable per (session, table number).
func (r *ExtractedTableRepository) Upsert(table *model.ExtractedTable) error {
	var existing model.ExtractedTable
	err := r.db.Where("session_id = ? AND table_number = ?", table.SessionID, table.TableNumber).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(table).Error
	}
	if err != nil {
		return err
	}

	table.ID = existing.ID
	table.CreatedAt = existing.CreatedAt
	return r.db.Save(table).Error
}

func (r *ExtractedTableRepository) ListBySession(sessionID string) ([]*model.ExtractedTable, error) {
	var tables []*model.ExtractedTable
	err := r.db.Where("session_id = ?", sessionID).
		Order("table_number ASC").
		Find(&tables).Error
	return tables, err
}

func (r *ExtractedTableRepository) GetBySessionAndNumber(sessionID, tableNumber string) (*model.ExtractedTable, error) {
	var table model.ExtractedTable
	err := r.db.Where("session_id = ? AND table_number = ?", sessionID, tableNumber).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}
