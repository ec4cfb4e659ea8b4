package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
)

type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func (r *DatasetRepository) Create(dataset *model.Dataset) error {
	return r.db.Create(dataset).Error
}

func (r *DatasetRepository) GetByID(id int64) (*model.Dataset, error) {
	var dataset model.Dataset
	err := r.db.Where("id = ?", id).First(&dataset).Error
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (r *DatasetRepository) GetByIDWithFiles(id int64) (*model.Dataset, error) {
	var dataset model.Dataset
	err := r.db.Preload("Files").Where("id = ?", id).First(&dataset).Error
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (r *DatasetRepository) List(page, pageSize int) ([]*model.Dataset, int64, error) {
	var datasets []*model.Dataset
	var total int64

	query := r.db.Model(&model.Dataset{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Files").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&datasets).Error
	return datasets, total, err
}

func (r *DatasetRepository) CreateFile(file *model.DataFile) error {
	return r.db.Create(file).Error
}

func (r *DatasetRepository) ListFiles(datasetID int64) ([]*model.DataFile, error) {
	var files []*model.DataFile
	err := r.db.Where("dataset_id = ?", datasetID).
		Order("filename ASC").
		Find(&files).Error
	return files, err
}

// UpsertFairScore writes the one fair_score_breakdown row per dataset.
func (r *DatasetRepository) UpsertFairScore(score *model.FairScoreBreakdown) error {
	var existing model.FairScoreBreakdown
	err := r.db.Where("dataset_id = ?", score.DatasetID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		score.AnalyzedAt = time.Now()
		return r.db.Create(score).Error
	}
	if err != nil {
		return err
	}

	score.ID = existing.ID
	score.CreatedAt = existing.CreatedAt
	score.AnalyzedAt = time.Now()
	return r.db.Save(score).Error
}

func (r *DatasetRepository) GetFairScore(datasetID int64) (*model.FairScoreBreakdown, error) {
	var score model.FairScoreBreakdown
	err := r.db.Where("dataset_id = ?", datasetID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}
