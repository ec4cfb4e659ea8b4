package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/storage"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

// DatasetService serves the dataset cards on the browse surface.
type DatasetService struct {
	datasets *repository.DatasetRepository
	store    storage.Store
}

func NewDatasetService(datasets *repository.DatasetRepository, store storage.Store) *DatasetService {
	return &DatasetService{datasets: datasets, store: store}
}

func (s *DatasetService) List(page, pageSize int) ([]*dto.DatasetListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	datasets, total, err := s.datasets.List(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.DatasetListItem, 0, len(datasets))
	for _, d := range datasets {
		items = append(items, s.buildListItem(d))
	}
	return items, total, nil
}

func (s *DatasetService) Get(id int64) (*model.Dataset, []*dto.DatasetFileItem, *model.FairScoreBreakdown, error) {
	dataset, err := s.datasets.GetByIDWithFiles(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrDatasetNotFound
		}
		return nil, nil, nil, err
	}

	files := make([]*dto.DatasetFileItem, 0, len(dataset.Files))
	for _, f := range dataset.Files {
		files = append(files, &dto.DatasetFileItem{
			ID:          f.ID,
			Filename:    f.Filename,
			TableNumber: f.TableNumber,
			RowCount:    f.RowCount,
			ColumnCount: f.ColumnCount,
			SizeBytes:   f.SizeBytes,
			DownloadURL: s.downloadURL(f.BlobKey),
		})
	}

	score, err := s.datasets.GetFairScore(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}
	return dataset, files, score, nil
}

// downloadURL prefers a signed URL when the store requires one.
func (s *DatasetService) downloadURL(key string) string {
	if signer, ok := s.store.(storage.URLSigner); ok {
		if url, err := signer.SignedURL(key); err == nil {
			return url
		}
	}
	return s.store.URL(key)
}

func (s *DatasetService) buildListItem(d *model.Dataset) *dto.DatasetListItem {
	item := &dto.DatasetListItem{
		ID:         d.ID,
		Name:       d.Name,
		PaperTitle: d.PaperTitle,
		PaperDOI:   d.PaperDOI,
		PaperYear:  d.PaperYear,
		DataTypes:  d.DataTypes,
		FileCount:  len(d.Files),
	}
	if score, err := s.datasets.GetFairScore(d.ID); err == nil {
		item.FairScore = &score.Overall
	}
	return item
}
