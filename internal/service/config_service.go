package service

import (
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ConfigService serves the QC test-configuration browse surface.
type ConfigService struct {
	configs *repository.ConfigRepository
}

func NewConfigService(configs *repository.ConfigRepository) *ConfigService {
	return &ConfigService{configs: configs}
}

// List validates pagination and sort, then fetches one page of QC configs.
func (s *ConfigService) List(q *dto.ConfigsQuery) (*dto.ConfigsResponse, error) {
	if q.Limit < 1 || q.Limit > MaxPageSize || q.Offset < 0 {
		return nil, ErrBadPagination
	}
	if q.SortBy != "" && !repository.ConfigSortable(q.SortBy) {
		return nil, ErrBadSortColumn
	}

	configs, total, err := s.configs.List(q)
	if err != nil {
		return nil, err
	}

	return &dto.ConfigsResponse{
		Data:  configs,
		Total: total,
		// 1-based page containing the offset; unaligned offsets round down.
		Page:       q.Offset/q.Limit + 1,
		PageSize:   q.Limit,
		TotalPages: totalPages(total, q.Limit),
		Filters: dto.ConfigsFilters{
			ManufacturerIDs: q.ManufacturerIDs,
			MarkerIDs:       q.MarkerIDs,
			AssayIDs:        q.AssayIDs,
			QualityRating:   q.QualityRating,
			CVBucket:        q.CVBucket,
			Search:          q.Search,
		},
	}, nil
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
