package repository

import (
	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
)

// configSortColumns whitelists the sortable fields of GET /api/configs.
var configSortColumns = map[string]string{
	"manufacturer": "manufacturer_name",
	"marker":       "marker_name",
	"assay":        "assay_name",
	"cv":           "cv_pct",
	"mean":         "mean_value",
	"n":            "num_results",
	"rating":       "quality_rating",
	"created":      "created_at",
}

// ConfigSortable reports whether sortBy is an allowed sort field.
func ConfigSortable(sortBy string) bool {
	_, ok := configSortColumns[sortBy]
	return ok
}

type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// List applies the parsed filters and pagination of GET /api/configs.
func (r *ConfigRepository) List(q *dto.ConfigsQuery) ([]*model.TestConfig, int64, error) {
	var configs []*model.TestConfig
	var total int64

	query := r.db.Model(&model.TestConfig{})

	if len(q.ManufacturerIDs) > 0 {
		query = query.Where("manufacturer_id IN ?", q.ManufacturerIDs)
	}
	if len(q.MarkerIDs) > 0 {
		query = query.Where("marker_id IN ?", q.MarkerIDs)
	}
	if len(q.AssayIDs) > 0 {
		query = query.Where("assay_id IN ?", q.AssayIDs)
	}
	if q.QualityRating != "" {
		query = query.Where("quality_rating = ?", q.QualityRating)
	}
	switch q.CVBucket {
	case "lt5":
		query = query.Where("cv_pct < ?", 5.0)
	case "5to10":
		query = query.Where("cv_pct >= ? AND cv_pct < ?", 5.0, 10.0)
	case "10to15":
		query = query.Where("cv_pct >= ? AND cv_pct < ?", 10.0, 15.0)
	case "gt15":
		query = query.Where("cv_pct >= ?", 15.0)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where(
			"manufacturer_name LIKE ? OR marker_name LIKE ? OR assay_name LIKE ?",
			like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol, ok := configSortColumns[q.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := sortCol + " ASC"
	if q.SortOrder == "desc" {
		order = sortCol + " DESC"
	}

	err := query.Order(order).
		Offset(q.Offset).Limit(q.Limit).
		Find(&configs).Error
	if err != nil {
		return nil, 0, err
	}

	return configs, total, nil
}
