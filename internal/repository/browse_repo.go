package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
)

// BrowseRepository is the generic paginated passthrough behind
// GET /api/tables/:name. Table and column names never come from the request
// directly; the service validates them against the static allow-list before
// they reach this query builder.
type BrowseRepository struct {
	db *gorm.DB
}

func NewBrowseRepository(db *gorm.DB) *BrowseRepository {
	return &BrowseRepository{db: db}
}

// List fetches one page of rows from table, selecting exactly the
// allow-listed columns in their configured order.
func (r *BrowseRepository) List(table string, columns []string, q *dto.BrowseQuery) ([]map[string]interface{}, int64, error) {
	var total int64
	if err := r.db.Table(table).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Table(table).Select(columns)

	if q.SortBy != "" {
		order := fmt.Sprintf("%s ASC", q.SortBy)
		if q.SortOrder == "desc" {
			order = fmt.Sprintf("%s DESC", q.SortBy)
		}
		query = query.Order(order)
	}

	var rows []map[string]interface{}
	err := query.Offset(q.Offset).Limit(q.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListAll fetches every row of table for export, same column discipline.
func (r *BrowseRepository) ListAll(table string, columns []string, sortBy string) ([]map[string]interface{}, error) {
	query := r.db.Table(table).Select(columns)
	if sortBy != "" {
		query = query.Order(sortBy + " ASC")
	}

	var rows []map[string]interface{}
	err := query.Find(&rows).Error
	return rows, err
}
