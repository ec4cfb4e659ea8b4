package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KeithDimech1/Thermo-App-sub001/config"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
	"github.com/KeithDimech1/Thermo-App-sub001/internal/repository"
)

// BrowseService serves the generic allow-listed table browser and its
// CSV/XLSX export. The allow-list is immutable configuration loaded at
// process start.
type BrowseService struct {
	browse  *repository.BrowseRepository
	allowed map[string][]string
}

func NewBrowseService(browse *repository.BrowseRepository, tables config.TablesConfig) *BrowseService {
	return &BrowseService{
		browse:  browse,
		allowed: tables.Allowed,
	}
}

// Browse fetches one page of an allow-listed table.
func (s *BrowseService) Browse(table string, q *dto.BrowseQuery) (*dto.BrowseResponse, error) {
	columns, ok := s.allowed[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	if q.Limit < 1 || q.Limit > MaxPageSize || q.Offset < 0 {
		return nil, ErrBadPagination
	}
	if q.SortBy != "" && !contains(columns, q.SortBy) {
		return nil, ErrBadSortColumn
	}

	rows, total, err := s.browse.List(table, columns, q)
	if err != nil {
		return nil, err
	}

	return &dto.BrowseResponse{
		Table:   table,
		Columns: columns,
		Data:    rows,
		Total:   total,
		// 1-based page containing the offset; unaligned offsets round down.
		Page:       q.Offset/q.Limit + 1,
		PageSize:   q.Limit,
		TotalPages: totalPages(total, q.Limit),
	}, nil
}

// Export renders an entire allow-listed table as CSV or XLSX bytes.
func (s *BrowseService) Export(table, format string) ([]byte, string, string, error) {
	columns, ok := s.allowed[table]
	if !ok {
		return nil, "", "", ErrUnknownTable
	}

	rows, err := s.browse.ListAll(table, columns, columns[0])
	if err != nil {
		return nil, "", "", err
	}

	switch format {
	case "", "csv":
		data, err := exportCSV(columns, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, "text/csv", table + ".csv", nil
	case "xlsx":
		data, err := exportXLSX(table, columns, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", table + ".xlsx", nil
	default:
		return nil, "", "", fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

func exportCSV(columns []string, rows []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = cellString(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(sheet string, columns []string, rows []map[string]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		record := make([]interface{}, len(columns))
		for j, col := range columns {
			record[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
