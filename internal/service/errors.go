package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionNotFound = errors.New("extraction session not found")
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFormat   = errors.New("only PDF files are supported")
	ErrNoTables        = errors.New("session has no extracted tables to import")
	ErrUnknownTable    = errors.New("table is not in the browse allow-list")
	ErrBadSortColumn   = errors.New("sort column not allowed for this table")
	ErrBadPagination   = errors.New("limit must be between 1 and 100 and offset must not be negative")
	ErrBadFormat       = errors.New("export format must be csv or xlsx")
)

// InvalidStateError means analyze/extract was invoked on a session in the
// wrong state. No state mutation happens when this is returned.
type InvalidStateError struct {
	Actual   string
	Expected []string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid session state %q, expected one of: %s",
		e.Actual, strings.Join(e.Expected, ", "))
}
