package extraction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
)

var errEmptyTable = errors.New("no rows parsed")

// ParseError means the model's response was not well-formed CSV (malformed
// quoting, inconsistent escaping).
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csv parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ColumnCountError means the parsed column count disagrees with the
// analysis step's estimate beyond the allowed tolerance.
type ColumnCountError struct {
	Expected  int
	Found     int
	Tolerance int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("column count mismatch: expected %d, found %d (tolerance %d)",
		e.Expected, e.Found, e.Tolerance)
}

// EmptyColumnError means a column is 100% empty across all rows. A fully
// empty column signals misalignment, not valid sparse data.
type EmptyColumnError struct {
	Column string
	Index  int
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q (index %d) is completely empty", e.Column, e.Index)
}

// CompletenessError means the overall filled-cell ratio is below the floor,
// suggesting the wrong table was extracted or a multi-page table was
// truncated.
type CompletenessError struct {
	Pct   float64
	Floor float64
}

func (e *CompletenessError) Error() string {
	return fmt.Sprintf("completeness %.1f%% below minimum %.1f%%", e.Pct*100, e.Floor*100)
}

// FailureKind classifies a failed extraction attempt to steer the next
// prompt. The classification is intentionally shallow.
type FailureKind string

const (
	KindColumnCount  FailureKind = "column_count"
	KindEmptyColumn  FailureKind = "empty_column"
	KindCompleteness FailureKind = "completeness"
	KindParse        FailureKind = "csv_parse"
	KindLLM          FailureKind = "llm"
	KindUnknown      FailureKind = "unknown"
)

// ClassifyFailure maps an attempt error to a FailureKind. Typed errors are
// matched first; the string fallback covers wrapped or foreign errors.
func ClassifyFailure(err error) FailureKind {
	if err == nil {
		return KindUnknown
	}

	var (
		colErr   *ColumnCountError
		emptyErr *EmptyColumnError
		compErr  *CompletenessError
		parseErr *ParseError
		llmErr   *llm.RequestError
	)
	switch {
	case errors.As(err, &colErr):
		return KindColumnCount
	case errors.As(err, &emptyErr):
		return KindEmptyColumn
	case errors.As(err, &compErr):
		return KindCompleteness
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &llmErr):
		return KindLLM
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "column count"):
		return KindColumnCount
	case strings.Contains(msg, "empty"):
		return KindEmptyColumn
	case strings.Contains(msg, "completeness"):
		return KindCompleteness
	case strings.Contains(msg, "parse"):
		return KindParse
	}
	return KindUnknown
}
