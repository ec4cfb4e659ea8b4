package extraction

import (
	"encoding/csv"
	"strings"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/pkg/llm"
)

// Stats summarizes a parsed table. Rows counts data rows; the first parsed
// record is the header.
type Stats struct {
	Rows            int
	Columns         int
	CompletenessPct float64
}

// ParseCSV parses the model's raw text response as CSV after stripping any
// markdown code fence. Records may be ragged; column-shape problems are the
// validator's job, not the parser's.
func ParseCSV(raw string) ([][]string, error) {
	cleaned := llm.StripCodeFences(raw)

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Err: errEmptyTable}
	}
	return rows, nil
}

// Validate applies the post-parse invariants in order: column count against
// the analysis estimate, no fully-empty column, completeness floor. Returns
// the table stats when all checks pass.
func Validate(rows [][]string, expectedCols, tolerance int, completenessFloor float64) (Stats, error) {
	var stats Stats
	if len(rows) == 0 {
		return stats, &ParseError{Err: errEmptyTable}
	}

	header := rows[0]
	cols := len(header)
	stats.Columns = cols
	stats.Rows = len(rows) - 1

	if expectedCols > 0 {
		diff := cols - expectedCols
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			return stats, &ColumnCountError{Expected: expectedCols, Found: cols, Tolerance: tolerance}
		}
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return stats, &CompletenessError{Pct: 0, Floor: completenessFloor}
	}

	filled := make([]int, cols)
	totalCells := 0
	filledCells := 0
	for _, row := range dataRows {
		for i := 0; i < cols; i++ {
			totalCells++
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				filled[i]++
				filledCells++
			}
		}
	}

	for i, n := range filled {
		if n == 0 {
			name := ""
			if i < len(header) {
				name = header[i]
			}
			return stats, &EmptyColumnError{Column: name, Index: i}
		}
	}

	stats.CompletenessPct = float64(filledCells) / float64(totalCells)
	if stats.CompletenessPct < completenessFloor {
		return stats, &CompletenessError{Pct: stats.CompletenessPct, Floor: completenessFloor}
	}

	return stats, nil
}

// EncodeCSV renders parsed rows back to canonical CSV for the blob store.
func EncodeCSV(rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
