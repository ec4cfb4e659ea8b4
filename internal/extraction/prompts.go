package extraction

import (
	"fmt"
	"strings"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
)

// AnalysisSystemPrompt instructs the model to inventory a paper's tables.
const AnalysisSystemPrompt = `You are a scientific data curator. You will be given the full text of a research paper with page boundaries marked as "--- Page N ---".

Respond with JSON only, no prose, in this exact shape:
{
  "paper_metadata": {"title": "", "authors": [""], "doi": "", "year": 0},
  "tables": [{"table_number": "", "caption": "", "page_number": 0, "estimated_rows": 0, "estimated_columns": 0, "data_type": ""}],
  "figures": [{"figure_number": "", "caption": "", "page_number": 0}],
  "data_types": [""]
}

List every data table, including supplementary tables (use their printed labels, e.g. "S1"). Count columns from the table header, not the caption. data_type is one of: fission_track, u_th_he, qc_metrics, other.`

// ExtractionSystemPrompt instructs the model to emit one table as CSV.
const ExtractionSystemPrompt = `You are a scientific data curator extracting one table from a research paper.

Respond with raw CSV only: a header row followed by data rows. No prose, no markdown fence, no commentary. Preserve the table's own column names. Use empty cells for values the table does not report; never invent values.`

// BuildAnalysisPrompt wraps the paper text for the analysis call.
func BuildAnalysisPrompt(paperText string) string {
	return fmt.Sprintf("Identify the metadata, tables and figures of this paper:\n\n%s", paperText)
}

// BuildExtractionPrompt composes the extraction user prompt for one table,
// appending retry hints and a restatement of the previous failure when the
// controller is on a later attempt.
func BuildExtractionPrompt(pageWindow string, table dto.TableInfo, hints []string, lastErr error) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Extract table %s as CSV.\n", table.TableNumber)
	if table.Caption != "" {
		fmt.Fprintf(&sb, "Caption: %s\n", table.Caption)
	}
	if table.PageNumber > 0 {
		fmt.Fprintf(&sb, "It appears on page %d.\n", table.PageNumber)
	}
	if table.EstimatedColumns > 0 {
		fmt.Fprintf(&sb, "The table has %d columns", table.EstimatedColumns)
		if table.EstimatedRows > 0 {
			fmt.Fprintf(&sb, " and roughly %d data rows", table.EstimatedRows)
		}
		sb.WriteString(".\n")
	}

	if len(hints) > 0 {
		sb.WriteString("\nAdditional guidance:\n")
		for _, h := range hints {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}
	if lastErr != nil {
		fmt.Fprintf(&sb, "\nThe previous attempt failed validation: %s. Correct this.\n", lastErr.Error())
	}

	sb.WriteString("\nPaper text around the table:\n\n")
	sb.WriteString(pageWindow)
	return sb.String()
}

// AdjustmentFor returns the prompt guidance for a classified failure.
func AdjustmentFor(kind FailureKind) string {
	switch kind {
	case KindColumnCount:
		return "Pay close attention to column boundaries. Merged header cells span multiple columns; output one CSV column per data column, exactly matching the header row."
	case KindEmptyColumn:
		return "One of your columns came back entirely empty, which usually means values shifted into a neighbouring column. Re-align every value with its header."
	case KindCompleteness:
		return "Most cells came back empty. Make sure you extracted the correct table in full, including any continuation on the following page."
	case KindParse:
		return "Your previous response was not valid CSV. Quote any cell containing a comma, and emit the same number of fields on every row."
	case KindLLM:
		return ""
	default:
		return "Re-read the table carefully and extract it exactly as printed."
	}
}
