package extraction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KeithDimech1/Thermo-App-sub001/internal/model/dto"
)

func TestBuildExtractionPrompt(t *testing.T) {
	table := dto.TableInfo{
		TableNumber:      "2",
		Caption:          "Apatite fission-track results",
		PageNumber:       5,
		EstimatedRows:    12,
		EstimatedColumns: 7,
	}

	prompt := BuildExtractionPrompt("--- Page 5 ---\ntable text", table, nil, nil)

	assert.Contains(t, prompt, "Extract table 2 as CSV")
	assert.Contains(t, prompt, "Apatite fission-track results")
	assert.Contains(t, prompt, "7 columns")
	assert.Contains(t, prompt, "12 data rows")
	assert.Contains(t, prompt, "table text")
	assert.NotContains(t, prompt, "Additional guidance")
	assert.NotContains(t, prompt, "previous attempt")
}

func TestBuildExtractionPrompt_WithHintsAndLastError(t *testing.T) {
	table := dto.TableInfo{TableNumber: "1"}
	hints := []string{AdjustmentFor(KindColumnCount)}
	lastErr := errors.New("column count mismatch: expected 7, found 5 (tolerance 1)")

	prompt := BuildExtractionPrompt("text", table, hints, lastErr)

	assert.Contains(t, prompt, "Additional guidance:")
	assert.Contains(t, prompt, AdjustmentFor(KindColumnCount))
	assert.Contains(t, prompt, "The previous attempt failed validation")
	assert.Contains(t, prompt, "expected 7, found 5")
}

func TestAdjustmentFor(t *testing.T) {
	// Every validation kind steers the next prompt; transport failures do not.
	assert.NotEmpty(t, AdjustmentFor(KindColumnCount))
	assert.NotEmpty(t, AdjustmentFor(KindEmptyColumn))
	assert.NotEmpty(t, AdjustmentFor(KindCompleteness))
	assert.NotEmpty(t, AdjustmentFor(KindParse))
	assert.NotEmpty(t, AdjustmentFor(KindUnknown))
	assert.Empty(t, AdjustmentFor(KindLLM))
}
