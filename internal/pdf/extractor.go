package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoTextLayer means the PDF parsed but yielded no extractable text,
// typically a scanned image-only document. Fatal for the session; there is
// no OCR fallback.
var ErrNoTextLayer = errors.New("pdf has no extractable text layer")

// PageMarker formats the page-boundary marker inserted between pages so
// downstream consumers can locate a table's page by string search.
func PageMarker(page int) string {
	return fmt.Sprintf("--- Page %d ---", page)
}

// ExtractText returns the PDF's text content with one page-boundary marker
// per page, and the page count. Processes the document synchronously to
// completion; typical papers are tens of pages.
func ExtractText(r io.ReaderAt, size int64) (string, int, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse pdf: %w", err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder
	gotText := false

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is tolerated; the page marker still
			// anchors table positions on later pages.
			text = ""
		}

		sb.WriteString(PageMarker(i))
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n")

		if strings.TrimSpace(text) != "" {
			gotText = true
		}
	}

	if !gotText {
		return "", pageCount, ErrNoTextLayer
	}
	return sb.String(), pageCount, nil
}

// ExtractTextFile opens path and runs ExtractText.
func ExtractTextFile(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat pdf: %w", err)
	}

	return ExtractText(f, info.Size())
}

// PageWindow returns the text of the given page plus one page either side,
// located via the page-boundary markers. Falls back to the full text when
// the marker is missing.
func PageWindow(fullText string, page int) string {
	start := strings.Index(fullText, PageMarker(page-1))
	if start < 0 {
		start = strings.Index(fullText, PageMarker(page))
	}
	if start < 0 {
		return fullText
	}

	end := strings.Index(fullText, PageMarker(page+2))
	if end < 0 {
		end = len(fullText)
	}
	return fullText[start:end]
}
