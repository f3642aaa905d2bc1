package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/ledongthuc/pdf"
)

// ParsePDF extracts the plain text of every page. Pages that fail to
// decode are skipped; a document yielding no text at all is a validation
// error.
func ParsePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("%w: PDF contains no extractable text", common.ErrValidation)
	}
	return strings.Join(pages, "\n\n"), nil
}
