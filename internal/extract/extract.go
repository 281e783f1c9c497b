// Package extract pulls raw text out of the source document. PDF
// documents are read page by page; anything else is treated as plain
// text.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/domain"
)

// FromFile extracts the document text at path. Extraction that yields
// no text at all is a hard error: downstream stages assume non-trivial
// content exists.
func FromFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fromPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", domain.ErrExtraction, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: %s is empty", domain.ErrExtraction, path)
	}
	return string(data), nil
}

// fromPDF concatenates per-page text in page order, joined by a
// newline. Pages that cannot be decoded are skipped; the document as a
// whole fails only when every page comes back empty.
func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrExtraction, path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("%w: %s has no extractable text", domain.ErrExtraction, path)
	}
	return strings.Join(pages, "\n"), nil
}
