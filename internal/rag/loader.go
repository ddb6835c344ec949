package rag

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageText is the extracted plain text of one PDF page.
type PageText struct {
	Page int
	Text string
}

// LoadPDF extracts per-page text from the PDF at path. Pages that fail to
// decode are skipped; the document only fails when no page yields text.
func LoadPDF(path string) ([]PageText, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]PageText, 0, total)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		pages = append(pages, PageText{Page: i, Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf %s: no extractable text", path)
	}
	return pages, nil
}
