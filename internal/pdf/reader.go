package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pageBreak = "\n\n--- Page Break ---\n\n"

// ExtractPages returns the plain text of every page of data. Pages whose
// text cannot be read come back empty.
func ExtractPages(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := make([]string, r.NumPage())
	for i := range pages {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			continue
		}
		pages[i] = text
	}
	return pages, nil
}

// Inspect checks data with Verify and extracts its text
func Inspect(data []byte) (*Inspection, error) {
	n, err := Verify(data, 0)
	if err != nil {
		return nil, err
	}
	pages, err := ExtractPages(data)
	if err != nil {
		return nil, err
	}
	if len(pages) != n {
		return nil, fmt.Errorf("%w: parsers disagree, %d and %d pages", ErrPageCountMismatch, n, len(pages))
	}
	return &Inspection{Pages: n, Size: int64(len(data)), PageTexts: pages}, nil
}

// pageText recovers from the panics the text extractor raises on
// malformed content streams.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text extraction failed: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

func joinPages(pages []string) string {
	return strings.Join(pages, pageBreak)
}
