package pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Verify parses data as a PDF and checks that it has wantPages pages.
// A wantPages of zero or less skips the page count check. The number of
// pages found is returned.
func Verify(data []byte, wantPages int) (n int, err error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("document is empty")
	}

	// pdfcpu panics on some truncated documents
	defer func() {
		if r := recover(); r != nil {
			n = 0
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}

	if wantPages > 0 && ctx.PageCount != wantPages {
		return ctx.PageCount, fmt.Errorf("%w: got %d, want %d", ErrPageCountMismatch, ctx.PageCount, wantPages)
	}
	return ctx.PageCount, nil
}
