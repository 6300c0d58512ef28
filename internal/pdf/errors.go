package pdf

import (
	"errors"
	"fmt"
)

// ErrPageCountMismatch is returned when a rendered document does not have
// the expected number of pages
var ErrPageCountMismatch = errors.New("unexpected page count")

// RenderError is a structural failure while producing a report. Failures
// of decorative assets are never reported this way.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
