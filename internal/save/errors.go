package save

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when the user declines to pick a folder
var ErrPermissionDenied = errors.New("permisos denegados para elegir carpeta pública")

// SaveError is returned when both the primary strategy and the fallback
// failed. Err combines both causes.
type SaveError struct {
	Platform Platform
	FileName string
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("no se pudo guardar el PDF (%s) %s: %v", e.Platform, e.FileName, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
