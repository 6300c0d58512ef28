package save

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/a3tai/harvest-report/internal/store"
)

// Locations reported when the primary strategy failed
const (
	LocationSharedFolder    = "Guardado vía selector (fallback carpeta)"
	LocationSharedDocuments = "Guardado vía compartir (fallback documentos)"
	LocationCache           = "Caché de la aplicación"
)

// Fallback writes a report into the cache directory and offers it to the
// share handler.
type Fallback struct {
	fs       afero.Fs
	cacheDir string
	sharer   Sharer
}

// NewFallback creates the shared fallback. sharer may be nil.
func NewFallback(fs afero.Fs, cacheDir string, sharer Sharer) (*Fallback, error) {
	if cacheDir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	return &Fallback{fs: fs, cacheDir: cacheDir, sharer: sharer}, nil
}

// Save runs the fallback after the primary strategy of platform failed
// with cause. When the fallback fails too, the returned *SaveError
// carries both errors.
func (f *Fallback) Save(ctx context.Context, platform Platform, data []byte, fileName string, cause error) (*Result, error) {
	log.Printf("Saving %s (%s) failed, using fallback: %v", fileName, platform, cause)

	fail := func(err error) (*Result, error) {
		return nil, &SaveError{Platform: platform, FileName: fileName, Err: multierr.Combine(cause, err)}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if err := ensureDir(f.fs, f.cacheDir); err != nil {
		return fail(err)
	}

	path := filepath.Join(f.cacheDir, fileName)
	if err := store.WriteFileAtomic(f.fs, path, data, filePerm); err != nil {
		return fail(fmt.Errorf("cannot write %s: %w", path, err))
	}

	if f.sharer == nil {
		return &Result{FileName: fileName, Location: LocationCache, FullPath: path, Fallback: true}, nil
	}

	if err := f.sharer.Share(ctx, path); err != nil {
		if rmErr := f.fs.Remove(path); rmErr != nil {
			log.Printf("Failed to remove cached report %s: %v", path, rmErr)
		}
		return fail(err)
	}

	location := LocationSharedDocuments
	if platform == PlatformFolder {
		location = LocationSharedFolder
	}
	return &Result{FileName: fileName, Location: location, FullPath: path, Fallback: true}, nil
}
