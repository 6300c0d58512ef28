package save

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/store"
)

// LocationDocuments is reported for reports saved by DocumentsSaver
const LocationDocuments = "Documentos → Reports"

// DocumentsSaver writes into the Reports folder of the documents
// directory without asking the user.
type DocumentsSaver struct {
	fs       afero.Fs
	dir      string
	fallback *Fallback
}

// NewDocumentsSaver creates a saver rooted at documentsDir/Reports
func NewDocumentsSaver(fs afero.Fs, documentsDir string, fallback *Fallback) (*DocumentsSaver, error) {
	if documentsDir == "" {
		return nil, fmt.Errorf("documents directory cannot be empty")
	}
	if fallback == nil {
		return nil, fmt.Errorf("fallback cannot be nil")
	}
	return &DocumentsSaver{
		fs:       fs,
		dir:      filepath.Join(documentsDir, ReportsDirName),
		fallback: fallback,
	}, nil
}

// Dir returns the directory reports are written to
func (s *DocumentsSaver) Dir() string {
	return s.dir
}

// Save implements Saver. A file of the same name is overwritten.
func (s *DocumentsSaver) Save(ctx context.Context, data []byte, fileName string) (*Result, error) {
	if err := checkFileName(fileName); err != nil {
		return nil, err
	}

	res, err := s.saveToDocuments(ctx, data, fileName)
	if err == nil {
		return res, nil
	}
	return s.fallback.Save(ctx, PlatformDocuments, data, fileName, err)
}

func (s *DocumentsSaver) saveToDocuments(ctx context.Context, data []byte, fileName string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ensureDir(s.fs, s.dir); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, fileName)
	if err := store.WriteFileAtomic(s.fs, path, data, filePerm); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", path, err)
	}
	return &Result{FileName: fileName, Location: LocationDocuments, FullPath: path}, nil
}
