// Package save writes rendered reports to the place the platform allows,
// falling back to the cache directory and the system share handler.
package save

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/store"
)

// Platform selects the primary save strategy
type Platform string

const (
	// PlatformFolder saves into a user-chosen folder that is remembered
	PlatformFolder Platform = "folder"
	// PlatformDocuments saves into the app's documents directory
	PlatformDocuments Platform = "documents"
)

const (
	filePerm = 0o644
	dirPerm  = 0o750

	// ReportsDirName is the subdirectory of the documents directory
	ReportsDirName = "Reports"
)

// Result says where a report ended up
type Result struct {
	FileName string `json:"file_name"`
	Location string `json:"location"`
	FullPath string `json:"full_path"`
	Fallback bool   `json:"fallback"`
}

// Saver persists a rendered report under fileName
type Saver interface {
	Save(ctx context.Context, data []byte, fileName string) (*Result, error)
}

// Options configures New
type Options struct {
	Platform     Platform
	FS           afero.Fs
	KV           store.KV
	Picker       DirectoryPicker
	DocumentsDir string
	CacheDir     string
	// Sharer may be nil when the platform has no share handler
	Sharer Sharer
}

// New builds the saver for opts.Platform
func New(opts Options) (Saver, error) {
	if opts.FS == nil {
		return nil, fmt.Errorf("file system cannot be nil")
	}
	fallback, err := NewFallback(opts.FS, opts.CacheDir, opts.Sharer)
	if err != nil {
		return nil, err
	}

	switch opts.Platform {
	case PlatformFolder:
		return NewFolderSaver(opts.FS, opts.KV, opts.Picker, fallback)
	case PlatformDocuments:
		return NewDocumentsSaver(opts.FS, opts.DocumentsDir, fallback)
	default:
		return nil, fmt.Errorf("unknown platform: %q", opts.Platform)
	}
}

// FileURI returns the file:// URI for an absolute directory or file path
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// PathFromURI returns the local path of a file:// URI. Plain paths are
// returned unchanged.
func PathFromURI(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid folder URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported folder URI scheme %q", u.Scheme)
	}
	if u.Path == "" {
		return "", fmt.Errorf("folder URI %q has no path", uri)
	}
	return filepath.FromSlash(u.Path), nil
}

// uniqueName returns name, or name with a " (n)" suffix before the
// extension when a file of that name already exists in dir.
func uniqueName(fs afero.Fs, dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; ; n++ {
		exists, err := afero.Exists(fs, filepath.Join(dir, candidate))
		if err != nil {
			return "", fmt.Errorf("cannot check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}

func checkFileName(fileName string) error {
	if fileName == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if fileName != filepath.Base(fileName) || fileName == "." || fileName == ".." {
		return fmt.Errorf("file name must not contain a path: %q", fileName)
	}
	return nil
}

func ensureDir(fs afero.Fs, dir string) error {
	if exists, _ := afero.DirExists(fs, dir); exists {
		return nil
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}
