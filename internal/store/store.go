// Package store provides the small key-value store the application keeps its
// draft form, cached folder handle and last report path in.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Well-known keys
const (
	KeyDraft         = "@harvest:formData"
	KeyFolderHandle  = "@harvest_pdf_dir_uri"
	KeyLastReportURI = "@lastPdfUri"
)

const (
	defaultFileName = "state.json"
	filePerm        = 0o600
	dirPerm         = 0o750
)

var (
	// ErrEmptyKey is returned when an operation is attempted with an empty key
	ErrEmptyKey = errors.New("store: key cannot be empty")
	// ErrCorrupted is returned by Get when the backing file cannot be decoded.
	// The next Set or Delete replaces it.
	ErrCorrupted = errors.New("store: corrupted state file")
)

// KV is a string key-value store
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps all entries in a single JSON object file. Every mutation
// rewrites the file through a temporary file and a rename.
type FileStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store persisted at dir/state.json on fs
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory cannot be empty")
	}
	if exists, _ := afero.DirExists(fs, dir); !exists {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("cannot create store directory %s: %w", dir, err)
		}
	}
	return &FileStore{fs: fs, path: filepath.Join(dir, defaultFileName)}, nil
}

// Path returns the location of the backing file
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key; ok is false when the key is absent.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set stores value under key
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _, err := s.readForUpdate()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.write(entries)
}

// Delete removes key; deleting an absent key is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, discarded, err := s.readForUpdate()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok && !discarded {
		return nil
	}
	delete(entries, key)
	return s.write(entries)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupted, s.path, err)
	}
	return entries, nil
}

// readForUpdate is read for mutations: a corrupted file is logged and
// treated as empty so the write that follows replaces it. discarded
// reports that this happened.
func (s *FileStore) readForUpdate() (entries map[string]string, discarded bool, err error) {
	entries, err = s.read()
	if errors.Is(err, ErrCorrupted) {
		log.Printf("Discarding %v", err)
		return map[string]string{}, true, nil
	}
	return entries, false, err
}

func (s *FileStore) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := WriteFileAtomic(s.fs, s.path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	return nil
}
