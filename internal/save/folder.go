package save

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/store"
)

// LocationFolder is reported for reports saved into the chosen folder
const LocationFolder = "Carpeta pública"

// FolderSaver saves into a folder the user picks once. The grant is kept
// in the key-value store and reused by later saves.
type FolderSaver struct {
	fs       afero.Fs
	kv       store.KV
	picker   DirectoryPicker
	fallback *Fallback

	// mu serializes pick and write so that concurrent saves ask at most once
	mu sync.Mutex
}

// NewFolderSaver creates a folder saver
func NewFolderSaver(fs afero.Fs, kv store.KV, picker DirectoryPicker, fallback *Fallback) (*FolderSaver, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value store cannot be nil")
	}
	if picker == nil {
		return nil, fmt.Errorf("directory picker cannot be nil")
	}
	if fallback == nil {
		return nil, fmt.Errorf("fallback cannot be nil")
	}
	return &FolderSaver{fs: fs, kv: kv, picker: picker, fallback: fallback}, nil
}

// Save implements Saver
func (s *FolderSaver) Save(ctx context.Context, data []byte, fileName string) (*Result, error) {
	if err := checkFileName(fileName); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.saveToFolder(ctx, data, fileName)
	if err == nil {
		return res, nil
	}
	return s.fallback.Save(ctx, PlatformFolder, data, fileName, err)
}

func (s *FolderSaver) saveToFolder(ctx context.Context, data []byte, fileName string) (*Result, error) {
	dir, err := s.folder(ctx)
	if err != nil {
		return nil, err
	}

	name, err := uniqueName(s.fs, dir, fileName)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	if err := store.WriteFileAtomic(s.fs, path, data, filePerm); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", path, err)
	}
	return &Result{FileName: name, Location: LocationFolder, FullPath: FileURI(path)}, nil
}

// folder returns the cached folder, asking the picker when there is none
func (s *FolderSaver) folder(ctx context.Context) (string, error) {
	uri, ok, err := s.kv.Get(ctx, store.KeyFolderHandle)
	if err != nil {
		log.Printf("Cannot read saved folder, asking again: %v", err)
		ok = false
	}

	if !ok || uri == "" {
		grant, err := s.picker.PickDirectory(ctx)
		if err != nil {
			return "", fmt.Errorf("folder selection failed: %w", err)
		}
		if !grant.Granted || grant.URI == "" {
			return "", ErrPermissionDenied
		}
		uri = grant.URI
		if err := s.kv.Set(ctx, store.KeyFolderHandle, uri); err != nil {
			log.Printf("Cannot remember folder %s: %v", uri, err)
		}
	}

	dir, err := PathFromURI(uri)
	if err != nil {
		return "", err
	}
	if exists, err := afero.DirExists(s.fs, dir); err != nil || !exists {
		return "", fmt.Errorf("folder %s is not available", dir)
	}
	return dir, nil
}
