package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ListReports returns the PDF files directly inside dir, newest first.
// A missing directory yields an empty list.
func ListReports(fs afero.Fs, dir string) ([]FileInfo, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	entries, err := afero.ReadDir(fs, dir)
	if os.IsNotExist(err) {
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	modTimes := make(map[string]int64, len(entries))
	for _, info := range entries {
		if info.IsDir() || !isPDFFile(info.Name()) || info.Size() == 0 {
			continue
		}
		path := filepath.Join(dir, info.Name())
		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		modTimes[path] = info.ModTime().UnixNano()
	}

	sort.SliceStable(files, func(i, j int) bool {
		ti, tj := modTimes[files[i].Path], modTimes[files[j].Path]
		if ti != tj {
			return ti > tj
		}
		return files[i].Name > files[j].Name
	})
	return files, nil
}

func isPDFFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
