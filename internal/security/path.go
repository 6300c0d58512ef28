// Package security restricts file access to the directories reports are
// written to.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator accepts paths that lie inside one of its root directories
type PathValidator struct {
	roots []string
}

// NewPathValidator creates a validator for the given roots. Empty roots
// are ignored; at least one must remain.
func NewPathValidator(roots ...string) (*PathValidator, error) {
	v := &PathValidator{}
	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
		v.roots = append(v.roots, filepath.Clean(abs))
	}
	if len(v.roots) == 0 {
		return nil, fmt.Errorf("at least one root directory is required")
	}
	return v, nil
}

// Roots returns the absolute root directories
func (v *PathValidator) Roots() []string {
	out := make([]string, len(v.roots))
	copy(out, v.roots)
	return out
}

// ValidatePath returns an error unless path is inside one of the roots
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a null byte")
	}

	ok, err := v.IsPathWithinRoots(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("path is outside the report directories: %s", path)
	}
	return nil
}

// IsPathWithinRoots reports whether path, and the target of path if it is
// a symlink, are inside the same root.
func (v *PathValidator) IsPathWithinRoots(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	for _, root := range v.roots {
		realRoot := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			realRoot = resolved
		}
		pathOk := within(cleanPath, root) || within(cleanPath, realRoot)
		realOk := within(realPath, root) || within(realPath, realRoot)
		if pathOk && realOk {
			return true, nil
		}
	}
	return false, nil
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
