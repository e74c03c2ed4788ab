package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Default asset directories, relative to the process working directory.
const (
	ModelDir = "assets/models"
	ImageDir = "assets/img"
)

// Extensions considered model or image files.
var (
	ModelExts = []string{".obj", ".txt"}
	ImageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}
)

// ErrNotFound is returned by Find when nothing matches.
var ErrNotFound = errors.New("assets: not found")

// ScanDir returns relative paths of all files under dir with one of exts (e.g. "houses/tathouse1.txt"),
// sorted and using forward slashes. A missing dir yields no paths.
func ScanDir(dir string, exts []string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !hasExt(path, exts) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	slices.Sort(out)
	return out, err
}

func hasExt(path string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}

// normalizeForMatch lowercases and removes spaces, dashes and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Find resolves search to a file path. An existing file path is returned as is; otherwise files
// under dir are matched by fuzzy name ("tat house 1" finds "tathouse1.txt"). A file whose
// name without extension equals the search wins over a partial match.
func Find(dir, search string, exts []string) (string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", ErrNotFound
	}
	if info, err := os.Stat(search); err == nil && !info.IsDir() {
		return search, nil
	}
	list, err := ScanDir(dir, exts)
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	norm := normalizeForMatch(strings.TrimSuffix(search, filepath.Ext(search)))
	var partial string
	for _, rel := range list {
		base := normalizeForMatch(strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)))
		if base == norm {
			return filepath.Join(dir, rel), nil
		}
		if partial == "" && strings.Contains(normalizeForMatch(rel), norm) {
			partial = filepath.Join(dir, rel)
		}
	}
	if partial == "" {
		return "", fmt.Errorf("%w: %q in %s", ErrNotFound, search, dir)
	}
	return partial, nil
}
