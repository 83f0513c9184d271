package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// FoldName case-folds a family or face name for comparison.
func FoldName(name string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Fold().String(name)
}

// NormalizePath returns the absolute, cleaned form of path. On file systems
// that ignore case the result is also case-folded, so that two spellings of
// the same file produce the same key.
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty font path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path of %s: %w", path, err)
	}
	if CaseInsensitivePaths() {
		abs = FoldName(abs)
	}
	return abs, nil
}

// IsFontFile reports whether name has a TrueType or OpenType extension.
func IsFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".ttf" || ext == ".otf"
}
