package fm

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/logandonley/fontmatch/internal/platform"
)

// IsArchive reports whether path names a font archive rather than a font.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// extractFonts unpacks the font files of a zip archive into destDir and
// returns their paths in archive order. Directory structure inside the
// archive is flattened.
func extractFonts(archive, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("reading zip data: %w", err)
	}
	defer zr.Close()

	var paths []string
	seen := make(map[string]bool)
	for _, file := range zr.File {
		// Skip directories and hidden files
		base := filepath.Base(file.Name)
		if file.FileInfo().IsDir() || strings.HasPrefix(base, ".") || !platform.IsFontFile(base) {
			continue
		}

		key := strings.ToLower(base)
		if seen[key] {
			return nil, fmt.Errorf("duplicate font file %s in archive", base)
		}
		seen[key] = true

		dest := filepath.Join(destDir, base)
		if err := extractFile(file, dest); err != nil {
			return nil, fmt.Errorf("extracting font file %s: %w", file.Name, err)
		}
		paths = append(paths, dest)
	}

	if len(paths) == 0 {
		return nil, errors.New("no valid font files found in archive")
	}
	return paths, nil
}

func extractFile(file *zip.File, dest string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening file in archive: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("copying file contents: %w", err)
	}
	return out.Close()
}
