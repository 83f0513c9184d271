package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
)

type darwinManager struct {
	*Catalog
}

func newDarwinManager(log logr.Logger) Manager {
	return &darwinManager{
		Catalog: NewCatalog(ReadFaces, log),
	}
}

func (m *darwinManager) GetFontPaths() (FontPaths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting user home directory: %w", err)
	}

	paths := FontPaths{
		SystemDir: "/Library/Fonts",
		UserDir:   filepath.Join(homeDir, "Library/Fonts"),
	}

	return paths, nil
}

// NotifyFontChange touches the user font directory; the font server picks
// up changes from its modification time.
func (m *darwinManager) NotifyFontChange() error {
	paths, err := m.GetFontPaths()
	if err != nil {
		return err
	}

	now := time.Now()
	if err := os.Chtimes(paths.UserDir, now, now); err != nil {
		return fmt.Errorf("updating directory timestamp: %w", err)
	}

	return nil
}
