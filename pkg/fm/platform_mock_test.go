package fm_test

import (
	"fmt"
	"path/filepath"

	"github.com/logandonley/fontmatch/internal/platform"
	"github.com/logandonley/fontmatch/pkg/fm"
	. "github.com/onsi/ginkgo/v2"
)

// Mock platform implementation for testing. Registration and enumeration
// go through a real Catalog whose faces come from an in-memory table.
type mockPlatform struct {
	*platform.Catalog
	fontDir string

	failAdd    bool
	failRemove bool
	enumCalls  int
	notified   int
	notifyErr  error

	// extra is appended to every enumeration result.
	extra []platform.EnumeratedFont
}

func newMockPlatform(fontDir string, faces map[string][]platform.Face) *mockPlatform {
	read := func(path string) ([]platform.Face, error) {
		f, ok := faces[filepath.Base(path)]
		if !ok {
			return nil, fmt.Errorf("not a font file: %s", path)
		}
		return f, nil
	}
	return &mockPlatform{
		Catalog: platform.NewCatalog(read, GinkgoLogr),
		fontDir: fontDir,
	}
}

func (m *mockPlatform) GetFontPaths() (platform.FontPaths, error) {
	return platform.FontPaths{
		SystemDir: filepath.Join(m.fontDir, "system"),
		UserDir:   filepath.Join(m.fontDir, "user"),
	}, nil
}

func (m *mockPlatform) AddFontResource(path string) int {
	if m.failAdd {
		return 0
	}
	return m.Catalog.AddFontResource(path)
}

func (m *mockPlatform) RemoveFontResource(path string) int {
	if m.failRemove {
		return 0
	}
	return m.Catalog.RemoveFontResource(path)
}

func (m *mockPlatform) EnumFonts(family string, weight int32, italic bool, charset uint8) ([]platform.EnumeratedFont, error) {
	m.enumCalls++
	fonts, err := m.Catalog.EnumFonts(family, weight, italic, charset)
	return append(fonts, m.extra...), err
}

func (m *mockPlatform) NotifyFontChange() error {
	m.notified++
	return m.notifyErr
}

// face builds a single-face table entry.
func face(family string, weight int32, italic bool, pitch fm.Pitch, class fm.FamilyClass) []platform.Face {
	return []platform.Face{{
		Family:         family,
		FullName:       family,
		Style:          "Regular",
		Weight:         weight,
		Italic:         italic,
		PitchAndFamily: uint8(fm.Pack(pitch, class)),
		CharSet:        uint8(fm.ANSICharSet),
	}}
}
