package platform

import (
	"runtime"

	"github.com/go-logr/logr"
)

// FontPaths represents system and user font directories
type FontPaths struct {
	SystemDir string // System-wide font directory
	UserDir   string // User-specific font directory
}

// LogFont is the logical font record exchanged with the platform's font
// services. PitchAndFamily keeps the packed layout: pitch in the low
// nibble, family class in the high nibble.
type LogFont struct {
	Weight         int32
	Italic         bool
	Underline      bool
	StrikeOut      bool
	CharSet        uint8
	OutPrecision   uint8
	ClipPrecision  uint8
	Quality        uint8
	PitchAndFamily uint8
	FaceName       string

	// File is the file the caller selected the face from, if known.
	// Resolvers that track files return it when it declares the face;
	// the native services ignore it.
	File string
}

// EnumeratedFont is one logical font reported by the enumeration service.
type EnumeratedFont struct {
	LogFont
	FullName string
	Style    string
	Script   string
	Path     string // backing file, empty when the platform does not expose it
}

// Registrar adds and removes font files as platform font resources.
// Both calls return the number of fonts added or removed; zero means failure.
type Registrar interface {
	AddFontResource(path string) int
	RemoveFontResource(path string) int
}

// Enumerator lists the currently registered logical fonts of a family.
type Enumerator interface {
	EnumFonts(family string, weight int32, italic bool, charset uint8) ([]EnumeratedFont, error)
}

// FaceResolver maps a logical font to the file the platform would load for it.
type FaceResolver interface {
	ResolveFace(lf LogFont) (string, error)
}

// Broadcaster tells other consumers that the font set changed.
type Broadcaster interface {
	NotifyFontChange() error
}

// Manager handles platform-specific operations
type Manager interface {
	Registrar
	Enumerator
	FaceResolver
	Broadcaster

	// GetFontPaths returns the system and user font directories
	GetFontPaths() (FontPaths, error)
}

// New returns a platform-specific manager
func New(log logr.Logger) Manager {
	return newManager(runtime.GOOS, log)
}

// CaseInsensitivePaths reports whether the host file system compares paths
// without regard to case.
func CaseInsensitivePaths() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
