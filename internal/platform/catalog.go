package platform

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-logr/logr"
)

// ErrFaceNotFound is returned by ResolveFace when no registered file backs
// the requested logical font.
var ErrFaceNotFound = errors.New("no registered face matches")

// Values the enumeration service reports for outline fonts.
const (
	enumOutPrecision  = 3 // OUT_STROKE_PRECIS
	enumClipPrecision = 2 // CLIP_STROKE_PRECIS
	enumQuality       = 1 // DRAFT_QUALITY

	charSetANSI    = 0x00
	charSetDefault = 0x01
	charSetSymbol  = 0x02
)

// Face describes one logical font declared by a font file.
type Face struct {
	Family         string
	FullName       string
	Style          string
	Weight         int32
	Italic         bool
	PitchAndFamily uint8
	CharSet        uint8
}

// FaceReader extracts the faces declared by a font file.
type FaceReader func(path string) ([]Face, error)

type catalogEntry struct {
	path  string
	faces []Face
	count int
	seq   uint64
}

// Catalog is an in-process font registry standing in for the platform's
// font services. Like GDI it reference-counts registrations of the same
// file, enumerates faces by family name and resolves a logical font back
// to the file that declared it.
type Catalog struct {
	mu      sync.Mutex
	read    FaceReader
	log     logr.Logger
	entries map[string]*catalogEntry
	nextSeq uint64
}

// NewCatalog creates an empty catalog reading faces with read.
func NewCatalog(read FaceReader, log logr.Logger) *Catalog {
	if read == nil {
		read = ReadFaces
	}
	return &Catalog{
		read:    read,
		log:     log,
		entries: make(map[string]*catalogEntry),
	}
}

func (c *Catalog) AddFontResource(path string) int {
	key, err := NormalizePath(path)
	if err != nil {
		c.log.V(1).Info("rejecting font resource", "path", path, "error", err.Error())
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.count++
		return len(e.faces)
	}
	faces, err := c.read(path)
	if err != nil {
		c.log.V(1).Info("cannot read font file", "path", path, "error", err.Error())
		return 0
	}
	if len(faces) == 0 {
		return 0
	}
	c.nextSeq++
	c.entries[key] = &catalogEntry{
		path:  path,
		faces: faces,
		count: 1,
		seq:   c.nextSeq,
	}
	return len(faces)
}

func (c *Catalog) RemoveFontResource(path string) int {
	key, err := NormalizePath(path)
	if err != nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return 0
	}
	e.count--
	if e.count == 0 {
		delete(c.entries, key)
	}
	return len(e.faces)
}

// EnumFonts lists the faces of family in registration order. The weight and
// italic hints are accepted for interface compatibility; like the platform
// service, the catalog reports every face of the family regardless.
func (c *Catalog) EnumFonts(family string, weight int32, italic bool, charset uint8) ([]EnumeratedFont, error) {
	want := FoldName(family)
	var fonts []EnumeratedFont
	for _, e := range c.ordered() {
		for _, f := range e.faces {
			if FoldName(f.Family) != want {
				continue
			}
			if charset != charSetDefault && f.CharSet != charset {
				continue
			}
			fonts = append(fonts, EnumeratedFont{
				LogFont: LogFont{
					Weight:         f.Weight,
					Italic:         f.Italic,
					CharSet:        f.CharSet,
					OutPrecision:   enumOutPrecision,
					ClipPrecision:  enumClipPrecision,
					Quality:        enumQuality,
					PitchAndFamily: f.PitchAndFamily,
					FaceName:       f.Family,
				},
				FullName: f.FullName,
				Style:    f.Style,
				Script:   scriptName(f.CharSet),
				Path:     e.path,
			})
		}
	}
	return fonts, nil
}

// ResolveFace returns the file backing lf. When lf.File is registered and
// declares the face it wins; otherwise the most recently registered file
// declaring a face whose attributes equal lf is returned.
func (c *Catalog) ResolveFace(lf LogFont) (string, error) {
	if e := c.lookup(lf.File); e != nil && e.declares(lf) {
		return e.path, nil
	}
	entries := c.ordered()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].declares(lf) {
			return entries[i].path, nil
		}
	}
	return "", fmt.Errorf("%w: %q weight=%d italic=%t", ErrFaceNotFound, lf.FaceName, lf.Weight, lf.Italic)
}

func (e *catalogEntry) declares(lf LogFont) bool {
	want := FoldName(lf.FaceName)
	for _, f := range e.faces {
		if FoldName(f.Family) == want &&
			f.Weight == lf.Weight &&
			f.Italic == lf.Italic &&
			f.PitchAndFamily == lf.PitchAndFamily {
			return true
		}
	}
	return false
}

// lookup returns the entry registered for path, or nil.
func (c *Catalog) lookup(path string) *catalogEntry {
	if path == "" {
		return nil
	}
	key, err := NormalizePath(path)
	if err != nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// AddSystemDir registers every font file below dir and returns how many
// files were accepted.
func (c *Catalog) AddSystemDir(dir string) (int, error) {
	added := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsFontFile(d.Name()) {
			return nil
		}
		if c.AddFontResource(path) > 0 {
			added++
		}
		return nil
	})
	if err != nil {
		return added, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return added, nil
}

// Len returns the number of distinct registered files.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ordered returns a snapshot of the entries sorted by registration sequence.
func (c *Catalog) ordered() []*catalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]*catalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *catalogEntry) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return entries
}

func scriptName(charset uint8) string {
	switch charset {
	case charSetANSI:
		return "Western"
	case charSetSymbol:
		return "Symbol"
	}
	return ""
}
