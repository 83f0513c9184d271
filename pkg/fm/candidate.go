package fm

import (
	"fmt"

	"github.com/logandonley/fontmatch/internal/platform"
)

// Candidate is an installed logical font as reported by the platform, with
// its attributes as actually registered.
type Candidate struct {
	FaceName      string
	FullName      string
	Style         string
	Script        string
	Weight        int
	Italic        bool
	Underline     bool
	StrikeOut     bool
	CharSet       CharSet
	OutPrecision  OutPrecision
	ClipPrecision ClipPrecision
	Quality       Quality
	Pitch         Pitch
	FamilyClass   FamilyClass

	// Order is the installation order index assigned by the ResourceManager,
	// or 0 when the backing file was not registered through it.
	Order uint64
	// Path is the backing file if the platform reports it.
	Path string
	// Sequence is the position in the enumeration result.
	Sequence int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (weight=%d italic=%t %s charset=%s)",
		c.FullNameOrFace(), c.Weight, c.Italic, Pack(c.Pitch, c.FamilyClass), c.CharSet)
}

// FullNameOrFace returns the full name, falling back to the face name.
func (c Candidate) FullNameOrFace() string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.FaceName
}

func candidateFromPlatform(ef platform.EnumeratedFont, seq int) Candidate {
	pf := PitchAndFamily(ef.PitchAndFamily)
	return Candidate{
		FaceName:      ef.FaceName,
		FullName:      ef.FullName,
		Style:         ef.Style,
		Script:        ef.Script,
		Weight:        int(ef.Weight),
		Italic:        ef.Italic,
		Underline:     ef.Underline,
		StrikeOut:     ef.StrikeOut,
		CharSet:       CharSet(ef.CharSet),
		OutPrecision:  OutPrecision(ef.OutPrecision),
		ClipPrecision: ClipPrecision(ef.ClipPrecision),
		Quality:       Quality(ef.Quality),
		Pitch:         pf.Pitch(),
		FamilyClass:   pf.Family(),
		Path:          ef.Path,
		Sequence:      seq,
	}
}

// logFont packs the candidate's own attributes for the platform.
func (c Candidate) logFont() platform.LogFont {
	return platform.LogFont{
		Weight:         int32(c.Weight),
		Italic:         c.Italic,
		Underline:      c.Underline,
		StrikeOut:      c.StrikeOut,
		CharSet:        uint8(c.CharSet),
		OutPrecision:   uint8(c.OutPrecision),
		ClipPrecision:  uint8(c.ClipPrecision),
		Quality:        uint8(c.Quality),
		PitchAndFamily: uint8(Pack(c.Pitch, c.FamilyClass)),
		FaceName:       c.FaceName,
		File:           c.Path,
	}
}
