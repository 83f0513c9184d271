package platform

import (
	"fmt"
	"os"
	"strings"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/os2"
)

// Packed pitch and family values, as stored in LogFont.PitchAndFamily.
const (
	pitchFixed    = 1
	pitchVariable = 2

	familyRoman  = 1 << 4
	familySwiss  = 2 << 4
	familyModern = 3 << 4
	familyScript = 4 << 4
)

// ReadFaces reads the naming and style information of an OpenType or
// TrueType file. Collections are not supported.
func ReadFaces(path string) ([]Face, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening font file: %w", err)
	}
	defer fd.Close()

	info, err := sfnt.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}
	if info.FamilyName == "" {
		return nil, fmt.Errorf("font %s has no family name", path)
	}

	weight := info.Weight
	if weight == 0 {
		weight = os2.WeightNormal
	}
	face := Face{
		Family:         info.FamilyName,
		Weight:         int32(weight),
		Italic:         info.IsItalic,
		PitchAndFamily: pitchAndFamilyOf(info.IsFixedPitch(), info.IsSerif, info.IsScript),
		CharSet:        charSetANSI,
	}
	face.Style = styleName(face.Weight, face.Italic)
	face.FullName = info.FamilyName + " " + face.Style
	return []Face{face}, nil
}

// pitchAndFamilyOf derives the packed byte the way the platform classifies
// outline fonts: fixed-pitch fonts are Modern, otherwise script, serif and
// sans-serif designs map to Script, Roman and Swiss.
func pitchAndFamilyOf(fixed, serif, script bool) uint8 {
	if fixed {
		return pitchFixed | familyModern
	}
	switch {
	case script:
		return pitchVariable | familyScript
	case serif:
		return pitchVariable | familyRoman
	}
	return pitchVariable | familySwiss
}

func styleName(weight int32, italic bool) string {
	var words []string
	if weight >= 600 {
		words = append(words, "Bold")
	}
	if italic {
		words = append(words, "Italic")
	}
	if len(words) == 0 {
		return "Regular"
	}
	return strings.Join(words, " ")
}
