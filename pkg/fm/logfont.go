package fm

import (
	"fmt"
	"strings"
)

// Pitch tells whether glyphs have fixed or variable advance width.
type Pitch uint8

const (
	PitchDefault  Pitch = 0
	PitchFixed    Pitch = 1
	PitchVariable Pitch = 2
)

func (p Pitch) String() string {
	switch p {
	case PitchDefault:
		return "default"
	case PitchFixed:
		return "fixed"
	case PitchVariable:
		return "variable"
	}
	return fmt.Sprintf("Pitch(%d)", uint8(p))
}

func (p Pitch) valid() bool {
	return p <= PitchVariable
}

// ParsePitch converts a pitch name as printed by String back to a Pitch.
func ParsePitch(s string) (Pitch, error) {
	for p := PitchDefault; p <= PitchVariable; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown pitch %q", s)
}

// FamilyClass is the coarse style category of a font.
type FamilyClass uint8

const (
	FamilyDontCare   FamilyClass = 0
	FamilyRoman      FamilyClass = 1
	FamilySwiss      FamilyClass = 2
	FamilyModern     FamilyClass = 3
	FamilyScript     FamilyClass = 4
	FamilyDecorative FamilyClass = 5
)

var familyNames = [...]string{"dontcare", "roman", "swiss", "modern", "script", "decorative"}

func (f FamilyClass) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("FamilyClass(%d)", uint8(f))
}

func (f FamilyClass) valid() bool {
	return f <= FamilyDecorative
}

// ParseFamilyClass converts a family class name to a FamilyClass.
func ParseFamilyClass(s string) (FamilyClass, error) {
	for i, name := range familyNames {
		if strings.EqualFold(s, name) {
			return FamilyClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown family class %q", s)
}

// CharSet identifies the character set a logical font is requested in.
type CharSet uint8

const (
	ANSICharSet        CharSet = 0x00
	DefaultCharSet     CharSet = 0x01
	SymbolCharSet      CharSet = 0x02
	MacCharSet         CharSet = 0x4d
	ShiftJISCharSet    CharSet = 0x80
	HangulCharSet      CharSet = 0x81
	JohabCharSet       CharSet = 0x82
	GB2312CharSet      CharSet = 0x86
	ChineseBig5CharSet CharSet = 0x88
	GreekCharSet       CharSet = 0xa1
	TurkishCharSet     CharSet = 0xa2
	VietnameseCharSet  CharSet = 0xa3
	HebrewCharSet      CharSet = 0xb1
	ArabicCharSet      CharSet = 0xb2
	BalticCharSet      CharSet = 0xba
	RussianCharSet     CharSet = 0xcc
	ThaiCharSet        CharSet = 0xde
	EastEuropeCharSet  CharSet = 0xee
	OEMCharSet         CharSet = 0xff
)

var charSetNames = map[CharSet]string{
	ANSICharSet:        "ansi",
	DefaultCharSet:     "default",
	SymbolCharSet:      "symbol",
	MacCharSet:         "mac",
	ShiftJISCharSet:    "shiftjis",
	HangulCharSet:      "hangul",
	JohabCharSet:       "johab",
	GB2312CharSet:      "gb2312",
	ChineseBig5CharSet: "chinesebig5",
	GreekCharSet:       "greek",
	TurkishCharSet:     "turkish",
	VietnameseCharSet:  "vietnamese",
	HebrewCharSet:      "hebrew",
	ArabicCharSet:      "arabic",
	BalticCharSet:      "baltic",
	RussianCharSet:     "russian",
	ThaiCharSet:        "thai",
	EastEuropeCharSet:  "easteurope",
	OEMCharSet:         "oem",
}

func (c CharSet) String() string {
	if name, ok := charSetNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CharSet(0x%02x)", uint8(c))
}

func (c CharSet) valid() bool {
	_, ok := charSetNames[c]
	return ok
}

// ParseCharSet converts a character set name to a CharSet.
func ParseCharSet(s string) (CharSet, error) {
	for c, name := range charSetNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown character set %q", s)
}

// OutPrecision, ClipPrecision and Quality are carried through from
// enumeration to resolution unchanged.
type (
	OutPrecision  uint8
	ClipPrecision uint8
	Quality       uint8
)

const (
	OutDefaultPrecis       OutPrecision = 0
	OutStringPrecis        OutPrecision = 1
	OutStrokePrecis        OutPrecision = 3
	OutTTPrecis            OutPrecision = 4
	OutDevicePrecis        OutPrecision = 5
	OutRasterPrecis        OutPrecision = 6
	OutTTOnlyPrecis        OutPrecision = 7
	OutOutlinePrecis       OutPrecision = 8
	OutScreenOutlinePrecis OutPrecision = 9
	OutPSOnlyPrecis        OutPrecision = 10
)

const (
	ClipDefaultPrecis   ClipPrecision = 0
	ClipCharacterPrecis ClipPrecision = 1
	ClipStrokePrecis    ClipPrecision = 2
	ClipMask            ClipPrecision = 0x0f
	ClipLHAngles        ClipPrecision = 1 << 4
	ClipTTAlways        ClipPrecision = 2 << 4
	ClipDFADisable      ClipPrecision = 4 << 4
	ClipEmbedded        ClipPrecision = 8 << 4
)

const (
	DefaultQuality        Quality = 0
	DraftQuality          Quality = 1
	ProofQuality          Quality = 2
	NonAntialiasedQuality Quality = 3
	AntialiasedQuality    Quality = 4
	ClearTypeQuality      Quality = 5
)

// PitchAndFamily is the packed byte used at the platform boundary: bits
// 0-3 hold the pitch, bits 4-7 the family class.
type PitchAndFamily uint8

// Pack combines a pitch and a family class into one byte.
func Pack(p Pitch, f FamilyClass) PitchAndFamily {
	return PitchAndFamily(uint8(p)&0x0f | uint8(f)<<4)
}

func (pf PitchAndFamily) Pitch() Pitch {
	return Pitch(pf & 0x0f)
}

func (pf PitchAndFamily) Family() FamilyClass {
	return FamilyClass(pf >> 4)
}

// WithPitch returns pf with the pitch nibble replaced.
func (pf PitchAndFamily) WithPitch(p Pitch) PitchAndFamily {
	return pf&0xf0 | PitchAndFamily(uint8(p)&0x0f)
}

// WithFamily returns pf with the family nibble replaced.
func (pf PitchAndFamily) WithFamily(f FamilyClass) PitchAndFamily {
	return pf&0x0f | PitchAndFamily(uint8(f)<<4)
}

func (pf PitchAndFamily) String() string {
	return pf.Pitch().String() + "|" + pf.Family().String()
}
