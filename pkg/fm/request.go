package fm

import (
	"strings"
	"unicode/utf16"
)

const (
	// DefaultWeight is the weight of a regular face.
	DefaultWeight = 400
	// MaxWeight is the largest weight a request may ask for.
	MaxWeight = 65535
	// MaxFaceNameLength is the capacity of a platform face name, in UTF-16
	// code units, excluding the terminator.
	MaxFaceNameLength = 31
)

// Request describes the logical font a caller wants.
type Request struct {
	Family      string // matched case-insensitively against face names
	Weight      int
	Italic      bool
	Pitch       Pitch
	FamilyClass FamilyClass
	CharSet     CharSet
}

// DefaultRequest returns a request for family with the defaults subtitle
// renderers use: regular weight, upright, default pitch, any family class,
// default character set.
func DefaultRequest(family string) Request {
	return Request{
		Family:      family,
		Weight:      DefaultWeight,
		Pitch:       PitchDefault,
		FamilyClass: FamilyDontCare,
		CharSet:     DefaultCharSet,
	}
}

// Validate checks the request. Errors wrap ErrInvalidRequest.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Family) == "" {
		return invalidRequest("empty family name")
	}
	if n := len(utf16.Encode([]rune(r.Family))); n > MaxFaceNameLength {
		return invalidRequest("family name %q is %d characters long, at most %d allowed", r.Family, n, MaxFaceNameLength)
	}
	if r.Weight < 0 || r.Weight > MaxWeight {
		return invalidRequest("weight %d outside [0, %d]", r.Weight, MaxWeight)
	}
	if !r.Pitch.valid() {
		return invalidRequest("unknown pitch %d", r.Pitch)
	}
	if !r.FamilyClass.valid() {
		return invalidRequest("unknown family class %d", r.FamilyClass)
	}
	if !r.CharSet.valid() {
		return invalidRequest("unknown character set 0x%02x", uint8(r.CharSet))
	}
	return nil
}
