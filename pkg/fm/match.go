package fm

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	"github.com/logandonley/fontmatch/internal/platform"
)

// OrderSource reports the installation order of a font file.
type OrderSource interface {
	Order(path string) (uint64, bool)
}

// Matcher picks the installed font the platform would choose for a request.
type Matcher struct {
	enum   platform.Enumerator
	orders OrderSource
	log    logr.Logger
}

// NewMatcher creates a Matcher. orders may be nil, in which case every
// candidate has installation order 0.
func NewMatcher(enum platform.Enumerator, orders OrderSource, log logr.Logger) *Matcher {
	return &Matcher{enum: enum, orders: orders, log: log}
}

// Candidates returns every logical font the enumeration service reports
// for the requested family, in enumeration order and tagged with its
// installation order. Which names select a family, such as full or
// localized names, is left to the service.
func (m *Matcher) Candidates(req Request) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fonts, err := m.enum.EnumFonts(req.Family, int32(req.Weight), req.Italic, uint8(req.CharSet))
	if err != nil {
		return nil, fmt.Errorf("enumerating fonts: %w", err)
	}

	candidates := make([]Candidate, 0, len(fonts))
	for _, ef := range fonts {
		c := candidateFromPlatform(ef, len(candidates))
		if c.Path != "" && m.orders != nil {
			c.Order, _ = m.orders.Order(c.Path)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Rank scores every candidate for req, best first. Equal scores are ordered
// by installation order and then by enumeration position, most recent first.
func (m *Matcher) Rank(req Request) ([]Scored, error) {
	candidates, err := m.Candidates(req)
	if err != nil {
		return nil, err
	}

	ranked := make([]Scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = Scored{Candidate: c, Score: Score(req, c)}
		m.log.V(2).Info("scored candidate", "font", c.FullNameOrFace(), "order", c.Order, "score", ranked[i].Score)
	}
	slices.SortStableFunc(ranked, compareScored)
	return ranked, nil
}

// FindBestMatch returns the highest ranked candidate. ok is false when no
// font of the family is installed.
func (m *Matcher) FindBestMatch(req Request) (best Candidate, ok bool, err error) {
	ranked, err := m.Rank(req)
	if err != nil {
		return Candidate{}, false, err
	}
	if len(ranked) == 0 {
		m.log.V(1).Info("no font matches", "family", req.Family)
		return Candidate{}, false, nil
	}
	m.log.V(1).Info("selected font", "family", req.Family, "font", ranked[0].FullNameOrFace(), "score", ranked[0].Score)
	return ranked[0].Candidate, true, nil
}

// compareScored sorts descending by score, order and sequence.
func compareScored(a, b Scored) int {
	return cmp.Or(
		cmp.Compare(b.Score, a.Score),
		cmp.Compare(b.Order, a.Order),
		cmp.Compare(b.Sequence, a.Sequence),
	)
}
