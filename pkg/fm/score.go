package fm

// Score terms. Each bonus is larger than the sum of every term below it, so
// pitch outranks family class, which outranks italic, which outranks any
// weight distance.
const (
	ScorePitchExact   int64 = 1 << 20
	ScorePitchDefault int64 = 1 << 19
	ScoreFamily       int64 = 1 << 18
	ScoreItalic       int64 = 1 << 17

	// MaxWeightDistance caps the weight term. Distances at or past it all
	// score zero.
	MaxWeightDistance int64 = 65535
)

// Scored pairs a candidate with its score against a request.
type Scored struct {
	Candidate
	Score int64
}

// Score rates how well c satisfies req. Higher is better.
func Score(req Request, c Candidate) int64 {
	return pitchScore(req.Pitch, c.Pitch) +
		familyScore(req.FamilyClass, c.FamilyClass) +
		weightScore(req.Weight, c.Weight) +
		italicScore(req.Italic, c.Italic)
}

func pitchScore(want, got Pitch) int64 {
	if want == PitchDefault {
		// Variable pitch is preferred when the caller has no preference.
		if got == PitchVariable {
			return ScorePitchExact
		}
		return ScorePitchDefault
	}
	if want == got {
		return ScorePitchExact
	}
	return 0
}

func familyScore(want, got FamilyClass) int64 {
	if want == FamilyDontCare || got == FamilyDontCare || want == got {
		return ScoreFamily
	}
	return 0
}

func weightScore(want, got int) int64 {
	d := int64(want) - int64(got)
	if d < 0 {
		d = -d
	}
	return MaxWeightDistance - min(d, MaxWeightDistance)
}

func italicScore(want, got bool) int64 {
	if want == got {
		return ScoreItalic
	}
	return 0
}
