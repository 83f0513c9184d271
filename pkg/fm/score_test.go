package fm_test

import (
	"github.com/logandonley/fontmatch/pkg/fm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Score", func() {
	var req fm.Request

	candidate := func(weight int, italic bool, pitch fm.Pitch, class fm.FamilyClass) fm.Candidate {
		return fm.Candidate{FaceName: "Test", Weight: weight, Italic: italic, Pitch: pitch, FamilyClass: class}
	}

	BeforeEach(func() {
		req = fm.DefaultRequest("Test")
	})

	It("should rank variable pitch above fixed for a default pitch request", func() {
		variable := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilySwiss))
		fixed := fm.Score(req, candidate(400, false, fm.PitchFixed, fm.FamilySwiss))
		Expect(variable).To(BeNumerically(">", fixed))
	})

	It("should let pitch outweigh every other term", func() {
		req.Pitch = fm.PitchFixed
		req.FamilyClass = fm.FamilyModern
		req.Italic = true

		pitchOnly := fm.Score(req, candidate(fm.MaxWeight, false, fm.PitchFixed, fm.FamilyRoman))
		allButPitch := fm.Score(req, candidate(400, true, fm.PitchVariable, fm.FamilyModern))
		Expect(pitchOnly).To(BeNumerically(">", allButPitch))
	})

	It("should let family class outweigh italic and weight", func() {
		req.FamilyClass = fm.FamilyRoman
		req.Italic = true

		familyOnly := fm.Score(req, candidate(fm.MaxWeight, false, fm.PitchVariable, fm.FamilyRoman))
		rest := fm.Score(req, candidate(400, true, fm.PitchVariable, fm.FamilySwiss))
		Expect(familyOnly).To(BeNumerically(">", rest))
	})

	It("should let italic outweigh any weight distance", func() {
		italicOnly := fm.Score(req, candidate(fm.MaxWeight, false, fm.PitchVariable, fm.FamilySwiss))
		weightOnly := fm.Score(req, candidate(400, true, fm.PitchVariable, fm.FamilySwiss))
		Expect(italicOnly).To(BeNumerically(">", weightOnly))
	})

	It("should score mismatched non-DontCare classes alike", func() {
		req.FamilyClass = fm.FamilyRoman

		modern := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilyModern))
		swiss := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilySwiss))
		decorative := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilyDecorative))
		Expect(modern).To(Equal(swiss))
		Expect(swiss).To(Equal(decorative))
	})

	It("should decrease with weight distance", func() {
		prev := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilySwiss))
		for _, w := range []int{401, 500, 900, 31962, fm.MaxWeight} {
			s := fm.Score(req, candidate(w, false, fm.PitchVariable, fm.FamilySwiss))
			Expect(s).To(BeNumerically("<", prev), "weight %d", w)
			prev = s
		}
	})

	It("should stay non-negative at the weight extremes", func() {
		req.Weight = 0
		Expect(fm.Score(req, candidate(fm.MaxWeight, true, fm.PitchFixed, fm.FamilyRoman))).
			To(BeNumerically(">=", 0))
		req.Weight = fm.MaxWeight
		Expect(fm.Score(req, candidate(0, true, fm.PitchVariable, fm.FamilyRoman))).
			To(BeNumerically(">", 0))
	})

	It("should favour an exact weight over any mismatch", func() {
		exact := fm.Score(req, candidate(400, false, fm.PitchVariable, fm.FamilySwiss))
		Expect(exact - fm.Score(req, candidate(399, false, fm.PitchVariable, fm.FamilySwiss))).To(BeNumerically("==", 1))
		Expect(exact - fm.Score(req, candidate(401, false, fm.PitchVariable, fm.FamilySwiss))).To(BeNumerically("==", 1))
	})
})
