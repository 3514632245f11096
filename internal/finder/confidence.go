package finder

import "math"

const (
	textBaseConfidence        = 0.95
	roleBaseConfidence        = 0.90
	labelBaseConfidence       = 0.88
	placeholderBaseConfidence = 0.85

	noTextPenalty    = 0.8
	ambiguousPenalty = 0.85

	fuzzyMinSimilarity = 0.5
	attrMinSimilarity  = 0.6

	idAttrBaseConfidence    = 0.85
	otherAttrBaseConfidence = 0.75
)

// nativeConfidence blends a strategy's base confidence with the textual
// similarity between hint and matched element, and penalizes ambiguous
// queries that resolved to more than one node.
func nativeConfidence(base, sim float64, hasText bool, matchCount int) float64 {
	confidence := base * noTextPenalty
	if hasText {
		confidence = base * (0.5 + 0.5*sim)
	}

	if matchCount > 1 {
		confidence *= ambiguousPenalty
	}

	return round3(confidence)
}

// fuzzyConfidence remaps an accepted similarity in [0.5,1.0] onto
// [0.6,1.0].
func fuzzyConfidence(sim float64) float64 {
	return round3(0.6 + (sim-fuzzyMinSimilarity)*0.8)
}

func attrConfidence(attr string, sim float64) float64 {
	base := otherAttrBaseConfidence
	if attr == "id" || attr == "data-testid" {
		base = idAttrBaseConfidence
	}

	return round3(base * sim)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
