package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNativeConfidence(t *testing.T) {
	// perfect text match keeps the full base
	assert.Equal(t, 0.95, nativeConfidence(0.95, 1.0, true, 1))

	// no text falls back to a flat 0.8 factor
	assert.Equal(t, 0.76, nativeConfidence(0.95, 0, false, 1))

	// ambiguous match is penalized
	assert.Equal(t, round3(0.95*0.85), nativeConfidence(0.95, 1.0, true, 2))

	// similarity blends into the base
	assert.Equal(t, round3(0.95*(0.5+0.5*0.6)), nativeConfidence(0.95, 0.6, true, 1))
}

func TestFuzzyConfidenceRemap(t *testing.T) {
	assert.Equal(t, 0.6, fuzzyConfidence(0.5))
	assert.Equal(t, 1.0, fuzzyConfidence(1.0))
	assert.Equal(t, 0.8, fuzzyConfidence(0.75))
}

func TestAttrConfidenceBases(t *testing.T) {
	assert.Equal(t, 0.85, attrConfidence("id", 1.0))
	assert.Equal(t, 0.85, attrConfidence("data-testid", 1.0))
	assert.Equal(t, 0.75, attrConfidence("name", 1.0))
	assert.Equal(t, round3(0.75*0.6), attrConfidence("class", 0.6))
}
