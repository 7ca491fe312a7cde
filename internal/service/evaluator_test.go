package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateExactAndNormalized(t *testing.T) {
	e := NewAnswerEvaluator(0.85)

	tests := []struct {
		name      string
		submitted string
		target    string
		want      bool
	}{
		{"exact match", "elephant", "elephant", true},
		{"case insensitive", "Elephant", "elephant", true},
		{"surrounding whitespace", "  elephant  ", "elephant", true},
		{"single typo in long word", "elephent", "elephant", true},
		{"completely different", "giraffe", "elephant", false},
		{"short word typo falls below threshold", "cat", "cot", false},
		{"both empty", "", "", true},
		{"empty against word", "", "elephant", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, similarity := e.Evaluate(tt.submitted, tt.target)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, similarity, 0.0)
			assert.LessOrEqual(t, similarity, 1.0)
		})
	}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	// One edit in a 20-rune word is similarity 0.95; in a 5-rune word
	// it is 0.80. The default threshold sits between them.
	e := NewAnswerEvaluator(0.85)

	long := "internationalization"
	longTypo := "internationalizatiom"
	ok, sim := e.Evaluate(longTypo, long)
	assert.True(t, ok)
	assert.InDelta(t, 0.95, sim, 1e-9)

	ok, sim = e.Evaluate("aplle", "apple")
	assert.False(t, ok)
	assert.Less(t, sim, 0.85)
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"elephant", "elephent"},
		{"word", "sword"},
		{"", "abc"},
		{"kitten", "sitting"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "Similarity(%q, %q)", p[0], p[1])
	}
}

func TestSimilarityPercentRounds(t *testing.T) {
	assert.Equal(t, 100, SimilarityPercent("apple", "APPLE "))
	assert.Equal(t, 0, SimilarityPercent("ab", "xy"))
	// kitten -> sitting: distance 3 over max length 7.
	assert.Equal(t, 57, SimilarityPercent("kitten", "sitting"))
}

func TestNewAnswerEvaluatorDefaultThreshold(t *testing.T) {
	e := NewAnswerEvaluator(0)
	ok, _ := e.Evaluate("internationalizatiom", "internationalization")
	assert.True(t, ok)
	ok, _ = e.Evaluate("aplle", "apple")
	assert.False(t, ok)
}
