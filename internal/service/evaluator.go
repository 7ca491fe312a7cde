package service

import (
	"math"
	"strings"
)

// AnswerEvaluator decides whether a free-text answer matches the
// target word. It is pure and safe for concurrent use.
type AnswerEvaluator struct {
	threshold float64
}

func NewAnswerEvaluator(threshold float64) *AnswerEvaluator {
	if threshold <= 0 {
		threshold = 0.85
	}
	return &AnswerEvaluator{threshold: threshold}
}

// Evaluate normalizes both strings, short-circuits on exact match and
// otherwise accepts when the normalized Levenshtein similarity reaches
// the threshold. Two empty strings are trivially identical.
func (e *AnswerEvaluator) Evaluate(submitted, target string) (bool, float64) {
	similarity := Similarity(submitted, target)
	return similarity >= e.threshold, similarity
}

// Similarity returns (maxLen - editDistance) / maxLen over the
// normalized strings, in [0, 1].
func Similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	d := levenshtein(ra, rb)
	return float64(maxLen-d) / float64(maxLen)
}

// SimilarityPercent is the rounded 0..100 form recorded on results.
func SimilarityPercent(a, b string) int {
	return int(math.Round(Similarity(a, b) * 100))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// levenshtein is the classic dynamic-programming edit distance with
// unit costs, using two rolling rows.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j-1]+cost, // substitution
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
