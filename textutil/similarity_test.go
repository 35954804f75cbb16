package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("", ""))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("abc", ""))
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 1, Levenshtein("abc", "abd"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 2, Levenshtein("flaw", "lawn"))
}

func TestLevenshteinSymmetric(t *testing.T) {
	assert.Equal(t, Levenshtein("turn on the lights", "turn off the lights"),
		Levenshtein("turn off the lights", "turn on the lights"))
}

func TestLevenshteinUnicode(t *testing.T) {
	// Distances are in runes, not bytes.
	assert.Equal(t, 1, Levenshtein("héllo", "hallo"))
	assert.Equal(t, 2, Levenshtein("日本語", "日本語です"))
}

func TestSimilarityBounds(t *testing.T) {
	assert.Equal(t, float32(1), Similarity("", ""), "two empty strings are perfectly similar")
	assert.Equal(t, float32(1), Similarity("abc", "abc"))
	assert.Equal(t, float32(0), Similarity("abc", "xyz"), "fully different equal-length strings score 0")

	s := Similarity("abc", "abd")
	assert.Greater(t, s, float32(0))
	assert.Less(t, s, float32(1))
}

func TestSimilarityMonotonic(t *testing.T) {
	// For fixed-length strings the score decreases as edit distance grows.
	one := Similarity("abcd", "abcx")   // distance 1
	two := Similarity("abcd", "abxy")   // distance 2
	three := Similarity("abcd", "axyz") // distance 3
	assert.Greater(t, one, two)
	assert.Greater(t, two, three)
}

func TestSimilarityAsymmetricLengths(t *testing.T) {
	// Normalized by the longer string.
	assert.InDelta(t, 0.5, Similarity("abcd", "ab"), 1e-6)
	assert.InDelta(t, 0.25, Similarity("a", "abcd"), 1e-6)
}
