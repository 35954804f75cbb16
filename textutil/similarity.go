// Package textutil provides the string comparison helpers used when scoring
// recognized text against expected commands.
package textutil

// Levenshtein returns the exact edit distance between s0 and s1: the minimum
// number of single-rune insertions, deletions and substitutions (cost 1 each)
// transforming one into the other. Two rows of the DP table are kept, so
// space is linear in the shorter string.
func Levenshtein(s0, s1 string) int {
	r0 := []rune(s0)
	r1 := []rune(s1)
	if len(r0) < len(r1) {
		r0, r1 = r1, r0
	}

	prev := make([]int, len(r1)+1)
	cur := make([]int, len(r1)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r0); i++ {
		cur[0] = i
		for j := 1; j <= len(r1); j++ {
			cost := 1
			if r0[i-1] == r1[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(r1)]
}

// Similarity returns a normalized similarity score between s0 and s1:
// 1 - distance/max(len(s0), len(s1)). Identical strings (including two empty
// ones) score 1; completely different strings of equal length score 0.
func Similarity(s0, s1 string) float32 {
	n := max(len([]rune(s0)), len([]rune(s1)))
	if n == 0 {
		return 1
	}
	return 1 - float32(Levenshtein(s0, s1))/float32(n)
}
