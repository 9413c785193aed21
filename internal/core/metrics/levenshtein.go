// Package metrics implements the string-distance ratios combined by the
// matcher: a Ratcliff/Obershelp sequence ratio, a token-sort ratio and a
// partial (best-window) ratio. All ratios are in [0, 1], symmetric, and
// computed over runes rather than bytes.
package metrics

import "github.com/baditaflorin/go_music_similarity/internal/pool"

var (
	runePool = pool.NewRuneBufferPool(256)
	rowPool  = pool.NewIntBufferPool(256)
)

// runesOf copies s into a pooled rune buffer. The caller must return the
// buffer with runePool.Put once done.
func runesOf(s string) *[]rune {
	buf := runePool.Get()
	for _, r := range s {
		*buf = append(*buf, r)
	}
	return buf
}

// Levenshtein computes the edit distance between two strings.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := runesOf(a)
	rb := runesOf(b)
	defer runePool.Put(ra)
	defer runePool.Put(rb)
	return levenshteinRunes(*ra, *rb)
}

// levenshteinRunes is a two-row dynamic programming implementation with
// pooled rows.
func levenshteinRunes(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prevBuf := rowPool.Get()
	currBuf := rowPool.Get()
	defer rowPool.Put(prevBuf)
	defer rowPool.Put(currBuf)

	prev := growRow(prevBuf, len(b)+1)
	curr := growRow(currBuf, len(b)+1)

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
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func growRow(buf *[]int, n int) []int {
	if cap(*buf) < n {
		*buf = make([]int, n)
	}
	return (*buf)[:n]
}

// Ratio returns the normalized edit-distance similarity between two
// strings: 1 - distance/maxLen. Two empty strings are identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := runesOf(a)
	rb := runesOf(b)
	defer runePool.Put(ra)
	defer runePool.Put(rb)
	return ratioRunes(*ra, *rb)
}

func ratioRunes(a, b []rune) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshteinRunes(a, b))/float64(maxLen)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
