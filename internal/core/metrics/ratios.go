package metrics

import (
	"sort"
	"strings"
)

// SequenceRatio computes a Ratcliff/Obershelp block-matching similarity:
// the longest common contiguous substring is located, both strings are
// split around it and the search recurses on the left and right remainders.
// The ratio is 2*matches / (len(a)+len(b)).
func SequenceRatio(a, b string) float64 {
	ra := runesOf(a)
	rb := runesOf(b)
	defer runePool.Put(ra)
	defer runePool.Put(rb)

	total := len(*ra) + len(*rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(*ra, *rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest contiguous run of runes common to a
// and b, preferring the earliest occurrence in a, then in b.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prevBuf := rowPool.Get()
	currBuf := rowPool.Get()
	defer rowPool.Put(prevBuf)
	defer rowPool.Put(currBuf)

	prev := growRow(prevBuf, len(b)+1)
	curr := growRow(currBuf, len(b)+1)
	for j := range prev {
		prev[j] = 0
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = 0
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					ai = i - size
					bi = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return ai, bi, size
}

// TokenSortRatio splits both strings into whitespace tokens, sorts them,
// rejoins with single spaces and returns the normalized edit-distance
// similarity of the results. Insensitive to word order.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// PartialRatio slides the shorter string across every equal-length rune
// window of the longer one and returns the best normalized edit-distance
// similarity. Rewards one string being a near-substring of the other.
func PartialRatio(a, b string) float64 {
	ra := runesOf(a)
	rb := runesOf(b)
	defer runePool.Put(ra)
	defer runePool.Put(rb)

	shorter, longer := *ra, *rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 1
		}
		return 0
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := ratioRunes(shorter, longer[i:i+len(shorter)])
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return best
}
