package names

import (
	"strings"

	"github.com/sourcegraph/conc/iter"
)

// DefaultThreshold is the score a name must exceed to be suggested.
const DefaultThreshold = 0.6

// FindSimilar returns the candidates whose similarity to target is strictly
// greater than threshold. The comparison ignores case and the result keeps
// the order of candidates.
func FindSimilar(target string, candidates []string, threshold float64) []string {
	target = strings.ToLower(target)
	keep := iter.Map(candidates, func(candidate *string) bool {
		return ratio(target, strings.ToLower(*candidate)) > threshold
	})

	out := make([]string, 0, len(candidates))
	for i, ok := range keep {
		if ok {
			out = append(out, candidates[i])
		}
	}
	return out
}

// Similarity scores a and b in [0,1] ignoring case. Identical strings score 1.
func Similarity(a, b string) float64 {
	return ratio(strings.ToLower(a), strings.ToLower(b))
}

// ratio is the Ratcliff/Obershelp score: twice the number of matching runes
// divided by the total rune count.
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	i, j, size := longestCommon(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingRunes(a[:i], b[:j]) + matchingRunes(a[i+size:], b[j+size:])
}

// longestCommon finds the longest common substring of a and b and returns
// its start in each along with its length. Ties resolve to the earliest
// position in a.
func longestCommon(a, b []rune) (int, int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	bestI, bestJ, best := 0, 0, 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
					bestI, bestJ = i-best, j-best
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return bestI, bestJ, best
}
