package spatialindex

import "strings"

// nameSimilarity returns a score in [0,1] estimating how similar a and b
// are, used by MatchingNode/MatchingNodesSet's 0.5 threshold.
//
// This is plain normalized Levenshtein similarity over lower-cased,
// whitespace-trimmed strings. No string-similarity library is available
// to wire in here (checked the reference corpus: nothing beyond DTW,
// which compares numeric sequences, not strings), so this is implemented
// directly on the standard library.
func nameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	dist := levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(dist)/float64(maxLen)
}

// levenshtein computes the edit distance between a and b using the
// classic two-row dynamic-programming recurrence.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
