package match

import (
	"cmp"
	"slices"
	"strings"
)

// Levenshtein returns the rune-level edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			up := row[i]
			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}

// Similarity returns 1 - distance/maxLen over identifiers folded to lower
// case with separators removed. Identical identifiers score 1.
func Similarity(a, b string) float64 {
	a, b = fold(a), fold(b)
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Suggest returns up to n candidates whose similarity to name reaches
// threshold, best first. Ties keep the candidates' order.
func Suggest(name string, candidates []string, threshold float64, n int) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored
	for _, c := range candidates {
		if s := Similarity(name, c); s >= threshold {
			hits = append(hits, scored{c, s})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(n, len(hits)))
	for _, h := range hits[:min(n, len(hits))] {
		out = append(out, h.name)
	}

	return out
}
