package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// Scoring weights.
const (
	baseScore        = 100
	consecutiveBonus = 20
	boundaryBonus    = 15
	leadingBonus     = 25
	prefixBonus      = 50
	gapPenalty       = 2
	shortThreshold   = 20
)

// Result is one ranked candidate.
type Result struct {
	// Index is the candidate's position in the input slice.
	Index int
	Text  string
	Score int

	// Matches holds the rune indices of the matched characters.
	Matches []int
}

// Score matches query against text. ok is false when some query rune is
// missing.
func Score(query, text string) (s int, matches []int, ok bool) {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 || text == "" {
		return 0, nil, false
	}
	orig := []rune(text)
	lower := []rune(strings.ToLower(text))

	matches = make([]int, 0, len(q))
	for i := 0; i < len(lower) && len(matches) < len(q); i++ {
		if lower[i] == q[len(matches)] {
			matches = append(matches, i)
		}
	}
	if len(matches) != len(q) {
		return 0, nil, false
	}
	return score(q, orig, lower, matches), matches, true
}

func score(q, orig, lower []rune, matches []int) int {
	s := baseScore
	for i, idx := range matches {
		if i > 0 && idx == matches[i-1]+1 {
			s += consecutiveBonus
		}
		if boundary(orig, idx) {
			s += boundaryBonus
		}
	}
	if matches[0] == 0 {
		s += leadingBonus
	}
	gap := matches[len(matches)-1] - matches[0] - len(matches) + 1
	s -= gap*gapPenalty + matches[0]
	if len(lower) < shortThreshold {
		s += shortThreshold - len(lower)
	}
	if len(lower) >= len(q) && slices.Equal(lower[:len(q)], q) {
		s += prefixBonus
	}
	return max(s, 1)
}

// boundary reports whether idx starts a word: the first rune, a rune after
// space or punctuation, or an upper-case rune after a lower-case one.
func boundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev) ||
		(unicode.IsLower(prev) && unicode.IsUpper(cur))
}

// Rank returns the candidates matching query, best first. Ties keep input
// order.
func Rank(query string, candidates []string) []Result {
	var out []Result
	for i, text := range candidates {
		if s, m, ok := Score(query, text); ok {
			out = append(out, Result{Index: i, Text: text, Score: s, Matches: m})
		}
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Best returns the top-ranked candidate.
func Best(query string, candidates []string) (Result, bool) {
	r := Rank(query, candidates)
	if len(r) == 0 {
		return Result{}, false
	}
	return r[0], true
}
