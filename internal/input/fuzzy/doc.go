// Package fuzzy ranks short names against a typed query by subsequence
// match. The command prompt uses it once exact and prefix lookups fail.
//
// A query matches when its runes appear in order in the candidate,
// ignoring case. Scores reward consecutive runes, word-boundary hits and a
// match at the start, and penalise gaps.
package fuzzy
