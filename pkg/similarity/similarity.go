// Package similarity scores how likely two column names are to refer to the
// same business concept. A curated synonym table short-circuits common
// vocabulary pairs; everything else falls back to normalized Levenshtein
// edit distance. Scores are symmetric and always in [0,1].
package similarity

import (
	"strings"
)

// Thresholds used elsewhere in the system. Grouping is permissive;
// cross-source relationship detection is stricter to avoid false joins.
const (
	// GroupThreshold is the minimum score for two columns to land in the
	// same similarity group.
	GroupThreshold = 0.6

	// RelationThreshold is the minimum score for a column pair to count as
	// shared between two sources.
	RelationThreshold = 0.8
)

// synonyms holds groups of column-name vocabulary treated as equivalent.
// Two names that appear together in any one group score 1.0.
var synonyms = [][]string{
	{"name", "title", "label"},
	{"id", "identifier", "key", "code"},
	{"customer", "client", "user"},
	{"amount", "price", "cost", "value"},
	{"date", "time", "timestamp"},
	{"phone", "mobile", "telephone"},
	{"email", "mail", "e-mail"},
	{"address", "location", "addr"},
}

// Score returns a similarity in [0,1] between two column names.
func Score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if synonymous(a, b) {
		return 1.0
	}

	// Lengths and edit distance are measured in runes so multi-byte
	// characters in column names do not skew the normalization.
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(distance(ra, rb))/float64(longest)
}

// Similar reports whether a and b clear the grouping threshold.
func Similar(a, b string) bool {
	return Score(a, b) > GroupThreshold
}

// Related reports whether a and b clear the stricter cross-source
// relationship threshold, or match exactly ignoring case.
func Related(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	return Score(a, b) > RelationThreshold
}

// synonymous reports whether both lowercased names contain vocabulary from
// the same synonym group. Containment rather than equality is deliberate:
// "customer name" and "client name" match through customer/client.
func synonymous(a, b string) bool {
	for _, group := range synonyms {
		foundA, foundB := false, false
		for _, word := range group {
			if strings.Contains(a, word) {
				foundA = true
			}
			if strings.Contains(b, word) {
				foundB = true
			}
		}
		if foundA && foundB {
			return true
		}
	}
	return false
}

// distance computes classic Levenshtein edit distance over runes with unit
// costs, using a two-row rolling table.
func distance(a, b []rune) int {
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
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
