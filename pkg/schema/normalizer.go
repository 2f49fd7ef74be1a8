package schema

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordSynonyms maps lowercased name fragments to their canonical display
// word. Words without an entry are simply title-cased.
var wordSynonyms = map[string]string{
	"id":         "ID",
	"identifier": "ID",
	"key":        "Key",
	"cust":       "Customer",
	"client":     "Customer",
	"qty":        "Quantity",
	"amt":        "Amount",
	"num":        "Number",
	"no":         "Number",
	"addr":       "Address",
	"tel":        "Telephone",
	"ref":        "Reference",
	"desc":       "Description",
	"dob":        "Date Of Birth",
	"email":      "Email",
	"url":        "URL",
}

var titler = cases.Title(language.English)

// Mapping is a total mapping from every raw column name observed in any
// source to exactly one canonical display name. Canonical names are pairwise
// unique; raw names judged equivalent share one canonical name.
type Mapping struct {
	byRaw map[string]string
	used  map[string]bool
}

// NewMapping builds the column mapping from a schema analysis, per the
// normalization procedure: similarity groups first (the representative's
// canonical name covers every member), then remaining columns
// independently, with numeric suffixes resolving cross-group collisions.
func NewMapping(analysis *Analysis) *Mapping {
	m := &Mapping{
		byRaw: make(map[string]string),
		used:  make(map[string]bool),
	}

	// Groups first, in first-seen column order. A column claimed by an
	// earlier group is skipped, which keeps groups disjoint.
	for _, col := range analysis.Columns {
		if _, assigned := m.byRaw[col]; assigned {
			continue
		}
		partners, grouped := analysis.SimilarityGroups[col]
		if !grouped {
			continue
		}
		name := m.reserve(CanonicalName(col))
		m.byRaw[col] = name
		for _, partner := range partners {
			if _, assigned := m.byRaw[partner]; !assigned {
				m.byRaw[partner] = name
			}
		}
	}

	// Remaining ungrouped columns canonicalize independently.
	for _, col := range analysis.Columns {
		if _, assigned := m.byRaw[col]; assigned {
			continue
		}
		m.byRaw[col] = m.reserve(CanonicalName(col))
	}

	return m
}

// reserve returns base if unclaimed, otherwise the first "base 2",
// "base 3", … that is, and records the returned name as claimed.
func (m *Mapping) reserve(base string) string {
	name := base
	for n := 2; m.used[name]; n++ {
		name = base + " " + strconv.Itoa(n)
	}
	m.used[name] = true
	return name
}

// Canonical returns the canonical name for a raw column. Raw names outside
// the analyzed set canonicalize independently without claiming a slot, so
// the mapping stays total over anything a ragged row may carry.
func (m *Mapping) Canonical(raw string) string {
	if name, ok := m.byRaw[raw]; ok {
		return name
	}
	return CanonicalName(raw)
}

// CanonicalName computes the canonical display form of one raw column name:
// split on underscore, hyphen, space, and camelCase boundaries, map known
// word synonyms, title-case the rest, and join with spaces.
func CanonicalName(raw string) string {
	words := splitWords(raw)
	for i, word := range words {
		if mapped, ok := wordSynonyms[strings.ToLower(word)]; ok {
			words[i] = mapped
		} else {
			words[i] = titler.String(strings.ToLower(word))
		}
	}
	return strings.Join(words, " ")
}

// splitWords breaks a raw column name into words on separator characters
// and lower-to-upper camelCase boundaries. Runs of capitals stay together,
// so "CustID" splits into "Cust" and "ID".
func splitWords(raw string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(raw)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// End of a capital run that starts a new word, as in
				// "HTTPServer" -> "HTTP", "Server".
				flush()
			}
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	if len(words) == 0 {
		return []string{raw}
	}
	return words
}
