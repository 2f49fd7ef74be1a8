// Package keys selects the column most likely to identify entities across
// all sources. Candidates are scored on naming heuristics plus empirical
// value uniqueness; a column with mostly repeated values never qualifies no
// matter how promising its name.
package keys

import (
	"strings"

	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
)

// uniquenessFloor is the minimum value uniqueness for a column to be
// eligible as a primary key.
const uniquenessFloor = 0.7

// candidate accumulates scores for one canonical column.
type candidate struct {
	canonical  string
	naming     int
	uniqueness float64
}

// Detect returns the canonical name of the best primary-key candidate, or
// "" when no column is unique enough. Ties break toward the column first
// encountered in source order, so detection is deterministic.
func Detect(sources []*tables.SourceTable, mapping *schema.Mapping) string {
	var order []string
	candidates := make(map[string]*candidate)

	for _, src := range sources {
		for _, raw := range src.Headers() {
			canonical := mapping.Canonical(raw)
			c, ok := candidates[canonical]
			if !ok {
				c = &candidate{canonical: canonical}
				candidates[canonical] = c
				order = append(order, canonical)
			}
			if score := namingScore(raw); score > c.naming {
				c.naming = score
			}
			if u, ok := uniqueness(src, raw); ok && u > c.uniqueness {
				c.uniqueness = u
			}
		}
	}

	best := ""
	bestScore := 0.0
	for _, canonical := range order {
		c := candidates[canonical]
		if c.uniqueness <= uniquenessFloor {
			continue
		}
		score := float64(c.naming) + c.uniqueness*20
		if best == "" || score > bestScore {
			best = canonical
			bestScore = score
		}
	}

	if best == "" {
		logging.Debug().Msg("No primary key candidate qualified")
		return ""
	}
	logging.Debug().
		Str("column", best).
		Float64("score", bestScore).
		Msg("Detected primary key")
	return best
}

// namingScore scores a raw column name on identifier-like vocabulary.
// Matches are additive, so "customer_id_code" earns both the id and the
// code bonus.
func namingScore(raw string) int {
	name := strings.ToLower(raw)
	score := 0
	if strings.Contains(name, "id") {
		score += 15
	}
	if strings.Contains(name, "key") {
		score += 12
	}
	if strings.Contains(name, "code") {
		score += 10
	}
	if strings.Contains(name, "name") && !strings.Contains(name, "filename") {
		score += 8
	}
	if strings.Contains(name, "reference") || strings.Contains(name, "ref") {
		score += 7
	}
	if strings.Contains(name, "number") {
		score += 5
	}
	return score
}

// uniqueness returns the ratio of distinct non-empty values to total
// non-empty values for one raw column within one source. The second return
// is false when the column holds no non-empty values in that source.
func uniqueness(src *tables.SourceTable, raw string) (float64, bool) {
	distinct := make(map[string]bool)
	total := 0
	for _, row := range src.Rows {
		v, ok := row.Get(raw)
		if !ok || tables.IsEmpty(v) {
			continue
		}
		total++
		distinct[tables.Stringify(v)] = true
	}
	if total == 0 {
		return 0, false
	}
	return float64(len(distinct)) / float64(total), true
}
