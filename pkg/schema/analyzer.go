// Package schema inspects the column structure of a set of source tables.
// The analyzer computes column frequency, similarity groupings, and pairwise
// source relationships; the normalizer turns those groupings into one total
// raw-name to canonical-name mapping used by the merge pipeline.
package schema

import (
	"github.com/agentstation/tabular/pkg/similarity"
	"github.com/agentstation/tabular/pkg/tables"
)

// Relationship describes the column overlap between two sources.
type Relationship struct {
	SourceA       string   `json:"sourceA"`
	SourceB       string   `json:"sourceB"`
	CommonColumns []string `json:"commonColumns"`
	Confidence    float64  `json:"confidence"`
}

// Analysis is the outcome of inspecting all source tables. Column slices
// preserve first-seen order across sources so downstream passes iterate
// deterministically.
type Analysis struct {
	// Columns holds every distinct raw column name, in first-seen order.
	Columns []string

	// ColumnFrequency counts, per raw column name, the number of sources
	// whose header sample includes it.
	ColumnFrequency map[string]int

	// CommonColumns are raw names appearing in more than one source.
	CommonColumns []string

	// UniqueColumns are raw names appearing in exactly one source.
	UniqueColumns []string

	// SimilarityGroups maps a raw column name to the other raw columns
	// judged similar to it. Columns with no similar partner are absent.
	SimilarityGroups map[string][]string

	// Relationships lists, per source pair with any column overlap, the
	// shared columns and an overlap confidence.
	Relationships []Relationship
}

// Analyze inspects the headers of all sources. Headers are sampled from each
// table's first row; ragged rows beyond the first do not affect the schema.
func Analyze(sources []*tables.SourceTable) *Analysis {
	a := &Analysis{
		ColumnFrequency:  make(map[string]int),
		SimilarityGroups: make(map[string][]string),
	}

	// Column frequency, counted once per source.
	for _, src := range sources {
		for _, col := range src.Headers() {
			if a.ColumnFrequency[col] == 0 {
				a.Columns = append(a.Columns, col)
			}
			a.ColumnFrequency[col]++
		}
	}

	for _, col := range a.Columns {
		if a.ColumnFrequency[col] > 1 {
			a.CommonColumns = append(a.CommonColumns, col)
		} else {
			a.UniqueColumns = append(a.UniqueColumns, col)
		}
	}

	// Similarity groups over the deduplicated column set.
	for _, col := range a.Columns {
		var partners []string
		for _, other := range a.Columns {
			if other == col {
				continue
			}
			if similarity.Similar(col, other) {
				partners = append(partners, other)
			}
		}
		if len(partners) > 0 {
			a.SimilarityGroups[col] = partners
		}
	}

	// Pairwise source relationships.
	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			if rel, ok := relate(sources[i], sources[j]); ok {
				a.Relationships = append(a.Relationships, rel)
			}
		}
	}

	return a
}

// relate computes the column overlap between two sources. Columns count as
// shared on an exact case-insensitive match or a similarity above the
// relation threshold. Pairs with no overlap are omitted.
func relate(sa, sb *tables.SourceTable) (Relationship, bool) {
	headersA := sa.Headers()
	headersB := sb.Headers()
	if len(headersA) == 0 || len(headersB) == 0 {
		return Relationship{}, false
	}

	var common []string
	seen := make(map[string]bool)
	for _, colA := range headersA {
		if seen[colA] {
			continue
		}
		for _, colB := range headersB {
			if similarity.Related(colA, colB) {
				common = append(common, colA)
				seen[colA] = true
				break
			}
		}
	}
	if len(common) == 0 {
		return Relationship{}, false
	}

	return Relationship{
		SourceA:       sa.ID,
		SourceB:       sb.ID,
		CommonColumns: common,
		Confidence:    float64(len(common)) / float64(min(len(headersA), len(headersB))),
	}, true
}
