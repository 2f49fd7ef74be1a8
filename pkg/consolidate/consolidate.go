// Package consolidate sequences the consolidation pipeline: schema
// analysis, column normalization, primary-key detection, and entity
// merging, packaged with summary metadata. The pipeline is deterministic
// and pure; repeated calls over identical input produce identical results.
package consolidate

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/tabular/pkg/keys"
	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/merge"
	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
)

// lookupConfidence is the relationship confidence above which two sources
// are considered joined by a shared column set.
const lookupConfidence = 0.7

// Consolidate runs the full pipeline over the given sources. It never
// errors for structurally valid input, including empty or ragged sources;
// the only error condition is malformed input (nil rows, duplicate source
// IDs), which fails fast rather than corrupting output.
func Consolidate(sources []*tables.SourceTable) (*tables.Result, error) {
	if err := tables.ValidateSources(sources); err != nil {
		return nil, fmt.Errorf("consolidating sources: %w", err)
	}

	analysis := schema.Analyze(sources)
	mapping := schema.NewMapping(analysis)
	primaryKey := keys.Detect(sources, mapping)

	records := merge.New(mapping, primaryKey).Merge(sources)
	headers := collectHeaders(records)
	strategy := chooseStrategy(analysis, len(sources))

	result := &tables.Result{
		Records:    records,
		Headers:    headers,
		PrimaryKey: primaryKey,
		Strategy:   strategy,
		Diagnostics: tables.Diagnostics{
			Sources:       len(sources),
			Columns:       len(analysis.Columns),
			Records:       len(records),
			Relationships: len(analysis.Relationships),
		},
		GeneratedAt: utc.Now(),
	}
	result.Summary = summarize(result)

	logging.Debug().
		Int("sources", len(sources)).
		Int("records", len(records)).
		Str("strategy", strategy.String()).
		Str("primary_key", primaryKey).
		Msg("Consolidation complete")

	return result, nil
}

// collectHeaders returns the union of all record keys, in first-appearance
// order across records.
func collectHeaders(records []*tables.Record) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, record := range records {
		record.Range(func(key string, _ tables.Value) bool {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
			return true
		})
	}
	if headers == nil {
		headers = []string{}
	}
	return headers
}

// chooseStrategy classifies the consolidation shape from the schema
// analysis. Heavily overlapping sources merge; a single strong pairwise
// relationship makes a lookup; a handful of shared columns makes a union;
// anything else is a best-effort aggregate.
func chooseStrategy(analysis *schema.Analysis, sourceCount int) tables.Strategy {
	if float64(len(analysis.CommonColumns)) > 0.5*float64(sourceCount) {
		return tables.StrategyMerge
	}
	for _, rel := range analysis.Relationships {
		if rel.Confidence > lookupConfidence {
			return tables.StrategyLookup
		}
	}
	if len(analysis.CommonColumns) > 2 {
		return tables.StrategyUnion
	}
	return tables.StrategyAggregate
}

// summarize renders the one-paragraph run description.
func summarize(r *tables.Result) string {
	key := "no primary key detected; composite keys were synthesized"
	if r.PrimaryKey != "" {
		key = fmt.Sprintf("keyed on %q", r.PrimaryKey)
	}
	return fmt.Sprintf(
		"Consolidated %d source(s) spanning %d distinct column(s) into %d record(s) using the %s strategy, %s.",
		r.Diagnostics.Sources, r.Diagnostics.Columns, r.Diagnostics.Records, r.Strategy, key,
	)
}
