package tables

import (
	"github.com/agentstation/utc"
)

// Strategy describes the shape of consolidation the engine settled on for a
// given set of sources. It is informational; the merge pipeline itself is
// the same for all strategies.
type Strategy string

// Consolidation strategies.
const (
	// StrategyMerge indicates sources largely describe the same entities
	// and were folded attribute-wise.
	StrategyMerge Strategy = "merge"
	// StrategyLookup indicates a strong pairwise relationship joined
	// otherwise dissimilar sources.
	StrategyLookup Strategy = "lookup"
	// StrategyUnion indicates sources shared a handful of columns and were
	// stacked on that common shape.
	StrategyUnion Strategy = "union"
	// StrategyAggregate indicates sources had little in common and the
	// output is a best-effort aggregate.
	StrategyAggregate Strategy = "aggregate"
)

// String returns the string representation of a strategy.
func (s Strategy) String() string {
	return string(s)
}

// Diagnostics carries summary counts about one consolidation run.
type Diagnostics struct {
	Sources       int `json:"sources"`
	Columns       int `json:"columns"`
	Records       int `json:"records"`
	Relationships int `json:"relationships"`
}

// Result is the self-contained output of one consolidation call. It holds
// no references into the caller's sources; the engine is stateless across
// calls.
type Result struct {
	// Records are the merged entities, one per real-world record, in
	// first-seen identifier order.
	Records []*Record `json:"records"`

	// Headers are the canonical column names present in any record, in
	// first-appearance order across records.
	Headers []string `json:"headers"`

	// PrimaryKey is the canonical name of the detected identifying column,
	// or "" when no column qualified.
	PrimaryKey string `json:"primaryKey,omitempty"`

	// Strategy is the consolidation shape the engine settled on.
	Strategy Strategy `json:"strategy"`

	// Summary is a one-paragraph human-readable description of the run.
	Summary string `json:"summary"`

	// Insights are optional observations, populated by enrichment when
	// enabled. Empty for the deterministic engine.
	Insights []string `json:"insights,omitempty"`

	// Diagnostics carries run counters.
	Diagnostics Diagnostics `json:"diagnostics"`

	// GeneratedAt is when the result was produced.
	GeneratedAt utc.Time `json:"generatedAt"`
}
