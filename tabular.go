// Package tabular consolidates independently authored tabular datasets into
// one reporting table. It reconciles inconsistent column names across
// sources, detects or synthesizes a primary identifying key, and merges
// per-source rows into one record per real-world entity, resolving
// field-level conflicts along the way.
//
// The engine is a heuristic best-effort reconciliation, not a verified
// record-linkage system: merges expand attributes per entity rather than
// duplicating rows, and identifier synthesis guarantees a non-empty row is
// never silently dropped.
//
// Example usage:
//
//	client, err := tabular.New()
//	if err != nil {
//		return err
//	}
//	result, err := client.Consolidate(ctx, sources)
package tabular

import (
	"context"

	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
)

// Client is the main interface for consolidating tabular sources.
type Client interface {
	// Consolidate runs the full reconciliation pipeline over the sources
	// and returns a self-contained result. The context only governs the
	// optional enrichment step; the deterministic engine itself defines no
	// suspension points.
	Consolidate(ctx context.Context, sources []*tables.SourceTable) (*tables.Result, error)

	// Analyze inspects the sources' column structure without merging.
	Analyze(sources []*tables.SourceTable) (*schema.Analysis, error)
}

// New creates a new Client with options.
func New(opts ...Option) (Client, error) {
	c := &client{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
