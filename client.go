package tabular

import (
	"context"
	"fmt"

	"github.com/agentstation/tabular/pkg/consolidate"
	"github.com/agentstation/tabular/pkg/enhance"
	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
)

// client is the default Client implementation. It holds no state across
// calls beyond its configuration and is safe for concurrent use.
type client struct {
	enhancer enhance.Enhancer
}

// Consolidate runs the deterministic pipeline, then the configured enhancer
// if any. Enhancement failures are soft: the deterministic result is
// returned unchanged.
func (c *client) Consolidate(ctx context.Context, sources []*tables.SourceTable) (*tables.Result, error) {
	result, err := consolidate.Consolidate(sources)
	if err != nil {
		return nil, err
	}
	if c.enhancer != nil {
		result = enhance.Apply(ctx, c.enhancer, result)
	}
	return result, nil
}

// Analyze inspects the sources' column structure without merging.
func (c *client) Analyze(sources []*tables.SourceTable) (*schema.Analysis, error) {
	if err := tables.ValidateSources(sources); err != nil {
		return nil, fmt.Errorf("analyzing sources: %w", err)
	}
	return schema.Analyze(sources), nil
}
