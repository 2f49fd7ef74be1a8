package tabular

import (
	"github.com/agentstation/tabular/pkg/enhance"
	"github.com/agentstation/tabular/pkg/errors"
)

// Option configures a Client.
type Option func(*client) error

// WithEnhancer layers an enrichment step over the deterministic engine.
// The enhancer's proposals are validated before acceptance and any failure
// falls back to the engine's own result.
func WithEnhancer(enhancer enhance.Enhancer) Option {
	return func(c *client) error {
		if enhancer == nil {
			return errors.New("enhancer cannot be nil")
		}
		c.enhancer = enhancer
		return nil
	}
}
