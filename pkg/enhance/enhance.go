// Package enhance layers optional LLM enrichment over the deterministic
// consolidation engine. The engine's result is always the source of truth:
// an enhancer may propose better headers, a narrative summary, or insights,
// but its output passes through a validator before acceptance, and any
// failure leaves the deterministic result untouched.
package enhance

import (
	"context"
	"strings"

	"github.com/agentstation/tabular/pkg/errors"
	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/tables"
)

// Enhancer proposes enrichments to a consolidation result.
type Enhancer interface {
	// Name returns the enhancer name for logs and diagnostics.
	Name() string

	// CanEnhance reports whether this enhancer applies to the result.
	CanEnhance(result *tables.Result) bool

	// Enhance returns an enriched copy of the result. Implementations must
	// not mutate the input.
	Enhance(ctx context.Context, result *tables.Result) (*tables.Result, error)
}

// Apply runs an enhancer over a result with soft-failure semantics: on any
// error, rejection, or panic-free misbehavior the deterministic result is
// returned unchanged.
func Apply(ctx context.Context, enhancer Enhancer, result *tables.Result) *tables.Result {
	if enhancer == nil || !enhancer.CanEnhance(result) {
		return result
	}

	logger := logging.FromContext(ctx)
	enhanced, err := enhancer.Enhance(ctx, result)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("enhancer", enhancer.Name()).
			Msg("Enhancement failed, using deterministic result")
		return result
	}
	if err := Validate(enhanced); err != nil {
		logger.Warn().
			Err(err).
			Str("enhancer", enhancer.Name()).
			Msg("Enhanced result rejected, using deterministic result")
		return result
	}
	return enhanced
}

// trackingFragments are the normalized key fragments that identify
// source-tracking metadata. Enhanced records must never reintroduce these.
var trackingFragments = []string{
	"sourcefile",
	"sourcesheet",
	"sourcetable",
	"sourcerow",
	"originalrow",
	"rowindex",
}

// IsTrackingKey reports whether a column name resembles source-tracking
// metadata ("Source File", "original_row", …).
func IsTrackingKey(key string) bool {
	normalized := strings.ToLower(key)
	normalized = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, normalized)
	for _, fragment := range trackingFragments {
		if strings.Contains(normalized, fragment) {
			return true
		}
	}
	return false
}

// Validate checks the invariants an enhanced result must uphold before it
// can replace the deterministic one, stripping source-tracking columns from
// records and headers in place.
func Validate(result *tables.Result) error {
	if result == nil {
		return errors.NewValidationError("result", nil, "enhanced result is nil")
	}
	if result.Records == nil {
		return errors.NewValidationError("records", nil, "enhanced result has no record array")
	}
	for i, record := range result.Records {
		if record == nil {
			return errors.NewValidationError("records", i, "enhanced record is nil")
		}
		for _, key := range record.Keys() {
			if IsTrackingKey(key) {
				record.Delete(key)
			}
		}
	}

	kept := result.Headers[:0]
	for _, header := range result.Headers {
		if !IsTrackingKey(header) {
			kept = append(kept, header)
		}
	}
	result.Headers = kept
	return nil
}
