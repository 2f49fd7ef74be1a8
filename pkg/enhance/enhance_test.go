package enhance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabular/pkg/errors"
	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/tables"
)

// stubEnhancer lets tests drive every Apply path without a live model.
type stubEnhancer struct {
	name    string
	result  *tables.Result
	err     error
	canSkip bool
}

func (s *stubEnhancer) Name() string { return s.name }

func (s *stubEnhancer) CanEnhance(*tables.Result) bool { return !s.canSkip }

func (s *stubEnhancer) Enhance(context.Context, *tables.Result) (*tables.Result, error) {
	return s.result, s.err
}

func deterministicResult() *tables.Result {
	return &tables.Result{
		Records: []*tables.Record{tables.RecordOf("Name", "Acme")},
		Headers: []string{"Name"},
		Summary: "deterministic",
	}
}

func TestApplyNilEnhancer(t *testing.T) {
	result := deterministicResult()
	assert.Same(t, result, Apply(context.Background(), nil, result))
}

func TestApplyFallsBackOnError(t *testing.T) {
	result := deterministicResult()
	enhancer := &stubEnhancer{
		name: "failing",
		err:  errors.NewEnhanceError("failing", "model unavailable", nil),
	}

	// The failure warning routes through the context logger.
	ctx := logging.WithLogger(context.Background(), &logging.Nop)
	assert.Same(t, result, Apply(ctx, enhancer, result))
}

func TestApplyFallsBackOnInvalidProposal(t *testing.T) {
	result := deterministicResult()
	enhancer := &stubEnhancer{
		name:   "broken",
		result: &tables.Result{Records: nil},
	}

	assert.Same(t, result, Apply(context.Background(), enhancer, result))
}

func TestApplyAcceptsValidProposal(t *testing.T) {
	result := deterministicResult()
	enhanced := deterministicResult()
	enhanced.Summary = "enhanced"

	out := Apply(context.Background(), &stubEnhancer{name: "ok", result: enhanced}, result)
	assert.Equal(t, "enhanced", out.Summary)
}

func TestApplySkipsWhenCannotEnhance(t *testing.T) {
	result := deterministicResult()
	enhancer := &stubEnhancer{name: "skip", canSkip: true}
	assert.Same(t, result, Apply(context.Background(), enhancer, result))
}

func TestIsTrackingKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"Source File", true},
		{"source_sheet", true},
		{"originalRow", true},
		{"Original Row Number", true},
		{"row_index", true},
		{"Name", false},
		{"Customer ID", false},
		{"Sources Of Funding", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrackingKey(tt.key))
		})
	}
}

func TestValidateStripsTrackingColumns(t *testing.T) {
	result := &tables.Result{
		Records: []*tables.Record{
			tables.RecordOf("Name", "Acme", "Source File", "a.csv", "Revenue", 100.0),
		},
		Headers: []string{"Name", "Source File", "Revenue"},
	}

	require.NoError(t, Validate(result))
	assert.Equal(t, []string{"Name", "Revenue"}, result.Headers)
	assert.Equal(t, []string{"Name", "Revenue"}, result.Records[0].Keys())
}

func TestGeminiApplyCopiesDeterministicRecords(t *testing.T) {
	g := &Gemini{}
	result := &tables.Result{
		Records: []*tables.Record{tables.RecordOf("Name", "Acme", "Source Row", 4)},
		Headers: []string{"Name", "Source Row"},
	}

	enhanced := g.apply(result, &proposal{Summary: "better"})
	require.NoError(t, Validate(enhanced))

	// Stripping tracking columns from the accepted copy must not reach
	// back into the deterministic result.
	assert.True(t, result.Records[0].Has("Source Row"))
	assert.Equal(t, []string{"Name", "Source Row"}, result.Headers)
	assert.False(t, enhanced.Records[0].Has("Source Row"))
	assert.Equal(t, "better", enhanced.Summary)
}

func TestValidateRejectsNilRecords(t *testing.T) {
	err := Validate(&tables.Result{Records: []*tables.Record{nil}})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
