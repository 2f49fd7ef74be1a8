package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/tabular/pkg/errors"
	"github.com/agentstation/tabular/pkg/tables"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// sampleRecords caps how many merged records are offered to the model as a
// structural sample.
const sampleRecords = 5

// Gemini enhances consolidation results through the Gemini API. It sends a
// JSON structural summary of the result and accepts improved headers,
// summary text, and insights back.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini enhancer. The API key is required; model may
// be "" to use the default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Name returns the enhancer name.
func (g *Gemini) Name() string {
	return "gemini"
}

// CanEnhance reports whether the result is worth sending: empty results
// have no structure to improve.
func (g *Gemini) CanEnhance(result *tables.Result) bool {
	return result != nil && len(result.Records) > 0
}

// structuralSummary is the JSON shape offered to the model.
type structuralSummary struct {
	Headers     []string           `json:"headers"`
	PrimaryKey  string             `json:"primaryKey,omitempty"`
	Strategy    string             `json:"strategy"`
	Samples     []*tables.Record   `json:"sampleRecords"`
	Diagnostics tables.Diagnostics `json:"diagnostics"`
}

// proposal is the JSON shape accepted back from the model. All fields are
// optional; absent fields keep their deterministic values.
type proposal struct {
	Headers  []string         `json:"consolidatedHeaders"`
	Records  []*tables.Record `json:"mergedData"`
	Summary  string           `json:"summary"`
	Insights []string         `json:"insights"`
}

// Enhance sends the structural summary and folds an accepted proposal into
// a copy of the result. Any transport or parse failure returns an
// EnhanceError; callers fall back to the deterministic result.
func (g *Gemini) Enhance(ctx context.Context, result *tables.Result) (*tables.Result, error) {
	summary := structuralSummary{
		Headers:     result.Headers,
		PrimaryKey:  result.PrimaryKey,
		Strategy:    result.Strategy.String(),
		Samples:     result.Records[:min(sampleRecords, len(result.Records))],
		Diagnostics: result.Diagnostics,
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, errors.NewEnhanceError(g.Name(), "marshaling structural summary", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt(string(payload))),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, errors.NewEnhanceError(g.Name(), "generating enhancement", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.NewEnhanceError(g.Name(), "empty model response", nil)
	}

	var p proposal
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, errors.NewEnhanceError(g.Name(), "parsing model response", err)
	}

	return g.apply(result, &p), nil
}

// apply folds the proposal into a copy of the deterministic result. Records
// and headers are only replaced when the proposal supplies a consistent
// pair; summary and insights replace freely.
func (g *Gemini) apply(result *tables.Result, p *proposal) *tables.Result {
	enhanced := *result
	if len(p.Records) > 0 && len(p.Headers) > 0 {
		enhanced.Records = p.Records
		enhanced.Headers = p.Headers
	} else {
		// Validation mutates the accepted copy in place; the deterministic
		// records and headers must not be aliased.
		records := make([]*tables.Record, len(result.Records))
		for i, record := range result.Records {
			records[i] = record.Clone()
		}
		enhanced.Records = records
		enhanced.Headers = append([]string(nil), result.Headers...)
	}
	if p.Summary != "" {
		enhanced.Summary = p.Summary
	}
	if len(p.Insights) > 0 {
		enhanced.Insights = p.Insights
	}
	return &enhanced
}

// prompt renders the instruction sent alongside the structural summary.
func prompt(payload string) string {
	return "You are reviewing the output of a deterministic spreadsheet " +
		"consolidation engine. Given the JSON structural summary below, " +
		"respond with a JSON object that may contain any of: " +
		"\"consolidatedHeaders\" (improved column names, same order and count), " +
		"\"mergedData\" (the sample records rewritten under those headers), " +
		"\"summary\" (one paragraph describing the consolidated dataset), and " +
		"\"insights\" (up to five short observations). " +
		"Do not invent data values and do not add source-tracking columns.\n\n" +
		payload
}
