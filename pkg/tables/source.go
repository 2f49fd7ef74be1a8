package tables

import (
	"github.com/agentstation/tabular/pkg/errors"
)

// SourceTable is one independently authored input table: an ordered
// sequence of rows keyed by raw, source-local column names. The ID must be
// unique among the inputs to one consolidation call.
type SourceTable struct {
	ID   string
	Rows []*Record
}

// NewSourceTable returns a source table with the given ID and rows.
func NewSourceTable(id string, rows ...*Record) *SourceTable {
	return &SourceTable{ID: id, Rows: rows}
}

// Headers returns the table's header sample: the column names of the first
// row, in insertion order. Tables with no rows have no headers.
func (s *SourceTable) Headers() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0].Keys()
}

// Validate checks the structural invariants the engine depends on. Ragged
// rows are fine; nil rows are not.
func (s *SourceTable) Validate() error {
	if s == nil {
		return errors.NewValidationError("source", nil, "source table is nil")
	}
	if s.ID == "" {
		return errors.NewValidationError("id", s.ID, "source table has no ID")
	}
	for i, row := range s.Rows {
		if row == nil {
			return errors.NewValidationError("rows", i, "row is nil")
		}
	}
	return nil
}

// ValidateSources validates every table and rejects duplicate source IDs.
func ValidateSources(sources []*SourceTable) error {
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if err := src.Validate(); err != nil {
			return err
		}
		if seen[src.ID] {
			return errors.NewValidationError("id", src.ID, "duplicate source table ID")
		}
		seen[src.ID] = true
	}
	return nil
}
