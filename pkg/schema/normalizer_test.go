package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tabular/pkg/tables"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"CustID", "Customer ID"},
		{"customer_id", "Customer ID"},
		{"client-name", "Customer Name"},
		{"orderDate", "Order Date"},
		{"REVENUE", "Revenue"},
		{"qty", "Quantity"},
		{"unit_price", "Unit Price"},
		{"addr", "Address"},
		{"HTTPStatus", "Http Status"},
		{"plain", "Plain"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.raw))
		})
	}
}

func TestNewMappingGroups(t *testing.T) {
	sources := []*tables.SourceTable{
		tables.NewSourceTable("a", tables.RecordOf("CustID", "1", "Name", "Acme")),
		tables.NewSourceTable("b", tables.RecordOf("CustomerID", "1", "Revenue", "100")),
	}
	mapping := NewMapping(Analyze(sources))

	// Grouped columns share the representative's canonical name.
	assert.Equal(t, "Customer ID", mapping.Canonical("CustID"))
	assert.Equal(t, "Customer ID", mapping.Canonical("CustomerID"))
	assert.Equal(t, "Name", mapping.Canonical("Name"))
	assert.Equal(t, "Revenue", mapping.Canonical("Revenue"))
}

func TestNewMappingCollisions(t *testing.T) {
	// Two unrelated raw names that canonicalize identically get numeric
	// suffixes rather than silently sharing a canonical name.
	analysis := &Analysis{Columns: []string{"total", "TOTAL", "To Tal"}}
	mapping := NewMapping(analysis)

	first := mapping.Canonical("total")
	second := mapping.Canonical("TOTAL")
	assert.Equal(t, "Total", first)
	assert.Equal(t, "Total 2", second)
	assert.NotEqual(t, first, second)
}

func TestMappingTotalOverUnseen(t *testing.T) {
	mapping := NewMapping(&Analysis{Columns: []string{"known"}})

	// Raw names outside the analyzed set still canonicalize, so ragged
	// rows with surprise columns never panic.
	assert.Equal(t, "Surprise Column", mapping.Canonical("surprise_column"))
}

func TestMappingDistinctGroupsDistinctNames(t *testing.T) {
	analysis := &Analysis{
		Columns: []string{"id", "ID", "name", "NAME"},
		SimilarityGroups: map[string][]string{
			"id":   {"ID"},
			"ID":   {"id"},
			"name": {"NAME"},
			"NAME": {"name"},
		},
	}
	mapping := NewMapping(analysis)

	// Members of one group share a canonical name; different groups never do.
	assert.Equal(t, mapping.Canonical("id"), mapping.Canonical("ID"))
	assert.Equal(t, mapping.Canonical("name"), mapping.Canonical("NAME"))
	assert.NotEqual(t, mapping.Canonical("id"), mapping.Canonical("name"))
}
