package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
)

func mappingFor(sources []*tables.SourceTable) *schema.Mapping {
	return schema.NewMapping(schema.Analyze(sources))
}

func TestDetectPrefersIDColumn(t *testing.T) {
	sources := []*tables.SourceTable{
		tables.NewSourceTable("a",
			tables.RecordOf("CustID", "1", "Name", "Acme"),
			tables.RecordOf("CustID", "2", "Name", "Globex"),
		),
		tables.NewSourceTable("b",
			tables.RecordOf("CustomerID", "1", "Revenue", "100"),
			tables.RecordOf("CustomerID", "3", "Revenue", "300"),
		),
	}

	assert.Equal(t, "Customer ID", Detect(sources, mappingFor(sources)))
}

func TestDetectRequiresUniqueness(t *testing.T) {
	// A perfectly named column with mostly repeated values never qualifies.
	sources := []*tables.SourceTable{
		tables.NewSourceTable("a",
			tables.RecordOf("GroupID", "g1", "Note", "one"),
			tables.RecordOf("GroupID", "g1", "Note", "two"),
			tables.RecordOf("GroupID", "g1", "Note", "three"),
			tables.RecordOf("GroupID", "g2", "Note", "four"),
		),
	}

	// GroupID uniqueness is 2/4; Note uniqueness is 4/4 but its name
	// scores zero, so it still wins on the uniqueness term alone.
	assert.Equal(t, "Note", Detect(sources, mappingFor(sources)))
}

func TestDetectNoneQualifies(t *testing.T) {
	sources := []*tables.SourceTable{
		tables.NewSourceTable("a",
			tables.RecordOf("Status", "open", "Region", "west"),
			tables.RecordOf("Status", "open", "Region", "west"),
			tables.RecordOf("Status", "open", "Region", "west"),
		),
	}

	assert.Equal(t, "", Detect(sources, mappingFor(sources)))
}

func TestDetectEmptyInput(t *testing.T) {
	assert.Equal(t, "", Detect(nil, schema.NewMapping(schema.Analyze(nil))))
}

func TestDetectTieBreaksOnFirstSeen(t *testing.T) {
	// Identical names and values in both columns; the one encountered
	// first in source order wins.
	sources := []*tables.SourceTable{
		tables.NewSourceTable("a",
			tables.RecordOf("alpha_code", "x1", "beta_code", "x1"),
			tables.RecordOf("alpha_code", "x2", "beta_code", "x2"),
		),
	}

	assert.Equal(t, "Alpha Code", Detect(sources, mappingFor(sources)))
}

func TestNamingScoreAdditive(t *testing.T) {
	assert.Equal(t, 15, namingScore("order_id"))
	assert.Equal(t, 25, namingScore("id_code"))
	assert.Equal(t, 0, namingScore("filename"))
	assert.Equal(t, 8, namingScore("customer name"))
	assert.Equal(t, 7, namingScore("payment_ref"))
	assert.Equal(t, 5, namingScore("account number"))
}

func TestUniqueness(t *testing.T) {
	src := tables.NewSourceTable("a",
		tables.RecordOf("k", "x"),
		tables.RecordOf("k", "x"),
		tables.RecordOf("k", "y"),
		tables.RecordOf("k", ""),
	)

	u, ok := uniqueness(src, "k")
	assert.True(t, ok)
	// Two distinct values out of three non-empty ones.
	assert.InDelta(t, 2.0/3.0, u, 1e-9)

	_, ok = uniqueness(src, "missing")
	assert.False(t, ok)
}
