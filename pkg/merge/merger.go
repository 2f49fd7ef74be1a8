// Package merge folds rows from all sources into one record per real-world
// entity. Rows sharing an entity identifier merge attribute-wise rather
// than stacking, so two sheets describing the same entity from different
// angles produce one widened record instead of duplicates.
package merge

import (
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/schema"
	"github.com/agentstation/tabular/pkg/tables"
	"github.com/agentstation/tabular/pkg/values"
)

// compositePriority is the canonical-column order tried when synthesizing
// an identifier for rows without a usable primary-key value.
var compositePriority = []string{"Name", "ID", "Code", "Title", "Email", "Phone"}

// compositeFallbackFields caps how many record values are concatenated when
// none of the priority columns are present.
const compositeFallbackFields = 3

// Merger folds source rows into entities using a column mapping and an
// optional primary key. A Merger is stateless across Merge calls and safe
// for concurrent use.
type Merger struct {
	mapping    *schema.Mapping
	primaryKey string
}

// New creates a Merger. primaryKey is the canonical name of the detected
// identifying column, or "" when detection found none.
func New(mapping *schema.Mapping, primaryKey string) *Merger {
	return &Merger{mapping: mapping, primaryKey: primaryKey}
}

// Merge consumes every row of every source, in input order, and returns the
// merged entities in first-seen identifier order. Rows that normalize to an
// empty record are skipped; every other row lands in exactly one entity.
func (m *Merger) Merge(sources []*tables.SourceTable) []*tables.Record {
	var order []string
	entities := make(map[string]*tables.Record)
	skipped := 0

	for _, src := range sources {
		for _, row := range src.Rows {
			record := m.candidate(row)
			if record.IsEmpty() {
				skipped++
				continue
			}

			id := m.identifier(record)
			if existing, ok := entities[id]; ok {
				mergeInto(existing, record)
			} else {
				entities[id] = record
				order = append(order, id)
			}
		}
	}

	if skipped > 0 {
		logging.Debug().Int("rows", skipped).Msg("Skipped empty rows during merge")
	}

	out := make([]*tables.Record, 0, len(order))
	for _, id := range order {
		out = append(out, entities[id])
	}
	return out
}

// candidate builds the normalized form of one raw row: canonical column
// names, normalized values, nil values dropped entirely.
func (m *Merger) candidate(row *tables.Record) *tables.Record {
	out := tables.NewRecord()
	row.Range(func(raw string, v tables.Value) bool {
		normalized := values.Normalize(v, raw)
		if normalized == nil {
			return true
		}
		name := m.mapping.Canonical(raw)
		if !out.Has(name) {
			out.Set(name, normalized)
		}
		return true
	})
	return out
}

// identifier determines which entity a record belongs to. Preference order:
// the primary-key value, a composite key from well-known identifying
// columns, the record's first few values, and finally a generated key so a
// non-empty row is never dropped or collided with an unrelated one.
func (m *Merger) identifier(record *tables.Record) string {
	if m.primaryKey != "" {
		if v, ok := record.Get(m.primaryKey); ok && !tables.IsEmpty(v) {
			return tables.Stringify(v)
		}
	}

	for _, column := range compositePriority {
		if v, ok := record.Get(column); ok && !tables.IsEmpty(v) {
			return tables.Stringify(v)
		}
	}

	var parts []string
	record.Range(func(_ string, v tables.Value) bool {
		if !tables.IsEmpty(v) {
			parts = append(parts, tables.Stringify(v))
		}
		return len(parts) < compositeFallbackFields
	})
	if len(parts) > 0 {
		return strings.Join(parts, "|")
	}

	return "row-" + uuid.NewString()
}

// mergeInto resolves field conflicts while folding record into entity:
// absent or empty fields adopt the incoming value, longer strings beat
// shorter ones, incoming numbers beat non-numbers, and everything else
// keeps the first-written value.
func mergeInto(entity, record *tables.Record) {
	record.Range(func(key string, incoming tables.Value) bool {
		existing, ok := entity.Get(key)
		if !ok || tables.IsEmpty(existing) {
			entity.Set(key, incoming)
			return true
		}
		if existing == incoming {
			return true
		}

		es, eIsStr := existing.(string)
		is, iIsStr := incoming.(string)
		switch {
		case eIsStr && iIsStr:
			if len(is) > len(es) {
				entity.Set(key, incoming)
			}
		case tables.IsNumeric(incoming):
			entity.Set(key, incoming)
		}
		return true
	})
}
