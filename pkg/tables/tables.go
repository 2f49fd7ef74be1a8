// Package tables defines the data model shared across the tabular
// consolidation engine: dynamically shaped records, source tables, and the
// consolidated result returned to callers.
//
// Column sets are not known until runtime, so records are insertion-ordered
// string-keyed maps of loosely typed values rather than static structs.
// Iteration order is always the order in which keys were first set, which is
// what makes consolidation deterministic for a fixed input order.
package tables

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a dynamically typed cell value. Valid values are nil, bool,
// int, int64, float64, and string; ingestion and normalization only ever
// produce these kinds.
type Value = any

// IsEmpty reports whether a value is absent for merging purposes:
// nil, or a string that is empty after trimming.
func IsEmpty(v Value) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// IsNumeric reports whether a value is a usable number (bool excluded,
// NaN excluded).
func IsNumeric(v Value) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return !math.IsNaN(n)
	}
	return false
}

// Stringify renders a value in its canonical string form, used when a cell
// value becomes part of an entity identifier. Floats that hold integral
// values render without a fractional part.
func Stringify(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Record is an insertion-ordered mapping from column name to value. It is
// used both for raw source rows (raw column names) and for merged entities
// (canonical column names). The zero value is not usable; construct with
// NewRecord.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// RecordOf builds a record from alternating key/value pairs, preserving the
// pair order. It panics on an odd number of arguments or a non-string key;
// it is intended for literals in tests and examples.
func RecordOf(pairs ...any) *Record {
	if len(pairs)%2 != 0 {
		panic("tables: RecordOf requires an even number of arguments")
	}
	r := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("tables: RecordOf keys must be strings")
		}
		r.Set(key, pairs[i+1])
	}
	return r
}

// Set stores a value under key. A key set for the first time is appended to
// the iteration order; resetting an existing key keeps its original position.
func (r *Record) Set(key string, v Value) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key and whether the key is present.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key from the record, preserving the relative order of the
// remaining keys.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// IsEmpty reports whether the record holds no keys.
func (r *Record) IsEmpty() bool {
	return len(r.keys) == 0
}

// Keys returns the record's keys in insertion order. The returned slice is
// a copy and safe for the caller to retain.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Range calls fn for each key/value pair in insertion order until fn
// returns false.
func (r *Record) Range(fn func(key string, v Value) bool) {
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Clone returns a deep-enough copy of the record (values are copied by
// assignment; all valid values are immutable kinds).
func (r *Record) Clone() *Record {
	out := NewRecord()
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

// MarshalJSON encodes the record as a JSON object with keys in insertion
// order, so serialized results are byte-stable for a fixed input.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the record. Object key order is
// preserved as insertion order.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		r.Set(key, coerceJSON(raw))
	}
	_, err = dec.Token() // closing brace
	return err
}

// coerceJSON maps decoded JSON values onto the Value kinds the engine
// understands. Numbers become int64 when integral, float64 otherwise.
func coerceJSON(raw any) Value {
	switch t := raw.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		// Nested arrays are not tabular; keep their JSON text.
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return t
	}
}
