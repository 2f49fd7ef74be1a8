// Package ingest turns uploaded tabular files into source tables. CSV,
// JSON (array of objects), and YAML (list of maps) inputs are supported;
// raw column names come from headers or object keys, with nulls and empty
// cells preserved for the value normalizer to drop later.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/tabular/pkg/errors"
	"github.com/agentstation/tabular/pkg/logging"
	"github.com/agentstation/tabular/pkg/tables"
)

// File reads one file into a source table, choosing the parser from the
// file extension. The source ID is the file's base name without extension.
func File(path string) (*tables.SourceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var src *tables.SourceTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		src, err = CSV(id, f)
	case ".tsv":
		src, err = TSV(id, f)
	case ".json":
		src, err = JSON(id, f)
	case ".yaml", ".yml":
		src, err = YAML(id, f)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("source", src.ID).
		Int("rows", len(src.Rows)).
		Msg("Ingested source file")
	return src, nil
}

// Files reads several files into source tables, preserving argument order.
func Files(paths ...string) ([]*tables.SourceTable, error) {
	sources := make([]*tables.SourceTable, 0, len(paths))
	for _, path := range paths {
		src, err := File(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// CSV parses comma-separated input. The first record supplies the raw
// column names; ragged data rows are tolerated, with missing cells absent
// and surplus cells dropped.
func CSV(id string, r io.Reader) (*tables.SourceTable, error) {
	return delimited(id, r, ',')
}

// TSV parses tab-separated input with CSV semantics.
func TSV(id string, r io.Reader) (*tables.SourceTable, error) {
	return delimited(id, r, '\t')
}

func delimited(id string, r io.Reader, comma rune) (*tables.SourceTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // ragged rows are tolerated
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError("", "csv", "reading records", err)
	}
	if len(records) == 0 {
		return tables.NewSourceTable(id), nil
	}

	headers := records[0]
	src := tables.NewSourceTable(id)
	for _, cells := range records[1:] {
		row := tables.NewRecord()
		for i, header := range headers {
			if i >= len(cells) {
				break
			}
			row.Set(header, cells[i])
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

// JSON parses an array of flat objects. Object key order is preserved as
// column order.
func JSON(id string, r io.Reader) (*tables.SourceTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewParseError("", "json", "reading input", err)
	}

	var rows []*tables.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewParseError("", "json", "expected an array of objects", err)
	}
	return tables.NewSourceTable(id, rows...), nil
}

// YAML parses a list of maps. goccy's ordered MapSlice keeps the authored
// key order as column order.
func YAML(id string, r io.Reader) (*tables.SourceTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewParseError("", "yaml", "reading input", err)
	}

	var docs []yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &docs, yaml.UseOrderedMap()); err != nil {
		return nil, errors.NewParseError("", "yaml", "expected a list of maps", err)
	}

	src := tables.NewSourceTable(id)
	for _, doc := range docs {
		row := tables.NewRecord()
		for _, item := range doc {
			key := fmt.Sprintf("%v", item.Key)
			row.Set(key, coerceYAML(item.Value))
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

// coerceYAML maps decoded YAML scalars onto the value kinds the engine
// understands.
func coerceYAML(v any) tables.Value {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
