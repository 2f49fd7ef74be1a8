// Package encode serializes consolidation results into downloadable report
// files. Encoders never fail a caller outright: a result with zero records
// still produces a valid, human-readable placeholder file, and an encoding
// failure downgrades to a placeholder with the failure noted.
package encode

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

// Format identifies a report encoding.
type Format string

// Supported report formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension, defaulting to CSV.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// Write serializes the result to w in the given format. A zero-record
// result produces a placeholder table rather than an error.
func Write(w io.Writer, result *tables.Result, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format)
	}
}

// WriteFile writes the report to path, choosing the format from the file
// extension. An encoding failure is downgraded: a diagnostic placeholder
// file is written instead and the failure is logged, not returned.
func WriteFile(path string, result *tables.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	format := FormatForPath(path)
	if err := Write(f, result, format); err != nil {
		logging.Warn().
			Err(err).
			Str("path", path).
			Msg("Report encoding failed, writing placeholder")
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding report file: %w", err)
		}
		if err := f.Truncate(0); err != nil {
			return fmt.Errorf("truncating report file: %w", err)
		}
		return writePlaceholder(f, fmt.Sprintf("report could not be encoded as %s", format))
	}
	return nil
}

// writeCSV renders the records as a table under the canonical headers.
func writeCSV(w io.Writer, result *tables.Result) error {
	if len(result.Records) == 0 {
		return writePlaceholder(w, "no consolidated records were produced")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(result.Headers); err != nil {
		return errors.NewEncodeError(string(FormatCSV), "writing header row", err)
	}

	row := make([]string, len(result.Headers))
	for _, record := range result.Records {
		for i, header := range result.Headers {
			row[i] = ""
			if v, ok := record.Get(header); ok {
				row[i] = tables.Stringify(v)
			}
		}
		if err := writer.Write(row); err != nil {
			return errors.NewEncodeError(string(FormatCSV), "writing record row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewEncodeError(string(FormatCSV), "flushing output", err)
	}
	return nil
}

// report is the JSON/YAML envelope for an encoded result.
type report struct {
	Headers     []string           `json:"headers" yaml:"headers"`
	Records     []*tables.Record   `json:"records" yaml:"records"`
	PrimaryKey  string             `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	Strategy    string             `json:"strategy" yaml:"strategy"`
	Summary     string             `json:"summary" yaml:"summary"`
	Insights    []string           `json:"insights,omitempty" yaml:"insights,omitempty"`
	Diagnostics tables.Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}

func newReport(result *tables.Result) report {
	return report{
		Headers:     result.Headers,
		Records:     result.Records,
		PrimaryKey:  result.PrimaryKey,
		Strategy:    result.Strategy.String(),
		Summary:     result.Summary,
		Insights:    result.Insights,
		Diagnostics: result.Diagnostics,
	}
}

func writeJSON(w io.Writer, result *tables.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newReport(result)); err != nil {
		return errors.NewEncodeError(string(FormatJSON), "encoding report", err)
	}
	return nil
}

func writeYAML(w io.Writer, result *tables.Result) error {
	// Records marshal through JSON first so their key order survives;
	// yaml.Marshal on the Record type would not see the ordered keys.
	jsonData, err := json.Marshal(newReport(result))
	if err != nil {
		return errors.NewEncodeError(string(FormatYAML), "encoding report", err)
	}
	yamlData, err := yaml.JSONToYAML(jsonData)
	if err != nil {
		return errors.NewEncodeError(string(FormatYAML), "converting report", err)
	}
	if _, err := w.Write(yamlData); err != nil {
		return errors.NewEncodeError(string(FormatYAML), "writing output", err)
	}
	return nil
}

// writePlaceholder emits a minimal valid single-sheet CSV explaining why no
// tabular report is present.
func writePlaceholder(w io.Writer, reason string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Notice"}); err != nil {
		return errors.NewEncodeError(string(FormatCSV), "writing placeholder", err)
	}
	if err := writer.Write([]string{reason}); err != nil {
		return errors.NewEncodeError(string(FormatCSV), "writing placeholder", err)
	}
	writer.Flush()
	return writer.Error()
}
