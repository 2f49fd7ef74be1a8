// Package output provides console formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/agentstation/tabular/pkg/tables"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the appropriate formatter for a format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format. Data passes through JSON first so
// ordered records keep their key order.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	yamlData, err := yaml.JSONToYAML(jsonData)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter renders consolidation results as console tables.
type TableFormatter struct{}

// Format outputs data in table format. Results render as their record
// table followed by the summary line; other data falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	result, ok := data.(*tables.Result)
	if !ok {
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
	return f.formatResult(w, result)
}

func (f *TableFormatter) formatResult(w io.Writer, result *tables.Result) error {
	if len(result.Records) == 0 {
		_, err := fmt.Fprintln(w, "No consolidated records.")
		return err
	}

	table := tablewriter.NewTable(w)

	headers := make([]any, len(result.Headers))
	for i, h := range result.Headers {
		headers[i] = h
	}
	table.Header(headers...)

	for _, record := range result.Records {
		row := make([]any, len(result.Headers))
		for i, header := range result.Headers {
			row[i] = ""
			if v, ok := record.Get(header); ok {
				row[i] = tables.Stringify(v)
			}
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, result.Summary)
	return err
}
