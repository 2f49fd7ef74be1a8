package encode

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabular/pkg/tables"
)

func sampleResult() *tables.Result {
	return &tables.Result{
		Records: []*tables.Record{
			tables.RecordOf("Customer ID", "1", "Name", "Acme", "Revenue", 1200.0),
			tables.RecordOf("Customer ID", "2", "Name", "Globex"),
		},
		Headers:    []string{"Customer ID", "Name", "Revenue"},
		PrimaryKey: "Customer ID",
		Strategy:   tables.StrategyMerge,
		Summary:    "2 sources consolidated",
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.csv", FormatCSV},
		{"report.json", FormatJSON},
		{"report.yaml", FormatYAML},
		{"report.yml", FormatYAML},
		{"report.txt", FormatCSV},
		{"report", FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForPath(tt.path))
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Customer ID,Name,Revenue", lines[0])
	assert.Equal(t, "1,Acme,1200", lines[1])
	// Absent values render as empty cells.
	assert.Equal(t, "2,Globex,", lines[2])
}

func TestWriteCSVZeroRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &tables.Result{}, FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Notice", lines[0])
	assert.Contains(t, lines[1], "no consolidated records")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON))

	var decoded struct {
		Headers    []string          `json:"headers"`
		Records    []json.RawMessage `json:"records"`
		PrimaryKey string            `json:"primaryKey"`
		Strategy   string            `json:"strategy"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, []string{"Customer ID", "Name", "Revenue"}, decoded.Headers)
	assert.Equal(t, "Customer ID", decoded.PrimaryKey)
	assert.Equal(t, "merge", decoded.Strategy)
	require.Len(t, decoded.Records, 2)

	// Record keys serialize in header order, not sorted. The encoder
	// indents, so compact before the prefix check.
	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, decoded.Records[0]))
	assert.True(t, strings.HasPrefix(compact.String(), `{"Customer ID"`))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "headers:")
	assert.Contains(t, out, "Customer ID")
	// Key order survives the YAML conversion.
	assert.Less(t, strings.Index(out, "Customer ID"), strings.Index(out, "Revenue"))
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleResult(), Format("xml")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"primaryKey": "Customer ID"`)
}

func TestWriteFileZeroRecordsStillSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteFile(path, &tables.Result{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Notice")
}
