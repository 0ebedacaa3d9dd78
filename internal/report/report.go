// Package report renders compliance, vaccination and calorie reports for the
// terminal and for export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/doselog/internal/compliance"
	"github.com/julianstephens/doselog/internal/constants"
)

// Formats lists the accepted --format values.
var Formats = []string{constants.ReportFormatTable, constants.ReportFormatJSON, constants.ReportFormatYAML}

// Write renders r to w in format. An empty format means table.
func Write(w io.Writer, r compliance.Report, format string) error {
	return write(w, r, format, func() string { return RenderTable(r) })
}

// write encodes v as JSON or YAML, or prints table() for the table format.
func write(w io.Writer, v any, format string, table func() string) error {
	switch strings.ToLower(format) {
	case "", constants.ReportFormatTable:
		_, err := fmt.Fprintln(w, table())
		return err
	case constants.ReportFormatJSON:
		return WriteJSON(w, v)
	case constants.ReportFormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unknown report format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
