// Package output writes command results as styled text tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Formatter writes either human-readable text or JSON to Writer.
type Formatter struct {
	Writer   io.Writer
	JSONMode bool
}

// New creates a Formatter.
func New(w io.Writer, jsonMode bool) *Formatter {
	return &Formatter{Writer: w, JSONMode: jsonMode}
}

// Table writes rows under headers. In JSON mode each row becomes an object
// keyed by header; missing cells are empty strings.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	if f.JSONMode {
		return f.Print(records(headers, rows))
	}

	_, err := fmt.Fprintln(f.Writer, renderTable(headers, rows))
	return err
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func records(headers []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Print writes data as indented JSON, or with %v in text mode.
func (f *Formatter) Print(data any) error {
	if !f.JSONMode {
		_, err := fmt.Fprintf(f.Writer, "%v\n", data)
		return err
	}

	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Line writes a single line of text. It is a no-op in JSON mode so that
// decoration never corrupts machine-readable output.
func (f *Formatter) Line(text string) error {
	if f.JSONMode {
		return nil
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}
