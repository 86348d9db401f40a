package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown bullet of the form "- **key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock wraps code in a fenced block tagged with lang.
func FormatCodeBlock(lang, code string) string {
	code = strings.TrimRight(code, "\n")
	return "```" + lang + "\n" + code + "\n```"
}

// FormatTable renders rows as a markdown table.
func FormatTable(headers []string, rows [][]string) string {
	return newTable(headers, rows).RenderMarkdown()
}

// Table writes rows as a table shaped for the effective mode: a box-drawn
// table on a terminal, a markdown table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	if r.EffectiveMode() != ModeText {
		r.Println(FormatTable(headers, rows))
		return
	}
	t := newTable(headers, rows)
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
}

func newTable(headers []string, rows [][]string) table.Writer {
	t := table.NewWriter()
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}
	return t
}
