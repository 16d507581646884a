package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned, ANSI-aware text table. Marked rows are prefixed with
// a marker instead of padding, which is how search hits and the editor
// cursor are shown.
type Table struct {
	Headers []string
	Rows    [][]string
	Marked  map[int]string
	Indent  int
}

// RenderTable renders a simple aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

// Render lays the table out. Columns are padded to the widest visible
// cell, so styled cells line up with plain ones.
func (t Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	gutter := t.gutterWidth()
	indent := strings.Repeat(" ", t.Indent)

	var b strings.Builder

	b.WriteString(indent + strings.Repeat(" ", gutter))
	for i, h := range t.Headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], i == len(t.Headers)-1)
	}
	b.WriteString("\n")

	b.WriteString(indent + strings.Repeat(" ", gutter))
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for r, row := range t.Rows {
		b.WriteString(indent)
		if gutter > 0 {
			mark := t.Marked[r]
			b.WriteString(mark + strings.Repeat(" ", gutter-lipgloss.Width(mark)))
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, lipgloss.Width(cell), widths[i], i == len(t.Headers)-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (t Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func (t Table) gutterWidth() int {
	w := 0
	for _, m := range t.Marked {
		w = max(w, lipgloss.Width(m))
	}
	if w == 0 {
		return 0
	}
	return w + 1
}

func writeCell(b *strings.Builder, styled string, visible, width int, last bool) {
	b.WriteString(styled)
	if !last {
		b.WriteString(strings.Repeat(" ", max(width-visible, 0)+colGap))
	}
}
