package formatter

import (
	"fmt"
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/filter"
)

// FormatLegend renders the level sequence as a row of colored chips. The
// active filter level, if any, is marked.
func FormatLegend(levels []domain.Level, activeID string) string {
	if len(levels) == 0 {
		return Dim("(no levels)")
	}
	chips := make([]string, 0, len(levels))
	for _, l := range levels {
		chip := LevelChip(l)
		if l.ID == activeID {
			chip = StyleHeader.Render("[") + chip + StyleHeader.Render("]")
		}
		chips = append(chips, chip)
	}
	return strings.Join(chips, " ")
}

// CategoryOptions controls how a single category is laid out.
type CategoryOptions struct {
	Highlights filter.Highlights
	// Cursor marks the entry row at this index; -1 marks none.
	Cursor int
	// Column underlines the property header at this index; -1 for none.
	Column int
	// Marker replaces the default "›" cursor marker.
	Marker string
}

// FormatCategory renders a category as a table of entries, one column per
// property, with comments shown dimmed after the entry name.
func FormatCategory(doc *domain.Document, c *domain.Category, opts CategoryOptions) string {
	title := Bold(c.Name)
	if opts.Highlights.Category(c.ID) == filter.MatchCategory {
		title = Match(c.Name)
	}
	title += "  " + Dim(Count(len(c.Entries), "entry", "entries"))

	if len(c.Entries) == 0 {
		return title + "\n  " + Dim("(empty)") + "\n"
	}

	headers := []string{"ENTRY"}
	for i, p := range c.Properties {
		h := strings.ToUpper(p.Name)
		if i == opts.Column {
			h = "▸" + h
		}
		headers = append(headers, h)
	}

	table := Table{Headers: headers, Indent: 2, Marked: map[int]string{}}
	for i, e := range c.Entries {
		name := StyleFg.Render(e.Name)
		if opts.Highlights.Entry(e.ID) {
			name = Match(e.Name)
		}
		if e.Comment != "" {
			name += " " + Dim("("+Truncate(e.Comment, 40)+")")
		}
		row := []string{name}
		for _, p := range c.Properties {
			v, _ := e.Value(p.Name)
			row = append(row, ValueCell(doc, v))
		}
		table.Rows = append(table.Rows, row)
		if i == opts.Cursor {
			table.Marked[i] = StyleHeader.Render(cursorMarker(opts.Marker))
		}
	}

	return title + "\n" + table.Render()
}

// FormatDocument renders the whole document, or the subset in view, for
// the terminal.
func FormatDocument(doc *domain.Document, view filter.View, crit filter.Criteria) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(domain.CoalesceStr(doc.ExportTitle, domain.DefaultExportTitle)))
	if doc.Username != "" {
		b.WriteString("  " + Dim("by "+doc.Username))
	}
	b.WriteString("\n\n")
	b.WriteString(FormatLegend(doc.Levels, crit.LevelID))
	b.WriteString("\n")

	if crit.Active() {
		b.WriteString("\n" + Dim(DescribeCriteria(doc, crit)) + "\n")
	}

	if len(view.Categories) == 0 {
		if crit.Active() {
			b.WriteString("\n" + Dim("No matches.") + "\n")
		} else {
			b.WriteString("\n" + Dim("No categories yet.") + "\n")
		}
		return b.String()
	}

	for _, c := range view.Categories {
		b.WriteString("\n")
		b.WriteString(FormatCategory(doc, c, CategoryOptions{
			Highlights: view.Highlights,
			Cursor:     -1,
			Column:     -1,
		}))
	}
	return b.String()
}

// cursorMarker returns marker, or the default cursor marker when blank.
func cursorMarker(marker string) string {
	return domain.CoalesceStr(marker, "›")
}

// DescribeCriteria summarizes active filter criteria in one line.
func DescribeCriteria(doc *domain.Document, crit filter.Criteria) string {
	var parts []string
	if crit.LevelID != "" {
		parts = append(parts, fmt.Sprintf("level: %s", doc.ResolveLevel(crit.LevelID).Name))
	}
	if term := strings.TrimSpace(crit.Term); term != "" {
		mode := "contains"
		if crit.Exact {
			mode = "exact"
		}
		parts = append(parts, fmt.Sprintf("search (%s): %q", mode, term))
	}
	return "Filtered by " + strings.Join(parts, ", ")
}

// FormatSummary is the one-line description printed after a command
// changes a document.
func FormatSummary(doc *domain.Document) string {
	return fmt.Sprintf("%s, %s, %s",
		Count(len(doc.Levels), "level", "levels"),
		Count(len(doc.Categories), "category", "categories"),
		Count(doc.EntryCount(), "entry", "entries"),
	)
}
