package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/prefyhq/prefy/internal/domain"
)

// RenderMarkdown lays the document out like the image export: title,
// subtitle, level legend, then one table per category.
func RenderMarkdown(doc *domain.Document, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(domain.CoalesceStr(doc.ExportTitle, domain.DefaultExportTitle)))
	fmt.Fprintf(&b, "_%s_\n\n", Subtitle(doc.Username, now))

	if len(doc.Levels) > 0 {
		names := make([]string, len(doc.Levels))
		for i, l := range doc.Levels {
			names[i] = escapeMarkdown(l.Name)
		}
		fmt.Fprintf(&b, "**Levels:** %s\n\n", strings.Join(names, " · "))
	}

	for _, c := range doc.Categories {
		fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(c.Name))
		if len(c.Entries) == 0 {
			b.WriteString("_No entries._\n\n")
			continue
		}

		header := []string{"Entry"}
		for _, p := range c.Properties {
			header = append(header, escapeMarkdown(p.Name))
		}
		writeRow(&b, header)
		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(&b, sep)

		var comments []string
		for _, e := range c.Entries {
			row := []string{escapeMarkdown(e.Name)}
			for _, p := range c.Properties {
				v, _ := e.Value(p.Name)
				row = append(row, escapeMarkdown(doc.DisplayValue(v)))
			}
			writeRow(&b, row)
			if e.Comment != "" {
				comments = append(comments, fmt.Sprintf("- **%s:** %s", escapeMarkdown(e.Name), escapeMarkdown(e.Comment)))
			}
		}
		b.WriteString("\n")
		if len(comments) > 0 {
			b.WriteString(strings.Join(comments, "\n"))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Subtitle returns "Created by <user> at <time> on <date>", omitting the
// user when blank.
func Subtitle(username string, now time.Time) string {
	at := now.Format("15:04")
	on := now.Format("January 2, 2006")
	if u := strings.TrimSpace(username); u != "" {
		return fmt.Sprintf("Created by %s at %s on %s", u, at, on)
	}
	return fmt.Sprintf("Created at %s on %s", at, on)
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// markdownEscaper keeps cell text on one table row and out of emphasis.
var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\r", " ", "\n", " ", "*", `\*`, "_", `\_`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
