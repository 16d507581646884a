package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prefyhq/prefy/internal/domain"
)

// FormatTemplateList renders the catalog as a numbered table inside a box.
// The numbers are the 1-based positions accepted wherever a template name is.
func FormatTemplateList(templates []*domain.Template, now time.Time) string {
	headers := []string{"#", "NAME", "TITLE", "SOURCE", "CATEGORIES", "ENTRIES", "UPDATED"}
	rows := make([][]string, 0, len(templates))

	for i, t := range templates {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			Bold(t.Name),
			StyleFg.Render(Truncate(t.Title, 32)),
			SourceBadge(t.Source),
			strconv.Itoa(t.CategoryCount),
			strconv.Itoa(t.EntryCount),
			Dim(HumanTimestamp(t.UpdatedAt, now)),
		})
	}

	return RenderBox("Templates", strings.TrimRight(RenderTable(headers, rows), "\n"))
}

// FormatTemplateShow renders a template's metadata card.
func FormatTemplateShow(t *domain.Template, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleBold.Render(t.Name), SourceBadge(t.Source)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TITLE     "), t.Title))
	b.WriteString(fmt.Sprintf("  %s  %s, %s\n", StyleDim.Render("CONTENTS  "),
		Count(t.CategoryCount, "category", "categories"),
		Count(t.EntryCount, "entry", "entries")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("ADDED     "), Dim(HumanTimestamp(t.CreatedAt, now))))
	b.WriteString(fmt.Sprintf("  %s  %s", StyleDim.Render("UPDATED   "), Dim(HumanTimestamp(t.UpdatedAt, now))))

	return RenderBox("", b.String())
}

// SourceBadge renders the template's original file format.
func SourceBadge(s domain.TemplateSource) string {
	switch s {
	case domain.SourceJSON:
		return StyleBlue.Render("json")
	case domain.SourceYAML:
		return StylePurple.Render("yaml")
	case domain.SourcePrefy:
		return StyleGreen.Render("prefy")
	default:
		return StyleDim.Render("-")
	}
}
