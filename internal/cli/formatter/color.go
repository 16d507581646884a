package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/prefyhq/prefy/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleMatch  = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Underline(true)
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LevelColor returns the level's color, or the dim palette color when the
// stored value is not a hex color.
func LevelColor(l domain.Level) lipgloss.Color {
	if hexColor.MatchString(l.Color) {
		return lipgloss.Color(l.Color)
	}
	return ColorDim
}

// LevelBubble renders a colored dot followed by the level name, e.g. "● Liked".
func LevelBubble(l domain.Level) string {
	dot := lipgloss.NewStyle().Foreground(LevelColor(l)).Render("●")
	return dot + " " + StyleFg.Render(l.Name)
}

// LevelChip renders the level name on its own color, as used in the legend.
func LevelChip(l domain.Level) string {
	return lipgloss.NewStyle().
		Background(LevelColor(l)).
		Foreground(ColorBg).
		Padding(0, 1).
		Render(l.Name)
}

// ValueCell renders a single entry value for a category table.
func ValueCell(doc *domain.Document, v domain.Value) string {
	switch v.Type() {
	case domain.PropertyLevel:
		id, _ := v.Level()
		return LevelBubble(doc.ResolveLevel(id))
	case domain.PropertyScale:
		n, _ := v.Scale()
		style := StyleRed
		switch {
		case n >= 7:
			style = StyleGreen
		case n >= 4:
			style = StyleYellow
		}
		return style.Render(doc.DisplayValue(v))
	case domain.PropertyBinary:
		if b, _ := v.Binary(); b {
			return StyleGreen.Render("✔ " + doc.DisplayValue(v))
		}
		return StyleDim.Render("✘ " + doc.DisplayValue(v))
	default:
		return StyleDim.Render("-")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Match renders text as a search hit.
func Match(text string) string {
	return StyleMatch.Render(text)
}
