package cli

import (
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/prefyhq/prefy/internal/domain"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func validateOptionalColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || hexColorPattern.MatchString(s) {
		return nil
	}
	return errors.New("use a hex color like #48bb78")
}

func validatePropertySpecs(s string) error {
	specs := splitPropertySpecs(s)
	if len(specs) == 0 {
		return errors.New("add at least one property")
	}
	_, err := parseProperties(specs)
	return err
}

// splitPropertySpecs splits "Taste, Energy:scale" into its non-blank parts.
func splitPropertySpecs(s string) []string {
	var specs []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			specs = append(specs, part)
		}
	}
	return specs
}

// formatPropertySpecs is the inverse of splitPropertySpecs. Level
// properties are written as bare names.
func formatPropertySpecs(props []domain.Property) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = p.Name
		if p.Type != domain.PropertyLevel {
			parts[i] += ":" + string(p.Type)
		}
	}
	return strings.Join(parts, ", ")
}

func newForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(prefyHuhTheme()).WithShowHelp(false)
}

// categoryFormData backs the add/edit category form.
type categoryFormData struct {
	Name       string
	Properties string
}

func categoryForm(data *categoryFormData) *huh.Form {
	return newForm(
		huh.NewInput().
			Title("Category Name").
			Placeholder("Food").
			Value(&data.Name).
			Validate(validateRequired("name")),
		huh.NewInput().
			Title("Properties").
			Description("Comma separated. Add :scale or :binary for non-level columns.").
			Placeholder("Taste, Spiciness:scale, Tried:binary").
			Value(&data.Properties).
			Validate(validatePropertySpecs),
	)
}

func (d categoryFormData) properties() ([]domain.Property, error) {
	return parseProperties(splitPropertySpecs(d.Properties))
}

// entryFormData backs the add/edit entry form. Values are edited in the
// grid, not in the form.
type entryFormData struct {
	Name    string
	Comment string
}

func entryForm(data *entryFormData) *huh.Form {
	return newForm(
		huh.NewInput().
			Title("Entry Name").
			Value(&data.Name).
			Validate(validateRequired("name")),
		huh.NewInput().
			Title("Comment").
			Description("Optional note shown next to the entry.").
			Value(&data.Comment),
	)
}

// levelFormData backs the add/edit level form.
type levelFormData struct {
	Name  string
	Color string
}

func levelForm(data *levelFormData) *huh.Form {
	return newForm(
		huh.NewInput().
			Title("Level Name").
			Placeholder("New Level").
			Value(&data.Name),
		huh.NewInput().
			Title("Color").
			Placeholder("#cccccc").
			Value(&data.Color).
			Validate(validateOptionalColor),
	)
}

// settingsFormData backs the document settings form.
type settingsFormData struct {
	Username    string
	ExportTitle string
}

func settingsForm(data *settingsFormData) *huh.Form {
	return newForm(
		huh.NewInput().
			Title("Username").
			Description("Shown in the export subtitle. Leave blank to stay anonymous.").
			Value(&data.Username),
		huh.NewInput().
			Title("Export Title").
			Placeholder(domain.DefaultExportTitle).
			Value(&data.ExportTitle),
	)
}

func confirmForm(title string, value *bool) *huh.Form {
	return newForm(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(value),
	)
}
