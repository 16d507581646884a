package testutil

import (
	"github.com/prefyhq/prefy/internal/domain"
)

// LevelProp, ScaleProp and BinaryProp build typed properties.
func LevelProp(name string) domain.Property {
	return domain.Property{Name: name, Type: domain.PropertyLevel}
}

func ScaleProp(name string) domain.Property {
	return domain.Property{Name: name, Type: domain.PropertyScale}
}

func BinaryProp(name string) domain.Property {
	return domain.Property{Name: name, Type: domain.PropertyBinary}
}

// Document options
type DocumentOption func(*domain.Document)

func WithCategory(c *domain.Category) DocumentOption {
	return func(d *domain.Document) {
		d.Categories = append(d.Categories, c)
	}
}

func WithUsername(name string) DocumentOption {
	return func(d *domain.Document) {
		d.Username = name
	}
}

func WithExportTitle(title string) DocumentOption {
	return func(d *domain.Document) {
		d.ExportTitle = title
	}
}

func WithLevels(levels ...domain.Level) DocumentOption {
	return func(d *domain.Document) {
		d.Levels = levels
	}
}

// NewTestDocument returns a document with the default levels and no categories.
func NewTestDocument(opts ...DocumentOption) *domain.Document {
	d := domain.NewDefaultDocument()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Category options
type CategoryOption func(*domain.Category)

// WithEntry appends an entry. Properties absent from values get their default.
func WithEntry(id, name string, values map[string]domain.Value) CategoryOption {
	return func(c *domain.Category) {
		c.Entries = append(c.Entries, &domain.Entry{
			ID:     id,
			Name:   name,
			Values: domain.FillValues(values, c.Properties),
		})
	}
}

func WithComment(entryID, comment string) CategoryOption {
	return func(c *domain.Category) {
		if e, ok := c.FindEntry(entryID); ok {
			e.Comment = comment
		}
	}
}

func NewTestCategory(id, name string, props []domain.Property, opts ...CategoryOption) *domain.Category {
	c := &domain.Category{
		ID:         id,
		Name:       name,
		Properties: props,
		Entries:    []*domain.Entry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FoodCategory is a one-property category: Pizza is liked, Sushi disliked.
func FoodCategory() *domain.Category {
	return NewTestCategory("cat_food", "Food", []domain.Property{LevelProp("Taste")},
		WithEntry("entry_pizza", "Pizza", map[string]domain.Value{"Taste": domain.LevelValue("liked")}),
		WithEntry("entry_sushi", "Sushi", map[string]domain.Value{"Taste": domain.LevelValue("disliked")}),
	)
}

// ActivitiesCategory mixes all three property types.
func ActivitiesCategory() *domain.Category {
	return NewTestCategory("cat_activities", "Activities",
		[]domain.Property{LevelProp("Interest"), ScaleProp("Energy"), BinaryProp("Tried")},
		WithEntry("entry_hiking", "Hiking", map[string]domain.Value{
			"Interest": domain.LevelValue("favorite"),
			"Energy":   domain.ScaleValue(8),
			"Tried":    domain.BinaryValue(true),
		}),
		WithEntry("entry_chess", "Chess", map[string]domain.Value{
			"Interest": domain.LevelValue("neutral"),
		}),
	)
}

// AssertValuesMatchProperties reports the first entry whose value keys do not
// equal its category's property names, or "" when the document is consistent.
func AssertValuesMatchProperties(doc *domain.Document) string {
	for _, c := range doc.Categories {
		for _, e := range c.Entries {
			if len(e.Values) != len(c.Properties) {
				return c.ID + "/" + e.ID
			}
			for _, p := range c.Properties {
				if _, ok := e.Values[p.Name]; !ok {
					return c.ID + "/" + e.ID
				}
			}
		}
	}
	return ""
}

// Template options
type TemplateOption func(*domain.Template)

func WithTemplateTitle(title string) TemplateOption {
	return func(t *domain.Template) {
		t.Title = title
	}
}

func WithTemplateBody(body string) TemplateOption {
	return func(t *domain.Template) {
		t.Body = []byte(body)
	}
}

func WithTemplateCounts(categories, entries int) TemplateOption {
	return func(t *domain.Template) {
		t.CategoryCount = categories
		t.EntryCount = entries
	}
}

// NewTestTemplate returns a catalog template with a minimal valid body.
func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	t := &domain.Template{
		Name:   name,
		Title:  name,
		Body:   []byte(`{"levels":[],"categories":[]}`),
		Source: domain.SourceJSON,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
