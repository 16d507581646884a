package editor

import (
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

func validateCategory(name string, props []domain.Property) (string, []domain.Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, &domain.ValidationError{Field: "name", Message: "please enter a category name"}
	}
	props = domain.CleanProperties(props)
	if len(props) == 0 {
		return "", nil, &domain.ValidationError{Field: "properties", Message: "please add at least one property"}
	}
	return name, props, nil
}

// AddCategory appends an empty category. Blank property names are dropped
// before validation.
func (e *Editor) AddCategory(name string, props []domain.Property) (*domain.Category, error) {
	name, props, err := validateCategory(name, props)
	if err != nil {
		return nil, err
	}
	cat := &domain.Category{
		ID:         e.ids.NewID("cat"),
		Name:       name,
		Properties: props,
		Entries:    []*domain.Entry{},
	}
	e.doc.Categories = append(e.doc.Categories, cat)
	return cat, nil
}

// EditCategory renames the category and replaces its property list, then
// rewrites every entry's values to match the new properties.
func (e *Editor) EditCategory(id, name string, props []domain.Property) error {
	name, props, err := validateCategory(name, props)
	if err != nil {
		return err
	}
	cat, ok := e.doc.FindCategory(id)
	if !ok {
		return &domain.NotFoundError{Kind: "category", ID: id}
	}
	cat.Name = name
	cat.Properties = props
	for _, entry := range cat.Entries {
		entry.Values = domain.RemapValues(entry.Values, props)
	}
	return nil
}

// DeleteCategory removes the category and all of its entries. It reports
// whether anything was removed.
func (e *Editor) DeleteCategory(id string) bool {
	i := e.doc.CategoryIndex(id)
	if i < 0 {
		return false
	}
	e.doc.Categories = append(e.doc.Categories[:i], e.doc.Categories[i+1:]...)
	return true
}

// ReorderCategories moves the category at from to position to.
func (e *Editor) ReorderCategories(from, to int) error {
	if err := checkReorder("category", from, to, len(e.doc.Categories)); err != nil {
		return err
	}
	move(e.doc.Categories, from, to)
	return nil
}
