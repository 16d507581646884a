package editor

import (
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

func validateEntryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &domain.ValidationError{Field: "name", Message: "please enter an entry name"}
	}
	return name, nil
}

// AddEntry appends an entry to the category. values is keyed by property
// name; missing properties get their default and unknown keys are dropped.
// Value types are not checked against the property types.
func (e *Editor) AddEntry(categoryID, name, comment string, values map[string]domain.Value) (*domain.Entry, error) {
	name, err := validateEntryName(name)
	if err != nil {
		return nil, err
	}
	cat, ok := e.doc.FindCategory(categoryID)
	if !ok {
		return nil, &domain.NotFoundError{Kind: "category", ID: categoryID}
	}
	entry := &domain.Entry{
		ID:      e.ids.NewID("entry"),
		Name:    name,
		Comment: strings.TrimSpace(comment),
		Values:  domain.FillValues(values, cat.Properties),
	}
	cat.Entries = append(cat.Entries, entry)
	return entry, nil
}

// EditEntry replaces the entry's name, comment and values.
func (e *Editor) EditEntry(categoryID, entryID, name, comment string, values map[string]domain.Value) error {
	name, err := validateEntryName(name)
	if err != nil {
		return err
	}
	cat, ok := e.doc.FindCategory(categoryID)
	if !ok {
		return &domain.NotFoundError{Kind: "category", ID: categoryID}
	}
	entry, ok := cat.FindEntry(entryID)
	if !ok {
		return &domain.NotFoundError{Kind: "entry", ID: entryID}
	}
	entry.Name = name
	entry.Comment = strings.TrimSpace(comment)
	entry.Values = domain.FillValues(values, cat.Properties)
	return nil
}

// DeleteEntry removes the entry. Unknown ids are a no-op; the result
// reports whether anything was removed.
func (e *Editor) DeleteEntry(categoryID, entryID string) bool {
	cat, ok := e.doc.FindCategory(categoryID)
	if !ok {
		return false
	}
	i := cat.EntryIndex(entryID)
	if i < 0 {
		return false
	}
	cat.Entries = append(cat.Entries[:i], cat.Entries[i+1:]...)
	return true
}

// ReorderEntries moves the entry at from to position to within one category.
func (e *Editor) ReorderEntries(categoryID string, from, to int) error {
	cat, ok := e.doc.FindCategory(categoryID)
	if !ok {
		return &domain.NotFoundError{Kind: "category", ID: categoryID}
	}
	if err := checkReorder("entry", from, to, len(cat.Entries)); err != nil {
		return err
	}
	move(cat.Entries, from, to)
	return nil
}

// MoveEntry takes the entry at entryIndex out of the source category,
// remaps its values onto the target's properties and appends it to the
// target. An entry whose id is already taken in the target gets a fresh
// one. Moving within one category is a no-op. The result reports whether
// the document changed.
func (e *Editor) MoveEntry(sourceCategoryID, targetCategoryID string, entryIndex int) (bool, error) {
	if sourceCategoryID == targetCategoryID {
		return false, nil
	}
	src, ok := e.doc.FindCategory(sourceCategoryID)
	if !ok {
		return false, &domain.NotFoundError{Kind: "category", ID: sourceCategoryID}
	}
	dst, ok := e.doc.FindCategory(targetCategoryID)
	if !ok {
		return false, &domain.NotFoundError{Kind: "category", ID: targetCategoryID}
	}
	if err := checkIndex("entry", entryIndex, len(src.Entries)); err != nil {
		return false, err
	}

	entry := src.Entries[entryIndex]
	src.Entries = append(src.Entries[:entryIndex], src.Entries[entryIndex+1:]...)
	entry.Values = domain.RemapValues(entry.Values, dst.Properties)
	if _, taken := dst.FindEntry(entry.ID); taken {
		entry.ID = e.ids.NewID("entry")
	}
	dst.Entries = append(dst.Entries, entry)
	return true, nil
}

// SetEntryPropertyValue overwrites one cell. Unknown categories, entries or
// properties are ignored. The value is not checked against the property type.
func (e *Editor) SetEntryPropertyValue(categoryID, entryID, property string, v domain.Value) bool {
	cat, ok := e.doc.FindCategory(categoryID)
	if !ok {
		return false
	}
	entry, ok := cat.FindEntry(entryID)
	if !ok {
		return false
	}
	if _, ok := cat.Property(property); !ok || v.IsZero() {
		return false
	}
	if entry.Values == nil {
		entry.Values = make(map[string]domain.Value, len(cat.Properties))
	}
	entry.Values[property] = v
	return true
}
