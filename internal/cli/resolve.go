package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

// Commands accept three kinds of reference for levels, categories and
// entries: a 1-based position as printed by `show`, an exact id, or a
// case-insensitive name.

// resolvePosition parses a 1-based position and returns the 0-based index,
// or -1 when ref is not a number in range.
func resolvePosition(ref string, n int) int {
	pos, err := strconv.Atoi(ref)
	if err != nil || pos < 1 || pos > n {
		return -1
	}
	return pos - 1
}

func resolveLevel(doc *domain.Document, ref string) (int, error) {
	if i := resolvePosition(ref, len(doc.Levels)); i >= 0 {
		return i, nil
	}
	if i := doc.LevelIndex(ref); i >= 0 {
		return i, nil
	}
	for i, l := range doc.Levels {
		if strings.EqualFold(l.Name, ref) {
			return i, nil
		}
	}
	return -1, &domain.NotFoundError{Kind: "level", ID: ref}
}

func resolveCategory(doc *domain.Document, ref string) (*domain.Category, int, error) {
	i := resolvePosition(ref, len(doc.Categories))
	if i < 0 {
		i = doc.CategoryIndex(ref)
	}
	if i < 0 {
		for j, c := range doc.Categories {
			if strings.EqualFold(c.Name, ref) {
				i = j
				break
			}
		}
	}
	if i < 0 {
		return nil, -1, &domain.NotFoundError{Kind: "category", ID: ref}
	}
	return doc.Categories[i], i, nil
}

func resolveEntry(c *domain.Category, ref string) (*domain.Entry, int, error) {
	i := resolvePosition(ref, len(c.Entries))
	if i < 0 {
		i = c.EntryIndex(ref)
	}
	if i < 0 {
		for j, e := range c.Entries {
			if strings.EqualFold(e.Name, ref) {
				i = j
				break
			}
		}
	}
	if i < 0 {
		return nil, -1, &domain.NotFoundError{Kind: "entry", ID: ref}
	}
	return c.Entries[i], i, nil
}

// resolveProperty finds a category property by case-insensitive name.
func resolveProperty(c *domain.Category, name string) (domain.Property, error) {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return domain.Property{}, &domain.NotFoundError{Kind: "property", ID: name}
}

// parseProperty parses a "Name" or "Name:type" property spec. A bare name
// is a level property.
func parseProperty(spec string) (domain.Property, error) {
	name, typ, found := strings.Cut(spec, ":")
	typ = strings.ToLower(strings.TrimSpace(typ))
	if !found || typ == "" {
		typ = string(domain.PropertyLevel)
	}
	if !domain.ValidPropertyTypes[typ] {
		return domain.Property{}, &domain.ValidationError{
			Field:   "property",
			Message: fmt.Sprintf("unknown type %q for %q (want level, scale or binary)", typ, strings.TrimSpace(name)),
		}
	}
	return domain.NewProperty(name, typ), nil
}

func parseProperties(specs []string) ([]domain.Property, error) {
	props := make([]domain.Property, 0, len(specs))
	for _, spec := range specs {
		p, err := parseProperty(spec)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// parseValue interprets raw according to the property type: a level
// reference, an integer 0..10, or yes/no.
func parseValue(doc *domain.Document, p domain.Property, raw string) (domain.Value, error) {
	raw = strings.TrimSpace(raw)
	switch p.Type {
	case domain.PropertyScale:
		n, err := strconv.Atoi(raw)
		if err != nil || n < domain.MinScale || n > domain.MaxScale {
			return domain.Value{}, &domain.ValidationError{
				Field:   p.Name,
				Message: fmt.Sprintf("scale value must be a whole number %d-%d, got %q", domain.MinScale, domain.MaxScale, raw),
			}
		}
		return domain.ScaleValue(n), nil
	case domain.PropertyBinary:
		switch strings.ToLower(raw) {
		case "yes", "y", "true", "1":
			return domain.BinaryValue(true), nil
		case "no", "n", "false", "0":
			return domain.BinaryValue(false), nil
		}
		return domain.Value{}, &domain.ValidationError{
			Field:   p.Name,
			Message: fmt.Sprintf("binary value must be yes or no, got %q", raw),
		}
	default:
		i, err := resolveLevel(doc, raw)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.LevelValue(doc.Levels[i].ID), nil
	}
}

// parseAssignments parses repeated "Property=value" flags against the
// category's schema. The result is keyed by the schema's property names.
func parseAssignments(doc *domain.Document, c *domain.Category, assigns []string) (map[string]domain.Value, error) {
	values := make(map[string]domain.Value, len(assigns))
	for _, a := range assigns {
		name, raw, ok := strings.Cut(a, "=")
		if !ok {
			return nil, &domain.ValidationError{Field: "set", Message: fmt.Sprintf("expected Property=value, got %q", a)}
		}
		p, err := resolveProperty(c, name)
		if err != nil {
			return nil, err
		}
		v, err := parseValue(doc, p, raw)
		if err != nil {
			return nil, err
		}
		values[p.Name] = v
	}
	return values, nil
}
