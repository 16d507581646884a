package domain

import "strings"

// Property is a typed column on a category. Identity within a category is by Name.
type Property struct {
	Name string
	Type PropertyType
}

// NewProperty trims name and coerces typ to a known PropertyType.
func NewProperty(name string, typ string) Property {
	return Property{Name: strings.TrimSpace(name), Type: ParsePropertyType(typ)}
}

// NormalizeProperty accepts the legacy bare-name form (string), a decoded
// {name,type} object (map[string]any) or a Property, and returns a typed
// Property. Unknown shapes yield a Property with an empty name.
func NormalizeProperty(raw any) Property {
	switch x := raw.(type) {
	case string:
		return NewProperty(x, string(PropertyLevel))
	case Property:
		return NewProperty(x.Name, string(x.Type))
	case map[string]any:
		name, _ := x["name"].(string)
		typ, _ := x["type"].(string)
		return NewProperty(name, typ)
	default:
		return Property{Type: PropertyLevel}
	}
}

// CleanProperties normalizes props and drops those with blank names.
func CleanProperties(props []Property) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		p = NewProperty(p.Name, string(p.Type))
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RemapValues builds a value map keyed exactly by props. A value is carried
// over when an existing key matches the property name and holds the
// property's type; otherwise the property's default is used. Keys not in
// props are dropped.
func RemapValues(values map[string]Value, props []Property) map[string]Value {
	out := make(map[string]Value, len(props))
	for _, p := range props {
		if v, ok := values[p.Name]; ok && v.Type() == p.Type {
			out[p.Name] = v
			continue
		}
		out[p.Name] = DefaultValue(p.Type)
	}
	return out
}

// FillValues keys values exactly by props without checking types: given
// values are kept as-is, missing ones get the property default and extra
// keys are dropped.
func FillValues(values map[string]Value, props []Property) map[string]Value {
	out := make(map[string]Value, len(props))
	for _, p := range props {
		if v, ok := values[p.Name]; ok && !v.IsZero() {
			out[p.Name] = v
			continue
		}
		out[p.Name] = DefaultValue(p.Type)
	}
	return out
}
