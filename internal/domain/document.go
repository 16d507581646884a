package domain

import "fmt"

// Level is a named, colored tier usable as the value of a level property.
type Level struct {
	ID    string
	Name  string
	Color string
}

// Entry is a named item within a category holding one value per property.
type Entry struct {
	ID      string
	Name    string
	Comment string
	Values  map[string]Value
}

// Value returns the entry's value for the named property.
func (e *Entry) Value(property string) (Value, bool) {
	v, ok := e.Values[property]
	return v, ok
}

// Category groups entries that share one property schema.
type Category struct {
	ID         string
	Name       string
	Properties []Property
	Entries    []*Entry
}

// PropertyNames returns the property names in column order.
func (c *Category) PropertyNames() []string {
	names := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		names[i] = p.Name
	}
	return names
}

// Property looks up a property by name.
func (c *Category) Property(name string) (Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// EntryIndex returns the position of the entry with id, or -1.
func (c *Category) EntryIndex(id string) int {
	for i, e := range c.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// FindEntry returns the entry with id.
func (c *Category) FindEntry(id string) (*Entry, bool) {
	if i := c.EntryIndex(id); i >= 0 {
		return c.Entries[i], true
	}
	return nil, false
}

// Document is the complete state of one editing session.
type Document struct {
	Username    string
	ExportTitle string
	Levels      []Level
	Categories  []*Category
}

// DefaultLevels returns a fresh copy of the built-in level set.
func DefaultLevels() []Level {
	return []Level{
		{ID: NoneLevelID, Name: "None", Color: "#ffffff"},
		{ID: "favorite", Name: "Favorite", Color: "#90cdf4"},
		{ID: "liked", Name: "Liked", Color: "#48bb78"},
		{ID: "neutral", Name: "Neutral", Color: "#fbd38d"},
		{ID: "will-try", Name: "Will Try", Color: "#f6ad55"},
		{ID: "disliked", Name: "Disliked", Color: "#fc8181"},
		{ID: "hard-limit", Name: "Hard Limit", Color: "#f56565"},
	}
}

// NewDefaultDocument returns the document used when no template can be loaded.
func NewDefaultDocument() *Document {
	return &Document{
		ExportTitle: DefaultExportTitle,
		Levels:      DefaultLevels(),
		Categories:  []*Category{},
	}
}

// CategoryIndex returns the position of the category with id, or -1.
func (d *Document) CategoryIndex(id string) int {
	for i, c := range d.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// FindCategory returns the category with id.
func (d *Document) FindCategory(id string) (*Category, bool) {
	if i := d.CategoryIndex(id); i >= 0 {
		return d.Categories[i], true
	}
	return nil, false
}

// LevelIndex returns the position of the level with id, or -1.
func (d *Document) LevelIndex(id string) int {
	for i, l := range d.Levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// ResolveLevel maps a level id to a level for display. Unknown or dangling
// ids resolve to the level at position 0.
func (d *Document) ResolveLevel(id string) Level {
	if i := d.LevelIndex(id); i >= 0 {
		return d.Levels[i]
	}
	if len(d.Levels) > 0 {
		return d.Levels[0]
	}
	return Level{ID: NoneLevelID, Name: "None", Color: "#ffffff"}
}

// EntryCount returns the number of entries across all categories.
func (d *Document) EntryCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Entries)
	}
	return n
}

// DisplayValue renders a value the way exports show it: the level name,
// "n/10" for scales and Yes/No for binaries.
func (d *Document) DisplayValue(v Value) string {
	switch v.Type() {
	case PropertyScale:
		n, _ := v.Scale()
		return fmt.Sprintf("%d/%d", n, MaxScale)
	case PropertyBinary:
		if b, _ := v.Binary(); b {
			return "Yes"
		}
		return "No"
	case PropertyLevel:
		id, _ := v.Level()
		return d.ResolveLevel(id).Name
	default:
		return ""
	}
}
