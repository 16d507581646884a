package codec

import (
	"github.com/prefyhq/prefy/internal/domain"
)

// ToDocument converts a validated snapshot into a document. An absent
// export title gets the default, legacy properties are typed and every
// entry's values are keyed exactly by its category's properties.
func ToDocument(s *SnapshotSchema) *domain.Document {
	title := domain.DefaultExportTitle
	if s.ExportTitle != nil {
		title = *s.ExportTitle
	}
	doc := &domain.Document{
		Username:    s.Username,
		ExportTitle: title,
		Levels:      make([]domain.Level, 0, len(s.Levels)),
		Categories:  make([]*domain.Category, 0, len(s.Categories)),
	}
	for _, l := range s.Levels {
		doc.Levels = append(doc.Levels, domain.Level{ID: l.ID, Name: l.Name, Color: l.Color})
	}

	for _, c := range s.Categories {
		props := make([]domain.Property, 0, len(c.Properties))
		for _, raw := range c.Properties {
			if p := domain.NormalizeProperty(raw); p.Name != "" {
				props = append(props, p)
			}
		}
		cat := &domain.Category{
			ID:         c.ID,
			Name:       c.Name,
			Properties: props,
			Entries:    make([]*domain.Entry, 0, len(c.Entries)),
		}
		for _, e := range c.Entries {
			values := make(map[string]domain.Value, len(e.Levels))
			for name, raw := range e.Levels {
				if v, ok := domain.ValueFromRaw(raw); ok {
					values[name] = v
				}
			}
			cat.Entries = append(cat.Entries, &domain.Entry{
				ID:      e.ID,
				Name:    e.Name,
				Comment: e.Comment,
				Values:  domain.FillValues(values, props),
			})
		}
		doc.Categories = append(doc.Categories, cat)
	}
	return doc
}

// FromDocument converts a document to its exchange form. Properties are
// always written typed.
func FromDocument(doc *domain.Document) *SnapshotSchema {
	s := &SnapshotSchema{
		Username:    doc.Username,
		ExportTitle: &doc.ExportTitle,
		Levels:      make([]LevelSchema, 0, len(doc.Levels)),
		Categories:  make([]CategorySchema, 0, len(doc.Categories)),
	}
	for _, l := range doc.Levels {
		s.Levels = append(s.Levels, LevelSchema{ID: l.ID, Name: l.Name, Color: l.Color})
	}
	for _, c := range doc.Categories {
		cs := CategorySchema{
			ID:         c.ID,
			Name:       c.Name,
			Properties: make([]any, 0, len(c.Properties)),
			Entries:    make([]EntrySchema, 0, len(c.Entries)),
		}
		for _, p := range c.Properties {
			cs.Properties = append(cs.Properties, PropertySchema{Name: p.Name, Type: string(p.Type)})
		}
		for _, e := range c.Entries {
			levels := make(map[string]any, len(e.Values))
			for name, v := range e.Values {
				if !v.IsZero() {
					levels[name] = v.Raw()
				}
			}
			cs.Entries = append(cs.Entries, EntrySchema{
				ID:      e.ID,
				Name:    e.Name,
				Comment: e.Comment,
				Levels:  levels,
			})
		}
		s.Categories = append(s.Categories, cs)
	}
	return s
}
