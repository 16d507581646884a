package codec

// SnapshotSchema is the exchanged document format, shared by the JSON and
// YAML encodings. ExportTitle is nil when the key is absent.
type SnapshotSchema struct {
	Username    string           `json:"username" yaml:"username"`
	ExportTitle *string          `json:"exportTitle" yaml:"exportTitle"`
	Levels      []LevelSchema    `json:"levels" yaml:"levels"`
	Categories  []CategorySchema `json:"categories" yaml:"categories"`
}

// LevelSchema defines one level.
type LevelSchema struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// CategorySchema defines a category. Properties hold either a bare name
// (legacy) or a PropertySchema object.
type CategorySchema struct {
	ID         string        `json:"id" yaml:"id"`
	Name       string        `json:"name" yaml:"name"`
	Properties []any         `json:"properties" yaml:"properties"`
	Entries    []EntrySchema `json:"entries" yaml:"entries"`
}

// PropertySchema is the typed property form written by this program.
type PropertySchema struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// EntrySchema defines an entry. Levels maps property name to a string
// level id, a 0-10 number or a boolean.
type EntrySchema struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Comment string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Levels  map[string]any `json:"levels" yaml:"levels"`
}
