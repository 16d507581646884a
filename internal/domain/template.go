package domain

import "time"

// TemplateSource records the file format a catalog template was added from.
type TemplateSource string

const (
	SourceJSON  TemplateSource = "json"
	SourceYAML  TemplateSource = "yaml"
	SourcePrefy TemplateSource = "prefy"
)

// Template is a named starter document stored in the catalog. Body holds
// the document as a JSON snapshot.
type Template struct {
	Name          string
	Title         string
	Body          []byte
	Source        TemplateSource
	CategoryCount int
	EntryCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
