package codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/ids"
)

// prefyLine matches "Category (prop1, prop2): entry1, entry2".
var prefyLine = regexp.MustCompile(`^([^(]+)\(([^)]+)\):\s*(.+)$`)

// ParseWarning describes a skipped line of compact text. It is a
// diagnostic, not an error.
type ParseWarning struct {
	Line   int
	Text   string
	Reason string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

// ParsePrefy builds a document from compact text. Blank lines and lines
// starting with # are ignored. Lines that do not parse are skipped and
// reported. Properties are level-typed, every value starts at "none" and
// ids are derived from names and positions, so equal input gives equal ids.
func ParsePrefy(content string) (*domain.Document, []ParseWarning) {
	doc := domain.NewDefaultDocument()
	var warnings []ParseWarning

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, props, entries, reason := parsePrefyLine(line)
		if reason != "" {
			warnings = append(warnings, ParseWarning{Line: i + 1, Text: line, Reason: reason})
			continue
		}
		doc.Categories = append(doc.Categories, prefyCategory(name, props, entries, len(doc.Categories)))
	}
	return doc, warnings
}

func parsePrefyLine(line string) (name string, props, entries []string, reason string) {
	m := prefyLine.FindStringSubmatch(line)
	if m == nil {
		return "", nil, nil, "expected 'Category (props): entries'"
	}
	name = strings.TrimSpace(m[1])
	props = splitList(m[2])
	entries = splitList(m[3])
	if name == "" || len(props) == 0 || len(entries) == 0 {
		return "", nil, nil, "missing category name, properties or entries"
	}
	return name, props, entries, ""
}

func prefyCategory(name string, props, entries []string, index int) *domain.Category {
	cat := &domain.Category{
		ID:         ids.Derived("cat", name, index),
		Name:       name,
		Properties: make([]domain.Property, len(props)),
		Entries:    make([]*domain.Entry, len(entries)),
	}
	for i, p := range props {
		cat.Properties[i] = domain.NewProperty(p, string(domain.PropertyLevel))
	}
	for j, e := range entries {
		cat.Entries[j] = &domain.Entry{
			ID:     ids.DerivedChild("entry", cat.ID, e, j),
			Name:   e,
			Values: domain.FillValues(nil, cat.Properties),
		}
	}
	return cat
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
