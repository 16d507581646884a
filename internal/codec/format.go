package codec

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prefyhq/prefy/internal/domain"
)

// Format is a file encoding of a document.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatPrefy    Format = "prefy"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "prefy":
		return FormatPrefy, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json, yaml, prefy or md)", s)
	}
}

// FormatFromPath picks the format by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// Decode reads a document in format f. Warnings are only produced by the
// compact text format. Markdown is export-only.
func Decode(f Format, data []byte) (*domain.Document, []ParseWarning, error) {
	switch f {
	case FormatJSON:
		doc, err := Deserialize(data)
		return doc, nil, err
	case FormatYAML:
		doc, err := DeserializeYAML(data)
		return doc, nil, err
	case FormatPrefy:
		doc, warnings := ParsePrefy(string(data))
		if len(doc.Categories) == 0 {
			return nil, warnings, &domain.FormatError{Reason: "no valid categories found"}
		}
		return doc, warnings, nil
	default:
		return nil, nil, fmt.Errorf("%s documents cannot be read", f)
	}
}

// Encode writes doc in format f. now stamps the Markdown subtitle.
func Encode(f Format, doc *domain.Document, now time.Time) ([]byte, error) {
	switch f {
	case FormatJSON:
		return Serialize(doc)
	case FormatYAML:
		return SerializeYAML(doc)
	case FormatMarkdown:
		return []byte(RenderMarkdown(doc, now)), nil
	default:
		return nil, fmt.Errorf("%s documents cannot be written", f)
	}
}

// Extension returns the file extension for f without the dot.
func (f Format) Extension() string {
	return string(f)
}

// GenerateFilename returns <prefix>[_<username>]_<YYYY-MM-DD>_<HH-MM-SS>.<ext>.
func GenerateFilename(prefix, username, ext string, now time.Time) string {
	user := ""
	if u := strings.TrimSpace(username); u != "" {
		user = "_" + u
	}
	return fmt.Sprintf("%s%s_%s.%s", prefix, user, now.Format("2006-01-02_15-04-05"), ext)
}
