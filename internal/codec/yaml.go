package codec

import (
	"bytes"
	"fmt"

	"github.com/prefyhq/prefy/internal/domain"
	"gopkg.in/yaml.v3"
)

// SerializeYAML writes doc in the snapshot format encoded as YAML.
func SerializeYAML(doc *domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromDocument(doc)); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeYAML parses a YAML snapshot with the same rules as Deserialize.
func DeserializeYAML(data []byte) (*domain.Document, error) {
	var s SnapshotSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &domain.FormatError{Reason: "malformed YAML", Err: err}
	}
	return fromSchema(&s)
}
