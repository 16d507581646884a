package codec

import (
	"encoding/json"
	"fmt"

	"github.com/prefyhq/prefy/internal/domain"
)

// Serialize writes doc as indented JSON.
func Serialize(doc *domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(FromDocument(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

// Deserialize parses a JSON snapshot. It fails with *domain.FormatError
// when the text is not JSON or levels or categories are absent.
func Deserialize(data []byte) (*domain.Document, error) {
	var s SnapshotSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &domain.FormatError{Reason: "malformed JSON", Err: err}
	}
	return fromSchema(&s)
}

func fromSchema(s *SnapshotSchema) (*domain.Document, error) {
	if errs := ValidateSnapshot(s); len(errs) > 0 {
		return nil, validationFailure(errs)
	}
	return ToDocument(s), nil
}
