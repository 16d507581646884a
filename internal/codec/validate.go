package codec

import (
	"fmt"
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

// ValidateSnapshot checks the structural requirements of a decoded
// snapshot. Returns every problem found.
func ValidateSnapshot(s *SnapshotSchema) []error {
	var errs []error

	if s.Levels == nil {
		errs = append(errs, fmt.Errorf("levels is required"))
	}
	if s.Categories == nil {
		errs = append(errs, fmt.Errorf("categories is required"))
	}

	levelIDs := make(map[string]bool, len(s.Levels))
	for i, l := range s.Levels {
		if l.ID == "" {
			errs = append(errs, fmt.Errorf("levels[%d].id is required", i))
			continue
		}
		if levelIDs[l.ID] {
			errs = append(errs, fmt.Errorf("levels[%d].id: duplicate id %q", i, l.ID))
		}
		levelIDs[l.ID] = true
	}

	catIDs := make(map[string]bool, len(s.Categories))
	for i, c := range s.Categories {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("categories[%d].id is required", i))
		} else if catIDs[c.ID] {
			errs = append(errs, fmt.Errorf("categories[%d].id: duplicate id %q", i, c.ID))
		}
		catIDs[c.ID] = true
		entryIDs := make(map[string]bool, len(c.Entries))
		for j, e := range c.Entries {
			if e.ID == "" {
				errs = append(errs, fmt.Errorf("categories[%d].entries[%d].id is required", i, j))
				continue
			}
			if entryIDs[e.ID] {
				errs = append(errs, fmt.Errorf("categories[%d].entries[%d].id: duplicate id %q", i, j, e.ID))
			}
			entryIDs[e.ID] = true
		}
	}

	return errs
}

func validationFailure(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &domain.FormatError{Reason: strings.Join(msgs, "; ")}
}
