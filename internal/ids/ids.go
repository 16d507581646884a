// Package ids generates identifiers for levels, categories and entries.
//
// Generation is injected wherever ids are minted so tests can substitute a
// deterministic sequence for the default uuid-backed generator.
package ids

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator mints a new id with the given prefix ("level", "cat", "entry").
type Generator interface {
	NewID(prefix string) string
}

// UUID generates ids of the form <prefix>_<uuid>.
type UUID struct{}

func (UUID) NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

// Sequence generates <prefix>_<n> with a counter shared across prefixes.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence returns a Sequence whose first id ends in start.
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s_%d", prefix, s.next)
	s.next++
	return id
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and collapses every run of other characters to "_".
func Slug(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(name), "_")
}

// Derived builds the positional id used by the compact text format:
// <prefix>_<slug>_<index>.
func Derived(prefix, name string, index int) string {
	return fmt.Sprintf("%s_%s_%d", prefix, Slug(name), index)
}

// DerivedChild builds a positional id scoped to a derived parent id, so
// equal names under different parents never share an id:
// <prefix>_<parent scope>_<slug>_<index>.
func DerivedChild(prefix, parentID, name string, index int) string {
	_, scope, _ := strings.Cut(parentID, "_")
	return Derived(prefix+"_"+scope, name, index)
}
