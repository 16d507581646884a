// Package filter derives read-only views of a document's categories.
//
// Nothing here mutates its input. Filtered categories are shallow copies
// that share Entry pointers with the document.
package filter

import (
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

// Criteria is the active filter state of a view.
type Criteria struct {
	LevelID string
	Term    string
	Exact   bool
}

// Active reports whether any filter is set.
func (c Criteria) Active() bool {
	return c.LevelID != "" || strings.TrimSpace(c.Term) != ""
}

// Clear resets both filters.
func (c *Criteria) Clear() {
	*c = Criteria{}
}

// ToggleLevel selects levelID, or clears the level filter when levelID is
// already selected.
func (c *Criteria) ToggleLevel(levelID string) {
	if c.LevelID == levelID {
		c.LevelID = ""
		return
	}
	c.LevelID = levelID
}

// MatchKind says why a category survived a search.
type MatchKind int

const (
	MatchNone MatchKind = iota
	// MatchCategory means the category name matched and all entries passed.
	MatchCategory
	// MatchEntries means only some entries matched by name.
	MatchEntries
)

// Highlights records search hits for display.
type Highlights struct {
	Categories map[string]MatchKind
	Entries    map[string]bool
}

// Category returns the match kind for a category id.
func (h Highlights) Category(id string) MatchKind {
	if h.Categories == nil {
		return MatchNone
	}
	return h.Categories[id]
}

// Entry reports whether the entry id matched the search term by name.
func (h Highlights) Entry(id string) bool {
	return h.Entries[id]
}

// View is the result of applying Criteria.
type View struct {
	Categories []*domain.Category
	Highlights Highlights
}

// EntryHasLevel reports whether any of the entry's values references levelID.
// Scale and binary values never match.
func EntryHasLevel(e *domain.Entry, levelID string) bool {
	for _, v := range e.Values {
		if v.Is(levelID) {
			return true
		}
	}
	return false
}

// ByLevel keeps entries holding levelID in any property and drops
// categories left empty. An empty levelID returns cats unchanged.
func ByLevel(cats []*domain.Category, levelID string) []*domain.Category {
	if levelID == "" {
		return cats
	}
	out := make([]*domain.Category, 0, len(cats))
	for _, c := range cats {
		var kept []*domain.Entry
		for _, e := range c.Entries {
			if EntryHasLevel(e, levelID) {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out = append(out, withEntries(c, kept))
		}
	}
	return out
}

// BySearch matches term case-insensitively against category names first
// and entry names second. A matching category passes with all of its
// entries. A blank term returns cats unchanged.
func BySearch(cats []*domain.Category, term string, exact bool) ([]*domain.Category, Highlights) {
	hl := Highlights{Categories: map[string]MatchKind{}, Entries: map[string]bool{}}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return cats, hl
	}

	out := make([]*domain.Category, 0, len(cats))
	for _, c := range cats {
		if matches(c.Name, term, exact) {
			hl.Categories[c.ID] = MatchCategory
			out = append(out, withEntries(c, c.Entries))
			continue
		}
		var kept []*domain.Entry
		for _, e := range c.Entries {
			if matches(e.Name, term, exact) {
				kept = append(kept, e)
				hl.Entries[e.ID] = true
			}
		}
		if len(kept) > 0 {
			hl.Categories[c.ID] = MatchEntries
			out = append(out, withEntries(c, kept))
		}
	}
	return out, hl
}

// Apply runs the level filter and then the search filter.
func Apply(cats []*domain.Category, c Criteria) View {
	filtered := ByLevel(cats, c.LevelID)
	filtered, hl := BySearch(filtered, c.Term, c.Exact)
	return View{Categories: filtered, Highlights: hl}
}

func matches(name, term string, exact bool) bool {
	name = strings.ToLower(name)
	if exact {
		return name == term
	}
	return strings.Contains(name, term)
}

func withEntries(c *domain.Category, entries []*domain.Entry) *domain.Category {
	cp := *c
	cp.Entries = entries
	return &cp
}
