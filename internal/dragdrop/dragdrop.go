// Package dragdrop implements reorder and move by drag session.
//
// A Session records what was picked up. A Target records where it was
// released. Drop dispatches the pair to the matching editor operation and
// always ends the session, whatever the outcome.
package dragdrop

import (
	"github.com/prefyhq/prefy/internal/editor"
)

// Session is the element being dragged. Implemented by LevelDrag,
// CategoryDrag and EntryDrag.
type Session interface {
	session()
}

type LevelDrag struct{ From int }

type CategoryDrag struct{ From int }

type EntryDrag struct {
	CategoryID string
	From       int
}

func (LevelDrag) session()    {}
func (CategoryDrag) session() {}
func (EntryDrag) session()    {}

// Target is where a session is released. Implemented by LevelTarget,
// CategoryTarget, EntryTarget and CategoryBodyTarget.
type Target interface {
	target()
}

type LevelTarget struct{ Index int }

type CategoryTarget struct{ Index int }

// EntryTarget is a drop onto a specific entry row.
type EntryTarget struct {
	CategoryID string
	Index      int
}

// CategoryBodyTarget is a drop onto a category but not onto an entry.
type CategoryBodyTarget struct{ CategoryID string }

func (LevelTarget) target()        {}
func (CategoryTarget) target()     {}
func (EntryTarget) target()        {}
func (CategoryBodyTarget) target() {}

// Protocol holds at most one active session over an editor.
type Protocol struct {
	ed     *editor.Editor
	active Session
}

func New(ed *editor.Editor) *Protocol {
	return &Protocol{ed: ed}
}

// Start begins a session, replacing any session already active.
func (p *Protocol) Start(s Session) {
	p.active = s
}

// Active returns the current session, or nil.
func (p *Protocol) Active() Session {
	return p.active
}

// Dragging reports whether a session is active.
func (p *Protocol) Dragging() bool {
	return p.active != nil
}

// Cancel ends the session without changing the document.
func (p *Protocol) Cancel() {
	p.active = nil
}

// Drop releases the active session on t. The result reports whether the
// document changed, so the caller knows to re-render. Drops onto a target
// of another kind, or back onto the origin, change nothing. The session is
// cleared on every path.
func (p *Protocol) Drop(t Target) (changed bool, err error) {
	s := p.active
	p.active = nil
	if s == nil || t == nil {
		return false, nil
	}
	return dispatch(p.ed, s, t)
}

func dispatch(ed *editor.Editor, s Session, t Target) (bool, error) {
	switch s := s.(type) {
	case LevelDrag:
		to, ok := t.(LevelTarget)
		if !ok || to.Index == s.From {
			return false, nil
		}
		return applied(ed.ReorderLevels(s.From, to.Index))

	case CategoryDrag:
		to, ok := t.(CategoryTarget)
		if !ok || to.Index == s.From {
			return false, nil
		}
		return applied(ed.ReorderCategories(s.From, to.Index))

	case EntryDrag:
		switch to := t.(type) {
		case EntryTarget:
			if to.CategoryID != s.CategoryID {
				return ed.MoveEntry(s.CategoryID, to.CategoryID, s.From)
			}
			if to.Index == s.From {
				return false, nil
			}
			return applied(ed.ReorderEntries(s.CategoryID, s.From, to.Index))
		case CategoryBodyTarget:
			return ed.MoveEntry(s.CategoryID, to.CategoryID, s.From)
		}
	}
	return false, nil
}

func applied(err error) (bool, error) {
	return err == nil, err
}
