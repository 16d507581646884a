package cli

import (
	"context"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/dragdrop"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/prefyhq/prefy/internal/filter"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App
	Ctx context.Context

	Editor *editor.Editor
	Drag   *dragdrop.Protocol
	Filter filter.Criteria

	// Path is where Save writes. Dirty is set by every mutation and
	// cleared by a successful save.
	Path  string
	Dirty bool

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(ctx context.Context, app *App, doc *domain.Document, path string) *SharedState {
	ed := app.newEditor(doc)
	return &SharedState{
		App:    app,
		Ctx:    ctx,
		Editor: ed,
		Drag:   dragdrop.New(ed),
		Path:   path,
	}
}

// Document returns the document being edited.
func (s *SharedState) Document() *domain.Document {
	return s.Editor.Document()
}

// Save writes the document to Path.
func (s *SharedState) Save() error {
	if err := s.App.Documents.Save(s.Ctx, s.Path, s.Document()); err != nil {
		return err
	}
	s.Dirty = false
	return nil
}

// ContentHeight is the number of lines available to the active view.
func (s *SharedState) ContentHeight() int {
	const chrome = 5 // header, separator, status line, separator, hints
	if s.Height <= chrome {
		return 0
	}
	return s.Height - chrome
}
