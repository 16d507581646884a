// Package editor implements the mutation operations on a preference document.
//
// An Editor owns exactly one *domain.Document. Every exported method either
// completes its mutation or returns an error having changed nothing, and
// after each call every entry holds exactly one value per property of its
// category.
package editor

import (
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/ids"
)

const (
	newLevelName  = "New Level"
	newLevelColor = "#cccccc"
)

// Editor applies edits to a single document.
type Editor struct {
	doc *domain.Document
	ids ids.Generator
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDs replaces the id generator.
func WithIDs(g ids.Generator) Option {
	return func(e *Editor) {
		if g != nil {
			e.ids = g
		}
	}
}

// New returns an Editor over doc. A nil doc starts from the default document.
func New(doc *domain.Document, opts ...Option) *Editor {
	if doc == nil {
		doc = domain.NewDefaultDocument()
	}
	e := &Editor{doc: doc, ids: ids.UUID{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document being edited.
func (e *Editor) Document() *domain.Document { return e.doc }

// Replace swaps in a whole new document, as after an import.
func (e *Editor) Replace(doc *domain.Document) {
	if doc == nil {
		doc = domain.NewDefaultDocument()
	}
	e.doc = doc
}

// SetUsername updates the name shown on exports.
func (e *Editor) SetUsername(name string) {
	e.doc.Username = strings.TrimSpace(name)
}

// SetExportTitle updates the export title; blank restores the default.
func (e *Editor) SetExportTitle(title string) {
	e.doc.ExportTitle = domain.CoalesceStr(strings.TrimSpace(title), domain.DefaultExportTitle)
}

// move removes the element at from and reinserts it at to.
func move[T any](items []T, from, to int) {
	if from == to {
		return
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
}

func checkIndex(kind string, index, n int) error {
	if index < 0 || index >= n {
		return &domain.InvalidIndexError{Kind: kind, Index: index, Len: n}
	}
	return nil
}

func checkReorder(kind string, from, to, n int) error {
	if err := checkIndex(kind, from, n); err != nil {
		return err
	}
	return checkIndex(kind, to, n)
}
