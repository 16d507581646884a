package editor

import (
	"strings"

	"github.com/prefyhq/prefy/internal/domain"
)

// AddLevel appends a level with a fresh id. Blank name or color fall back
// to placeholders. Existing entries are untouched.
func (e *Editor) AddLevel(name, color string) domain.Level {
	lvl := domain.Level{
		ID:    e.ids.NewID("level"),
		Name:  domain.CoalesceStr(strings.TrimSpace(name), newLevelName),
		Color: domain.CoalesceStr(strings.TrimSpace(color), newLevelColor),
	}
	e.doc.Levels = append(e.doc.Levels, lvl)
	return lvl
}

// UpdateLevel renames and recolors the level at index. Entries reference
// levels by id, so nothing else changes.
func (e *Editor) UpdateLevel(index int, name, color string) error {
	if err := checkIndex("level", index, len(e.doc.Levels)); err != nil {
		return err
	}
	lvl := &e.doc.Levels[index]
	lvl.Name = name
	if c := strings.TrimSpace(color); c != "" {
		lvl.Color = c
	}
	return nil
}

// DeleteLevel removes the level at index. Entries still referencing its id
// keep the dangling reference, which resolves to the first level on display.
func (e *Editor) DeleteLevel(index int) (domain.Level, error) {
	if err := checkIndex("level", index, len(e.doc.Levels)); err != nil {
		return domain.Level{}, err
	}
	removed := e.doc.Levels[index]
	e.doc.Levels = append(e.doc.Levels[:index], e.doc.Levels[index+1:]...)
	return removed, nil
}

// ReorderLevels moves the level at from to position to.
func (e *Editor) ReorderLevels(from, to int) error {
	if err := checkReorder("level", from, to, len(e.doc.Levels)); err != nil {
		return err
	}
	move(e.doc.Levels, from, to)
	return nil
}
