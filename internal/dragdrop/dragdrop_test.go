package dragdrop

import (
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/prefyhq/prefy/internal/ids"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtocol(t *testing.T) (*Protocol, *domain.Document) {
	t.Helper()
	doc := testutil.NewTestDocument(
		testutil.WithCategory(testutil.FoodCategory()),
		testutil.WithCategory(testutil.ActivitiesCategory()),
	)
	return New(editor.New(doc, editor.WithIDs(ids.NewSequence(1)))), doc
}

func entryIDs(c *domain.Category) []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.ID
	}
	return out
}

func TestDrop_ReordersLevels(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(LevelDrag{From: 1})
	changed, err := p.Drop(LevelTarget{Index: 3})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "favorite", doc.Levels[3].ID)
	assert.False(t, p.Dragging())
}

func TestDrop_ReordersCategories(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(CategoryDrag{From: 0})
	changed, err := p.Drop(CategoryTarget{Index: 1})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "cat_activities", doc.Categories[0].ID)
}

func TestDrop_ReordersEntriesWithinCategory(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(EntryDrag{CategoryID: "cat_food", From: 0})
	changed, err := p.Drop(EntryTarget{CategoryID: "cat_food", Index: 1})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"entry_sushi", "entry_pizza"}, entryIDs(doc.Categories[0]))
}

func TestDrop_SameIndexIsNoOp(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		target  Target
	}{
		{"level", LevelDrag{From: 2}, LevelTarget{Index: 2}},
		{"category", CategoryDrag{From: 1}, CategoryTarget{Index: 1}},
		{"entry", EntryDrag{CategoryID: "cat_food", From: 1}, EntryTarget{CategoryID: "cat_food", Index: 1}},
		{"entry onto own body", EntryDrag{CategoryID: "cat_food", From: 1}, CategoryBodyTarget{CategoryID: "cat_food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, doc := newProtocol(t)
			p.Start(tt.session)
			changed, err := p.Drop(tt.target)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.False(t, p.Dragging())
			assert.Equal(t, []string{"entry_pizza", "entry_sushi"}, entryIDs(doc.Categories[0]))
		})
	}
}

func TestDrop_KindMismatchIsNoOp(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		target  Target
	}{
		{"category onto entry", CategoryDrag{From: 0}, EntryTarget{CategoryID: "cat_food", Index: 1}},
		{"level onto category", LevelDrag{From: 0}, CategoryTarget{Index: 1}},
		{"entry onto level", EntryDrag{CategoryID: "cat_food", From: 0}, LevelTarget{Index: 3}},
		{"category onto body", CategoryDrag{From: 0}, CategoryBodyTarget{CategoryID: "cat_activities"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, doc := newProtocol(t)
			p.Start(tt.session)
			changed, err := p.Drop(tt.target)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.False(t, p.Dragging())
			assert.Equal(t, "cat_food", doc.Categories[0].ID)
			assert.Equal(t, domain.NoneLevelID, doc.Levels[0].ID)
		})
	}
}

func TestDrop_EntryOntoOtherCategoryBodyMoves(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(EntryDrag{CategoryID: "cat_food", From: 0})
	changed, err := p.Drop(CategoryBodyTarget{CategoryID: "cat_activities"})
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, []string{"entry_sushi"}, entryIDs(doc.Categories[0]))
	acts := doc.Categories[1]
	assert.Equal(t, []string{"entry_hiking", "entry_chess", "entry_pizza"}, entryIDs(acts))
	assert.Empty(t, testutil.AssertValuesMatchProperties(doc))
}

func TestDrop_EntryOntoOtherCategoryEntryMoves(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(EntryDrag{CategoryID: "cat_activities", From: 1})
	changed, err := p.Drop(EntryTarget{CategoryID: "cat_food", Index: 0})
	require.NoError(t, err)
	assert.True(t, changed)

	food := doc.Categories[0]
	assert.Equal(t, []string{"entry_pizza", "entry_sushi", "entry_chess"}, entryIDs(food))
	chess := food.Entries[2]
	assert.True(t, chess.Values["Taste"].Is(domain.NoneLevelID))
}

func TestDrop_ErrorStillClearsSession(t *testing.T) {
	p, _ := newProtocol(t)
	p.Start(LevelDrag{From: 0})
	changed, err := p.Drop(LevelTarget{Index: 99})
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Nil(t, p.Active())
}

func TestDrop_WithoutSession(t *testing.T) {
	p, _ := newProtocol(t)
	changed, err := p.Drop(LevelTarget{Index: 1})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCancel(t *testing.T) {
	p, doc := newProtocol(t)
	p.Start(CategoryDrag{From: 1})
	assert.Equal(t, CategoryDrag{From: 1}, p.Active())
	p.Cancel()
	assert.False(t, p.Dragging())

	changed, err := p.Drop(CategoryTarget{Index: 0})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "cat_food", doc.Categories[0].ID)
}

func TestDrop_NilTargetClearsSession(t *testing.T) {
	p, _ := newProtocol(t)
	p.Start(EntryDrag{CategoryID: "cat_food", From: 0})
	changed, err := p.Drop(nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, p.Dragging())
}
