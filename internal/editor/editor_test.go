package editor

import (
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/ids"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(opts ...testutil.DocumentOption) *Editor {
	return New(testutil.NewTestDocument(opts...), WithIDs(ids.NewSequence(1)))
}

func TestNew_NilDocumentStartsFromDefault(t *testing.T) {
	e := New(nil)
	doc := e.Document()
	require.NotNil(t, doc)
	assert.Len(t, doc.Levels, 7)
	assert.Empty(t, doc.Categories)
	assert.Equal(t, domain.DefaultExportTitle, doc.ExportTitle)
}

func TestReplace_SwapsDocument(t *testing.T) {
	e := newTestEditor()
	other := testutil.NewTestDocument(testutil.WithCategory(testutil.FoodCategory()))
	e.Replace(other)
	assert.Same(t, other, e.Document())

	e.Replace(nil)
	assert.Empty(t, e.Document().Categories)
}

func TestSettings(t *testing.T) {
	e := newTestEditor()
	e.SetUsername("  alex ")
	assert.Equal(t, "alex", e.Document().Username)

	e.SetExportTitle("Weekend Plans")
	assert.Equal(t, "Weekend Plans", e.Document().ExportTitle)
	e.SetExportTitle("   ")
	assert.Equal(t, domain.DefaultExportTitle, e.Document().ExportTitle)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same index", 1, 1, []string{"a", "b", "c", "d"}},
		{"to end", 0, 3, []string{"b", "c", "d", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []string{"a", "b", "c", "d"}
			move(items, tt.from, tt.to)
			assert.Equal(t, tt.want, items)
		})
	}
}
