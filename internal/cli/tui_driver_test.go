package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with editor-specific inspection methods.
// It provides access to appModel internals (view stack, shared state)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver opens doc in the editor, saved under a temporary path.
// It constructs the appModel, sets terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App, doc *domain.Document) *TestDriver {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, app.Documents.Save(context.Background(), path, doc))
	state := newSharedState(context.Background(), app, doc, path)

	d := teatest.New(t, newAppModel(state), teatest.WithSize(100, 60))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Doc returns the document being edited.
func (d *TestDriver) Doc() *domain.Document {
	return d.State().Document()
}

// Status returns the current status line text.
func (d *TestDriver) Status() string {
	return d.appModel().status
}

// IsQuitting returns whether the app has signaled a quit.
// Checks model.quitting (Ctrl+C/quitMsg) and the driver's Quitting flag
// (tea.QuitMsg seen while draining).
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
