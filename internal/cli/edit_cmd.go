package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the document in an interactive grid",
		Long: "Open the --file document in a full-screen editor. A missing file starts from the\n" +
			"starter template; a .prefy file is saved alongside as .json.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("edit needs an interactive terminal")
			}

			state, err := app.openEditorState(cmd.Context(), domain.CoalesceStr(template, app.DefaultTemplate))
			if err != nil {
				return err
			}

			p := tea.NewProgram(newAppModel(state), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if state.Dirty {
				fmt.Fprintln(cmd.ErrOrStderr(), "Unsaved changes were discarded.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "starter template when the file does not exist")

	return cmd
}

// openEditorState loads the --file document for interactive editing. A
// missing file is bootstrapped from the template and marked dirty so the
// first save creates it.
func (a *App) openEditorState(ctx context.Context, template string) (*SharedState, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	path := a.file
	res, err := a.Documents.Load(ctx, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		var doc *domain.Document
		if a.Templates != nil {
			doc = a.Templates.Bootstrap(ctx, template)
		} else {
			doc = domain.NewDefaultDocument()
		}
		state := newSharedState(ctx, a, doc, savePath(path))
		state.Dirty = true
		return state, nil
	case err != nil:
		return nil, err
	}

	state := newSharedState(ctx, a, res.Document, savePath(path))
	if state.Path != path {
		// Converted from the compact text format; nothing is on disk yet.
		state.Dirty = true
	}
	return state, nil
}

// savePath maps a document path to where the editor writes it. Compact
// text documents cannot be written, so they are saved as JSON next to the
// original.
func savePath(path string) string {
	if codec.FormatFromPath(path) != codec.FormatPrefy {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
}
