package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/config"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/prefyhq/prefy/internal/ids"
	"github.com/prefyhq/prefy/internal/service"
	"github.com/spf13/cobra"
)

// DefaultFile is the document path used when --file is not given.
const DefaultFile = "prefy.json"

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Documents service.DocumentService
	Templates service.TemplateService

	// DefaultTemplate seeds `new` when --template is not given.
	DefaultTemplate string

	// IDs generates level, category and entry ids. Nil means UUIDs.
	IDs ids.Generator

	// Now is the clock used for export names and timestamps. Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal; `edit` refuses
	// to start without one. Nil means not interactive.
	IsInteractive func() bool

	// Setup, when set, runs before every command with the parsed flags so
	// the caller can wire services from configuration.
	Setup func(cmd *cobra.Command) error

	file string
}

// NewRootCmd creates the top-level "prefy" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "prefy",
		Short:         "Build and share preference lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&app.file, "file", "f", DefaultFile, "document file (.json, .yaml or .prefy)")
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newNewCmd(app),
		newShowCmd(app),
		newSettingsCmd(app),
		newLevelCmd(app),
		newCategoryCmd(app),
		newEntryCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newConvertCmd(app),
		newExampleCmd(app),
		newTemplateCmd(app),
		newEditCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) newEditor(doc *domain.Document) *editor.Editor {
	if a.IDs == nil {
		return editor.New(doc)
	}
	return editor.New(doc, editor.WithIDs(a.IDs))
}

// loadDocument reads the --file document and reports compact-text parse
// warnings on the command's error stream.
func (a *App) loadDocument(cmd *cobra.Command) (*domain.Document, error) {
	res, err := a.Documents.Load(cmd.Context(), a.file)
	if err != nil {
		return nil, err
	}
	printWarnings(cmd.ErrOrStderr(), res.Warnings)
	return res.Document, nil
}

// mutate loads the --file document, applies fn through an editor and saves
// the result. Nothing is written when fn fails.
func (a *App) mutate(cmd *cobra.Command, fn func(ed *editor.Editor) error) (*domain.Document, error) {
	doc, err := a.loadDocument(cmd)
	if err != nil {
		return nil, err
	}
	ed := a.newEditor(doc)
	if err := fn(ed); err != nil {
		return nil, err
	}
	if err := a.Documents.Save(cmd.Context(), a.file, ed.Document()); err != nil {
		return nil, fmt.Errorf("saving %s: %w", a.file, err)
	}
	return ed.Document(), nil
}

func printWarnings(w io.Writer, warnings []codec.ParseWarning) {
	for _, pw := range warnings {
		fmt.Fprintln(w, formatter.StyleYellow.Render("warning: ")+pw.String())
	}
}

func printDone(cmd *cobra.Command, msg string, doc *domain.Document) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.StyleGreen.Render("✔ ")+msg)
	if doc != nil {
		fmt.Fprintln(out, formatter.Dim("  "+formatter.FormatSummary(doc)))
	}
}
