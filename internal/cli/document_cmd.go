package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/codec"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/prefyhq/prefy/internal/filter"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var (
		template string
		from     string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new document from a starter template",
		Long: "Start a new document. The starter template is looked up in the catalog and then\n" +
			"in the templates directory; if it cannot be loaded the built-in default document is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(app.file); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", app.file)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			var doc *domain.Document
			switch {
			case from != "":
				res, err := app.Documents.Load(cmd.Context(), from)
				if err != nil {
					return err
				}
				printWarnings(cmd.ErrOrStderr(), res.Warnings)
				doc = res.Document
			case app.Templates != nil:
				doc = app.Templates.Bootstrap(cmd.Context(), domain.CoalesceStr(template, app.DefaultTemplate))
			default:
				doc = domain.NewDefaultDocument()
			}

			if err := app.Documents.Save(cmd.Context(), app.file, doc); err != nil {
				return fmt.Errorf("saving %s: %w", app.file, err)
			}
			printDone(cmd, "Created "+app.file, doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "starter template name or number (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "start from an existing .json, .yaml or .prefy file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.MarkFlagsMutuallyExclusive("template", "from")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var (
		level    string
		search   string
		exact    bool
		markdown bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the document, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.loadDocument(cmd)
			if err != nil {
				return err
			}

			crit := filter.Criteria{Term: search, Exact: exact}
			if level != "" {
				i, err := resolveLevel(doc, level)
				if err != nil {
					return err
				}
				crit.LevelID = doc.Levels[i].ID
			}
			view := filter.Apply(doc.Categories, crit)

			out := cmd.OutOrStdout()
			if markdown {
				shown := *doc
				shown.Categories = view.Categories
				fmt.Fprintln(out, formatter.RenderMarkdown(codec.RenderMarkdown(&shown, app.now()), width))
				return nil
			}
			fmt.Fprint(out, formatter.FormatDocument(doc, view, crit))
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "only entries holding this level (name, id or number)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only categories or entries whose name contains this text")
	cmd.Flags().BoolVar(&exact, "exact", false, "match the search text against whole names")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the Markdown export instead of tables")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for --markdown")

	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	var (
		username string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the username and export title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed("username") || cmd.Flags().Changed("title")
			if !changed {
				doc, err := app.loadDocument(cmd)
				if err != nil {
					return err
				}
				printSettings(cmd, doc)
				return nil
			}

			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				if cmd.Flags().Changed("username") {
					ed.SetUsername(username)
				}
				if cmd.Flags().Changed("title") {
					ed.SetExportTitle(title)
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSettings(cmd, doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "name shown in export subtitles")
	cmd.Flags().StringVar(&title, "title", "", "export title")

	return cmd
}

func printSettings(cmd *cobra.Command, doc *domain.Document) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.Header("Settings"))
	fmt.Fprintf(out, "  Username:  %s\n", domain.CoalesceStr(doc.Username, formatter.Dim("(anonymous)")))
	fmt.Fprintf(out, "  Title:     %s\n", domain.CoalesceStr(doc.ExportTitle, domain.DefaultExportTitle))
}
