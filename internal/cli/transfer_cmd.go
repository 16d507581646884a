package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/codec"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var backup bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the document with the contents of FILE",
		Long: "Replace the document with a .json, .yaml or .prefy file. Unparseable .prefy\n" +
			"lines are reported and skipped. Use --backup to keep a timestamped copy of the\n" +
			"document being replaced.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Documents.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)

			out := cmd.OutOrStdout()
			if backup {
				path, err := app.Documents.Backup(cmd.Context(), app.file)
				if err != nil {
					return err
				}
				if path != "" {
					fmt.Fprintln(out, formatter.Dim("Backed up "+app.file+" to "+path))
				}
			} else if _, err := os.Stat(app.file); err == nil {
				fmt.Fprintln(out, formatter.Dim("Replacing "+app.file+" (no backup)"))
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := app.Documents.Save(cmd.Context(), app.file, res.Document); err != nil {
				return fmt.Errorf("saving %s: %w", app.file, err)
			}
			printDone(cmd, fmt.Sprintf("Imported %s into %s", args[0], app.file), res.Document)
			return nil
		},
	}

	cmd.Flags().BoolVar(&backup, "backup", false, "save a timestamped copy of the current document first")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the document as JSON, YAML or Markdown",
		Long: "Export the document. Without --out the file is named\n" +
			"<Prefix>[_<username>]_<date>_<time>.<ext> in the current directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := codec.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == codec.FormatPrefy {
				return fmt.Errorf("prefy is an import-only format; use json, yaml or md")
			}
			doc, err := app.loadDocument(cmd)
			if err != nil {
				return err
			}
			path, err := app.Documents.Export(cmd.Context(), doc, f, out)
			if err != nil {
				return err
			}
			printDone(cmd, "Exported "+path, nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(codec.FormatJSON), "json, yaml or md")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: generated name)")

	return cmd
}

func newConvertCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "convert FILE.prefy",
		Short: "Convert a compact .prefy file to a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Documents.Convert(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			printDone(cmd, fmt.Sprintf("Wrote %s: %s, %s", res.Out,
				formatter.Count(res.Categories, "category", "categories"),
				formatter.Count(res.Entries, "entry", "entries")), nil)
			if n := len(res.Warnings); n > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render(
					"  "+formatter.Count(n, "line", "lines")+" skipped"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: FILE with a .json extension)")

	return cmd
}

func newExampleCmd(app *App) *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a sample .prefy file to start from",
		Long:  "Write a sample .prefy file. Pass --out - to print it instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "-" {
				fmt.Fprint(cmd.OutOrStdout(), codec.Example)
				return nil
			}
			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", out)
				}
			}
			if err := os.WriteFile(out, []byte(codec.Example), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			printDone(cmd, "Wrote "+out, nil)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("  Load it with: prefy import "+out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", codec.ExampleFilename, "output path, or - for stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
