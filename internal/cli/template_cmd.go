package cli

import (
	"fmt"
	"sort"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/filter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage the starter-template catalog",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateAddCmd(app),
		newTemplateShowCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateImportDirCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found.")
				fmt.Fprintln(out, formatter.Dim("Add one with: prefy template add FILE"))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatTemplateList(templates, app.now()))
			return nil
		},
	}
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Add or replace a template from a .json, .yaml or .prefy file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Templates.Add(cmd.Context(), name, args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			t := res.Template
			printDone(cmd, fmt.Sprintf("Saved template %s: %s, %s", formatter.Bold(t.Name),
				formatter.Count(t.CategoryCount, "category", "categories"),
				formatter.Count(t.EntryCount, "entry", "entries")), nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "catalog name (default: file name without extension)")

	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatTemplateShow(t, app.now()))

			if preview {
				doc, err := app.Templates.Load(cmd.Context(), t.Name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatDocument(doc, filter.Apply(doc.Categories, filter.Criteria{}), filter.Criteria{}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "also render the template's document")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a template from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Templates.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("template %q not found", args[0])
			}
			printDone(cmd, "Removed template "+args[0], nil)
			return nil
		},
	}
}

func newTemplateImportDirCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-dir DIR",
		Short: "Add every template file in DIR in one step",
		Long: "Add every .json, .yaml, .yml and .prefy file in DIR. If any file cannot be\n" +
			"read, nothing is added.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Templates.ImportDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			names := make([]string, 0, len(res.Warnings))
			for name := range res.Warnings {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, w := range res.Warnings[name] {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: ")+name+": "+w.String())
				}
			}

			printDone(cmd, "Imported "+formatter.Count(len(res.Imported), "template", "templates"), nil)
			for _, name := range res.Imported {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+name)
			}
			return nil
		},
	}
}
