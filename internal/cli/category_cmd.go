package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat", "categories"},
		Short:   "Manage categories and their properties",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryAddCmd(app),
		newCategoryEditCmd(app),
		newCategoryRemoveCmd(app),
		newCategoryMoveCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.loadDocument(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatCategoryTable(doc.Categories))
			return nil
		},
	}
}

func formatCategoryTable(cats []*domain.Category) string {
	rows := make([][]string, 0, len(cats))
	for i, c := range cats {
		rows = append(rows, []string{
			formatter.Dim(strconv.Itoa(i + 1)),
			formatter.Bold(c.Name),
			formatProperties(c.Properties),
			strconv.Itoa(len(c.Entries)),
			formatter.Dim(c.ID),
		})
	}
	return formatter.RenderTable([]string{"#", "CATEGORY", "PROPERTIES", "ENTRIES", "ID"}, rows)
}

func formatProperties(props []domain.Property) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = p.Name + formatter.Dim(":"+string(p.Type))
	}
	return strings.Join(parts, ", ")
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var props []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Example: `  prefy category add Food --prop Taste
  prefy category add Activities -p Interest -p Energy:scale -p Tried:binary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseProperties(props)
			if err != nil {
				return err
			}
			var added *domain.Category
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				added, err = ed.AddCategory(args[0], parsed)
				return err
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Added category %s (%s)", formatter.Bold(added.Name), added.ID), doc)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "property as NAME or NAME:TYPE (level, scale, binary); repeatable")

	return cmd
}

func newCategoryEditCmd(app *App) *cobra.Command {
	var (
		name  string
		props []string
	)

	cmd := &cobra.Command{
		Use:   "edit CATEGORY",
		Short: "Rename a category or replace its properties",
		Long: "Rename a category or replace its properties. Entry values carry over to a new\n" +
			"property list only where both the property name and type are unchanged.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newProps []domain.Property
			if cmd.Flags().Changed("prop") {
				parsed, err := parseProperties(props)
				if err != nil {
					return err
				}
				newProps = parsed
			}
			var edited *domain.Category
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				newName := c.Name
				if cmd.Flags().Changed("name") {
					newName = name
				}
				if newProps == nil {
					newProps = c.Properties
				}
				edited = c
				return ed.EditCategory(c.ID, newName, newProps)
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Updated category %s: %s", formatter.Bold(edited.Name), formatProperties(edited.Properties)), doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "replacement property list, NAME or NAME:TYPE; repeatable")

	return cmd
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CATEGORY",
		Aliases: []string{"remove"},
		Short:   "Delete a category and all of its entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed *domain.Category
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				removed = c
				ed.DeleteCategory(c.ID)
				return nil
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Removed category %s and %s", removed.Name,
				formatter.Count(len(removed.Entries), "entry", "entries")), doc)
			return nil
		},
	}
}

func newCategoryMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv CATEGORY POSITION",
		Short: "Move a category to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				doc := ed.Document()
				_, from, err := resolveCategory(doc, args[0])
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1], len(doc.Categories))
				if err != nil {
					return err
				}
				return ed.ReorderCategories(from, to)
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatCategoryTable(doc.Categories))
			return nil
		},
	}
}
