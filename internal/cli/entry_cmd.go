package cli

import (
	"fmt"
	"maps"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/dragdrop"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries"},
		Short:   "Manage entries within a category",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryEditCmd(app),
		newEntryRemoveCmd(app),
		newEntryReorderCmd(app),
		newEntryMoveCmd(app),
		newEntrySetCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var (
		comment string
		sets    []string
	)

	cmd := &cobra.Command{
		Use:   "add CATEGORY NAME",
		Short: "Add an entry; unset properties start at their default",
		Example: `  prefy entry add Food Pizza --set Taste=liked
  prefy entry add Activities Hiking -s Interest=Favorite -s Energy=8 -s Tried=yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				added *domain.Entry
				cat   *domain.Category
			)
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				values, err := parseAssignments(ed.Document(), c, sets)
				if err != nil {
					return err
				}
				cat = c
				added, err = ed.AddEntry(c.ID, args[1], comment, values)
				return err
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Added %s to %s", formatter.Bold(added.Name), cat.Name), doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "free-text note")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "property value as PROPERTY=VALUE; repeatable")

	return cmd
}

func newEntryEditCmd(app *App) *cobra.Command {
	var (
		name    string
		comment string
		sets    []string
	)

	cmd := &cobra.Command{
		Use:   "edit CATEGORY ENTRY",
		Short: "Rename an entry, change its comment or values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edited *domain.Entry
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				e, _, err := resolveEntry(c, args[1])
				if err != nil {
					return err
				}
				updates, err := parseAssignments(ed.Document(), c, sets)
				if err != nil {
					return err
				}

				newName, newComment := e.Name, e.Comment
				if cmd.Flags().Changed("name") {
					newName = name
				}
				if cmd.Flags().Changed("comment") {
					newComment = comment
				}
				values := maps.Clone(e.Values)
				if values == nil {
					values = map[string]domain.Value{}
				}
				maps.Copy(values, updates)

				edited = e
				return ed.EditEntry(c.ID, e.ID, newName, newComment, values)
			})
			if err != nil {
				return err
			}
			printDone(cmd, "Updated "+formatter.Bold(edited.Name), doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVar(&comment, "comment", "", "new comment (empty clears it)")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "property value as PROPERTY=VALUE; repeatable")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CATEGORY ENTRY",
		Aliases: []string{"remove"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed *domain.Entry
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				e, _, err := resolveEntry(c, args[1])
				if err != nil {
					return err
				}
				removed = e
				ed.DeleteEntry(c.ID, e.ID)
				return nil
			})
			if err != nil {
				return err
			}
			printDone(cmd, "Removed "+removed.Name, doc)
			return nil
		},
	}
}

func newEntryReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv CATEGORY ENTRY POSITION",
		Short: "Move an entry to a 1-based position within its category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cat *domain.Category
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				c, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				_, from, err := resolveEntry(c, args[1])
				if err != nil {
					return err
				}
				to, err := parsePosition(args[2], len(c.Entries))
				if err != nil {
					return err
				}
				cat = c
				return ed.ReorderEntries(c.ID, from, to)
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategory(doc, cat, formatter.CategoryOptions{Cursor: -1, Column: -1}))
			return nil
		},
	}
}

func newEntryMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move CATEGORY ENTRY TARGET",
		Short: "Move an entry into another category",
		Long: "Move an entry to the end of another category. Values carry over for properties\n" +
			"with the same name and type in the target; the rest start at their default.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				moved   bool
				entry   *domain.Entry
				srcName string
				dst     *domain.Category
			)
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				src, _, err := resolveCategory(ed.Document(), args[0])
				if err != nil {
					return err
				}
				e, from, err := resolveEntry(src, args[1])
				if err != nil {
					return err
				}
				dst, _, err = resolveCategory(ed.Document(), args[2])
				if err != nil {
					return err
				}
				entry, srcName = e, src.Name

				drag := dragdrop.New(ed)
				drag.Start(dragdrop.EntryDrag{CategoryID: src.ID, From: from})
				moved, err = drag.Drop(dragdrop.CategoryBodyTarget{CategoryID: dst.ID})
				return err
			})
			if err != nil {
				return err
			}
			if !moved {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in %s\n", entry.Name, dst.Name)
				return nil
			}
			printDone(cmd, fmt.Sprintf("Moved %s from %s to %s", formatter.Bold(entry.Name), srcName, dst.Name), doc)
			return nil
		},
	}
}

func newEntrySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set CATEGORY ENTRY PROPERTY VALUE",
		Short: "Set one property value of an entry",
		Long: "Set one property value. VALUE is a level (name, id or number) for level\n" +
			"properties, 0-10 for scale properties and yes/no for binary properties.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				display string
				entry   *domain.Entry
				prop    domain.Property
			)
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				doc := ed.Document()
				c, _, err := resolveCategory(doc, args[0])
				if err != nil {
					return err
				}
				e, _, err := resolveEntry(c, args[1])
				if err != nil {
					return err
				}
				p, err := resolveProperty(c, args[2])
				if err != nil {
					return err
				}
				v, err := parseValue(doc, p, args[3])
				if err != nil {
					return err
				}
				ed.SetEntryPropertyValue(c.ID, e.ID, p.Name, v)
				entry, prop, display = e, p, formatter.ValueCell(doc, v)
				return nil
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("%s %s: %s", formatter.Bold(entry.Name), prop.Name, display), doc)
			return nil
		},
	}
}
