package cli

import (
	"fmt"
	"strconv"

	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/editor"
	"github.com/spf13/cobra"
)

func newLevelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "level",
		Aliases: []string{"levels"},
		Short:   "Manage the ordered level scale",
	}

	cmd.AddCommand(
		newLevelListCmd(app),
		newLevelAddCmd(app),
		newLevelSetCmd(app),
		newLevelRemoveCmd(app),
		newLevelMoveCmd(app),
	)

	return cmd
}

func newLevelListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List levels in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.loadDocument(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatLevelTable(doc.Levels))
			return nil
		},
	}
}

func formatLevelTable(levels []domain.Level) string {
	rows := make([][]string, 0, len(levels))
	for i, l := range levels {
		rows = append(rows, []string{
			formatter.Dim(strconv.Itoa(i + 1)),
			formatter.LevelBubble(l),
			formatter.Dim(l.ID),
			formatter.Dim(l.Color),
		})
	}
	return formatter.RenderTable([]string{"#", "LEVEL", "ID", "COLOR"}, rows)
}

func newLevelAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Append a level (placeholder name and color when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			var added domain.Level
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				added = ed.AddLevel(name, color)
				return nil
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Added level %s (%s)", formatter.LevelBubble(added), added.ID), doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "hex color, e.g. #48bb78")

	return cmd
}

func newLevelSetCmd(app *App) *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "set LEVEL",
		Short: "Rename or recolor a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated domain.Level
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				doc := ed.Document()
				i, err := resolveLevel(doc, args[0])
				if err != nil {
					return err
				}
				newName := doc.Levels[i].Name
				if cmd.Flags().Changed("name") {
					newName = name
				}
				if err := ed.UpdateLevel(i, newName, color); err != nil {
					return err
				}
				updated = doc.Levels[i]
				return nil
			})
			if err != nil {
				return err
			}
			printDone(cmd, "Updated level "+formatter.LevelBubble(updated), doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&color, "color", "c", "", "new hex color")

	return cmd
}

func newLevelRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm LEVEL",
		Aliases: []string{"remove"},
		Short:   "Delete a level (entries keep their reference and show as the first level)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed domain.Level
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				i, err := resolveLevel(ed.Document(), args[0])
				if err != nil {
					return err
				}
				removed, err = ed.DeleteLevel(i)
				return err
			})
			if err != nil {
				return err
			}
			printDone(cmd, fmt.Sprintf("Removed level %s (%s)", removed.Name, removed.ID), doc)
			return nil
		},
	}
}

func newLevelMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv LEVEL POSITION",
		Short: "Move a level to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.mutate(cmd, func(ed *editor.Editor) error {
				doc := ed.Document()
				from, err := resolveLevel(doc, args[0])
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1], len(doc.Levels))
				if err != nil {
					return err
				}
				return ed.ReorderLevels(from, to)
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatLevelTable(doc.Levels))
			return nil
		},
	}
}

// parsePosition parses a 1-based target position into a 0-based index.
func parsePosition(s string, n int) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.ValidationError{Field: "position", Message: fmt.Sprintf("expected a number, got %q", s)}
	}
	if pos < 1 || pos > n {
		return 0, &domain.ValidationError{Field: "position", Message: fmt.Sprintf("%d is outside 1-%d", pos, n)}
	}
	return pos - 1, nil
}
