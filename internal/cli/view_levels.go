package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/dragdrop"
)

// levelsView lists the level scale and manages it: add, edit, delete and
// reorder by drag session.
type levelsView struct {
	state      *SharedState
	cursor     int
	dragTarget int
}

func newLevelsView(state *SharedState) *levelsView {
	return &levelsView{state: state}
}

func (v *levelsView) ID() ViewID    { return ViewLevels }
func (v *levelsView) Title() string { return "Levels" }
func (v *levelsView) Init() tea.Cmd { return nil }

func (v *levelsView) ShortHelp() []key.Binding {
	if v.state.Drag.Dragging() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "choose spot")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle filter")),
	}
}

func (v *levelsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.cursor = clamp(v.cursor, 0, len(v.state.Document().Levels)-1)
		return v, nil
	case tea.KeyMsg:
		if v.state.Drag.Dragging() {
			return v.updateDrag(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *levelsView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levels := v.state.Document().Levels
	switch msg.String() {
	case "up", "k":
		v.cursor = clamp(v.cursor-1, 0, len(levels)-1)
	case "down", "j":
		v.cursor = clamp(v.cursor+1, 0, len(levels)-1)
	case "a":
		return v, v.add()
	case "e", "enter":
		return v, v.edit()
	case "d", "x":
		return v, v.delete()
	case "m":
		if len(levels) < 2 {
			return v, nil
		}
		v.state.Drag.Start(dragdrop.LevelDrag{From: v.cursor})
		v.dragTarget = v.cursor
		return v, setStatus("Moving level " + levels[v.cursor].Name)
	case "f":
		if v.cursor < len(levels) {
			v.state.Filter.ToggleLevel(levels[v.cursor].ID)
			status := "Showing " + levels[v.cursor].Name
			if v.state.Filter.LevelID == "" {
				status = "Level filter cleared"
			}
			return v, tea.Batch(popView(), refreshViews, setStatus(status))
		}
	case "s", "ctrl+s":
		return v, saveDocument(v.state)
	}
	return v, nil
}

func (v *levelsView) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(v.state.Document().Levels)
	switch msg.String() {
	case "up", "k":
		v.dragTarget = clamp(v.dragTarget-1, 0, n-1)
	case "down", "j":
		v.dragTarget = clamp(v.dragTarget+1, 0, n-1)
	case "esc":
		v.state.Drag.Cancel()
		return v, setStatus("Move cancelled")
	case "enter", "m", " ":
		changed, err := v.state.Drag.Drop(dragdrop.LevelTarget{Index: v.dragTarget})
		if err != nil {
			return v, setError(err)
		}
		if !changed {
			return v, setStatus("Nothing moved")
		}
		v.state.Dirty = true
		v.cursor = v.dragTarget
		return v, tea.Batch(refreshViews, setStatus("Moved"))
	}
	return v, nil
}

func (v *levelsView) add() tea.Cmd {
	data := &levelFormData{}
	return startWizardCmd(v.state, "Add Level", levelForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			l := v.state.Editor.AddLevel(data.Name, data.Color)
			v.cursor = len(v.state.Document().Levels) - 1
			return "Added level " + l.Name, nil
		})
	})
}

func (v *levelsView) edit() tea.Cmd {
	levels := v.state.Document().Levels
	if v.cursor >= len(levels) {
		return nil
	}
	index := v.cursor
	l := levels[index]
	data := &levelFormData{Name: l.Name, Color: l.Color}
	return startWizardCmd(v.state, "Edit "+l.Name, levelForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			if err := v.state.Editor.UpdateLevel(index, data.Name, data.Color); err != nil {
				return "", err
			}
			return "Updated level " + data.Name, nil
		})
	})
}

func (v *levelsView) delete() tea.Cmd {
	levels := v.state.Document().Levels
	if v.cursor >= len(levels) {
		return nil
	}
	index := v.cursor
	l := levels[index]
	var confirmed bool
	title := fmt.Sprintf("Delete level %s? Entries holding it will show as %s.", l.Name, levels[0].Name)
	if index == 0 && len(levels) > 1 {
		title = fmt.Sprintf("Delete level %s? Entries holding it will show as %s.", l.Name, levels[1].Name)
	}
	return startWizardCmd(v.state, "Delete", confirmForm(title, &confirmed), func() tea.Cmd {
		if !confirmed {
			return setStatus("Kept")
		}
		return applyChange(v.state, func() (string, error) {
			removed, err := v.state.Editor.DeleteLevel(index)
			if err != nil {
				return "", err
			}
			if v.state.Filter.LevelID == removed.ID {
				v.state.Filter.LevelID = ""
			}
			return "Deleted level " + removed.Name, nil
		})
	})
}

func (v *levelsView) View() string {
	levels := v.state.Document().Levels
	if len(levels) == 0 {
		return formatter.Dim("No levels. Press a to add one.")
	}

	marker, focus := "›", v.cursor
	if v.state.Drag.Dragging() {
		marker, focus = "⇢", v.dragTarget
	}

	rows := make([][]string, 0, len(levels))
	for i, l := range levels {
		rows = append(rows, []string{
			formatter.Dim(strconv.Itoa(i + 1)),
			formatter.LevelBubble(l),
			formatter.Dim(l.ID),
			formatter.Dim(l.Color),
		})
	}
	table := formatter.Table{
		Headers: []string{"#", "LEVEL", "ID", "COLOR"},
		Rows:    rows,
		Marked:  map[int]string{focus: formatter.StyleHeader.Render(marker)},
	}
	return strings.TrimRight(table.Render(), "\n")
}
