package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/prefyhq/prefy/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the interactive editor.
// It manages a view stack, the status line and the quit flow.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	status    string
	statusErr bool
}

func newAppModel(state *SharedState) appModel {
	return appModel{
		state:     state,
		viewStack: []View{newDocumentView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		// Broadcast so views below the top one rebuild from the document.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.err
		return m, nil

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m.forward(msg)
}

func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit without saving
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Any key dismisses the previous status.
	if !viewCapturesInput(m.activeView()) {
		m.status, m.statusErr = "", false
	}

	// Forms, search boxes and drag sessions see every key.
	if viewCapturesInput(m.activeView()) || m.state.Drag.Dragging() {
		return m.forward(msg)
	}

	switch {
	case msg.String() == "q":
		return m, m.quit()

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			return m, nil
		}
	}

	return m.forward(msg)
}

// quit ends the program, asking to save first when there are unsaved changes.
func (m appModel) quit() tea.Cmd {
	if !m.state.Dirty {
		return quit()
	}
	var save bool
	title := "Save changes to " + m.state.Path + " before quitting?"
	return startWizardCmd(m.state, "Quit", confirmForm(title, &save), func() tea.Cmd {
		if !save {
			return quit()
		}
		if err := m.state.Save(); err != nil {
			return setError(err)
		}
		return quit()
	})
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result = strings.Join(sections[:len(sections)-1], "\n") +
				strings.Repeat("\n", m.state.Height-lines+1) + sections[len(sections)-1]
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	doc := m.state.Document()
	header := formatter.StylePurple.Render("prefy") + " " +
		formatter.Bold(formatter.Truncate(doc.ExportTitle, 40))

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header += "  " + formatter.Dim(m.state.Path)
	if m.state.Dirty {
		header += formatter.StyleYellow.Render(" ●")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = formatter.StyleRed.Render("✘ " + m.status)
		} else {
			status = formatter.StyleGreen.Render(m.status)
		}
	}

	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if !viewCapturesInput(m.activeView()) && !m.state.Drag.Dragging() {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + status + "\n" + strings.Join(hints, "  ")
}
