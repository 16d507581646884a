package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prefyhq/prefy/internal/cli/formatter"
	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/dragdrop"
	"github.com/prefyhq/prefy/internal/filter"
)

// refreshViewMsg tells every view on the stack that the document changed.
type refreshViewMsg struct{}

func refreshViews() tea.Msg { return refreshViewMsg{} }

type rowKind int

const (
	rowCategory rowKind = iota
	rowEntry
)

// gridRow is one selectable line of the document view. category is the
// live category from the document, entryPos the entry's position among the
// visible entries of that category.
type gridRow struct {
	kind     rowKind
	category *domain.Category
	entry    *domain.Entry
	entryPos int
}

// id returns the id of the item on the row.
func (r gridRow) id() string {
	if r.kind == rowEntry {
		return r.entry.ID
	}
	return r.category.ID
}

type viewMode int

const (
	modeGrid viewMode = iota
	modeQuick
)

// documentView is the editor's home view: every category as a table with a
// cell cursor, quick value editing, filters and keyboard drag sessions.
type documentView struct {
	state *SharedState

	filtered filter.View
	rows     []gridRow
	cursor   int
	column   int
	mode     viewMode
	offset   int

	searching bool
	search    textinput.Model

	// dragTarget is the row a drag session would drop on; draggedID the
	// item being moved.
	dragTarget int
	draggedID  string
}

func newDocumentView(state *SharedState) *documentView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search categories and entries"
	ti.CharLimit = 80

	v := &documentView{state: state, search: ti}
	v.refresh()
	return v
}

func (v *documentView) ID() ViewID    { return ViewDocument }
func (v *documentView) Title() string { return "" }

func (v *documentView) CapturesInput() bool { return v.searching }

func (v *documentView) ShortHelp() []key.Binding {
	switch {
	case v.searching:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
			key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "exact")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case v.state.Drag.Dragging():
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "choose spot")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space/-", "cycle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a/A", "add entry/category")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "level filter")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "levels")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}

func (v *documentView) Init() tea.Cmd { return nil }

// refresh rebuilds the visible rows from the document and filter, keeping
// the cursor in range.
func (v *documentView) refresh() {
	doc := v.state.Document()
	v.filtered = filter.Apply(doc.Categories, v.state.Filter)
	v.rows = v.rows[:0]
	for _, fc := range v.filtered.Categories {
		live, ok := doc.FindCategory(fc.ID)
		if !ok {
			continue
		}
		v.rows = append(v.rows, gridRow{kind: rowCategory, category: live})
		for i, e := range fc.Entries {
			v.rows = append(v.rows, gridRow{kind: rowEntry, category: live, entry: e, entryPos: i})
		}
	}
	v.cursor = clamp(v.cursor, 0, len(v.rows)-1)
	v.clampColumn()
}

func (v *documentView) clampColumn() {
	if r, ok := v.current(); ok {
		v.column = clamp(v.column, 0, len(r.category.Properties)-1)
		return
	}
	v.column = 0
}

func clamp(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(i, lo), hi)
}

func (v *documentView) current() (gridRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return gridRow{}, false
	}
	return v.rows[v.cursor], true
}

// selectRow moves the cursor onto the row holding id, if visible.
func (v *documentView) selectRow(id string) {
	for i, r := range v.rows {
		if r.id() == id {
			v.cursor = i
			v.clampColumn()
			return
		}
	}
}

func (v *documentView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.refresh()
		return v, nil
	case tea.KeyMsg:
		switch {
		case v.searching:
			return v.updateSearch(msg)
		case v.state.Drag.Dragging():
			return v.updateDrag(msg)
		}
		return v.updateNormal(msg)
	}
	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *documentView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "up", "k":
		v.cursor = clamp(v.cursor-1, 0, len(v.rows)-1)
		v.clampColumn()
	case "down", "j":
		v.cursor = clamp(v.cursor+1, 0, len(v.rows)-1)
		v.clampColumn()
	case "left", "h":
		v.column--
		v.clampColumn()
	case "right", "l":
		v.column++
		v.clampColumn()
	case " ", "+", "=":
		return v, v.cycle(1)
	case "-":
		return v, v.cycle(-1)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		d, _ := strconv.Atoi(k)
		return v, v.setDirect(d)
	case "v":
		if v.mode == modeGrid {
			v.mode = modeQuick
			return v, setStatus("Quick edit view")
		}
		v.mode = modeGrid
		return v, setStatus("Grid view")
	case "/":
		v.searching = true
		v.search.SetValue(v.state.Filter.Term)
		return v, v.search.Focus()
	case "f":
		v.state.Filter.LevelID = nextLevelFilter(v.state.Document().Levels, v.state.Filter.LevelID)
		v.refresh()
	case "F":
		v.state.Filter.LevelID = ""
		v.refresh()
	case "c":
		v.state.Filter.Clear()
		v.search.SetValue("")
		v.refresh()
		return v, setStatus("Filters cleared")
	case "a":
		return v, v.addEntry()
	case "A":
		return v, v.addCategory()
	case "e", "enter":
		return v, v.edit()
	case "d", "x":
		return v, v.delete()
	case "m":
		return v, v.startDrag()
	case "L":
		return v, pushView(newLevelsView(v.state))
	case "S":
		return v, v.editSettings()
	case "s", "ctrl+s":
		return v, saveDocument(v.state)
	}
	return v, nil
}

// nextLevelFilter steps the level filter through "" and then each level in
// order, back to "".
func nextLevelFilter(levels []domain.Level, current string) string {
	if len(levels) == 0 {
		return ""
	}
	if current == "" {
		return levels[0].ID
	}
	for i, l := range levels {
		if l.ID == current && i+1 < len(levels) {
			return levels[i+1].ID
		}
	}
	return ""
}

func saveDocument(state *SharedState) tea.Cmd {
	if err := state.Save(); err != nil {
		return setError(err)
	}
	return setStatus("Saved " + state.Path)
}

// selectedCell returns the entry row under the cursor and the property in
// the current column.
func (v *documentView) selectedCell() (gridRow, domain.Property, bool) {
	r, ok := v.current()
	if !ok || r.kind != rowEntry || len(r.category.Properties) == 0 {
		return gridRow{}, domain.Property{}, false
	}
	return r, r.category.Properties[v.column], true
}

func (v *documentView) cycle(delta int) tea.Cmd {
	r, p, ok := v.selectedCell()
	if !ok {
		return nil
	}
	cur, _ := r.entry.Value(p.Name)
	return v.setValue(r, p, cycleValue(v.state.Document(), p, cur, delta))
}

func (v *documentView) setDirect(digit int) tea.Cmd {
	r, p, ok := v.selectedCell()
	if !ok {
		return nil
	}
	val, ok := directValue(v.state.Document(), p, digit)
	if !ok {
		return nil
	}
	return v.setValue(r, p, val)
}

func (v *documentView) setValue(r gridRow, p domain.Property, val domain.Value) tea.Cmd {
	if !v.state.Editor.SetEntryPropertyValue(r.category.ID, r.entry.ID, p.Name, val) {
		return nil
	}
	v.state.Dirty = true
	id := r.entry.ID
	v.refresh()
	v.selectRow(id)
	return nil
}

func (v *documentView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.state.Filter.Term = ""
		v.refresh()
		return v, nil
	case tea.KeyCtrlE:
		v.state.Filter.Exact = !v.state.Filter.Exact
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.state.Filter.Term = v.search.Value()
	v.cursor = 0
	v.refresh()
	return v, cmd
}

// ── Drag sessions ────────────────────────────────────────────────────────────

func (v *documentView) startDrag() tea.Cmd {
	r, ok := v.current()
	if !ok {
		return nil
	}
	if v.state.Filter.Active() {
		return setStatus("Clear filters (c) before moving things")
	}
	doc := v.state.Document()
	switch r.kind {
	case rowCategory:
		v.state.Drag.Start(dragdrop.CategoryDrag{From: doc.CategoryIndex(r.category.ID)})
		v.draggedID = r.category.ID
		v.dragTarget = v.cursor
		return setStatus("Moving category " + r.category.Name)
	default:
		v.state.Drag.Start(dragdrop.EntryDrag{CategoryID: r.category.ID, From: r.category.EntryIndex(r.entry.ID)})
		v.draggedID = r.entry.ID
		v.dragTarget = v.cursor
		return setStatus("Moving " + r.entry.Name)
	}
}

// acceptsDrop reports whether row i is a valid drop target for the active
// session: category headers for category drags, anything for entry drags.
func (v *documentView) acceptsDrop(i int) bool {
	if _, ok := v.state.Drag.Active().(dragdrop.CategoryDrag); ok {
		return v.rows[i].kind == rowCategory
	}
	return true
}

func (v *documentView) moveTarget(delta int) {
	for i := v.dragTarget + delta; i >= 0 && i < len(v.rows); i += delta {
		if v.acceptsDrop(i) {
			v.dragTarget = i
			return
		}
	}
}

// dropTarget converts the target row into a protocol target.
func (v *documentView) dropTarget() dragdrop.Target {
	if v.dragTarget < 0 || v.dragTarget >= len(v.rows) {
		return nil
	}
	r := v.rows[v.dragTarget]
	switch v.state.Drag.Active().(type) {
	case dragdrop.CategoryDrag:
		return dragdrop.CategoryTarget{Index: v.state.Document().CategoryIndex(r.category.ID)}
	case dragdrop.EntryDrag:
		if r.kind == rowCategory {
			return dragdrop.CategoryBodyTarget{CategoryID: r.category.ID}
		}
		return dragdrop.EntryTarget{CategoryID: r.category.ID, Index: r.category.EntryIndex(r.entry.ID)}
	}
	return nil
}

func (v *documentView) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.moveTarget(-1)
	case "down", "j":
		v.moveTarget(1)
	case "esc":
		v.state.Drag.Cancel()
		return v, setStatus("Move cancelled")
	case "enter", "m", " ":
		changed, err := v.state.Drag.Drop(v.dropTarget())
		if err != nil {
			return v, setError(err)
		}
		if !changed {
			return v, setStatus("Nothing moved")
		}
		v.state.Dirty = true
		v.refresh()
		v.selectRow(v.draggedID)
		return v, tea.Batch(refreshViews, setStatus("Moved"))
	}
	return v, nil
}

// ── Forms ────────────────────────────────────────────────────────────────────

// applyChange runs fn after a form completes and reports the outcome.
func applyChange(state *SharedState, fn func() (string, error)) tea.Cmd {
	msg, err := fn()
	if err != nil {
		return setError(err)
	}
	state.Dirty = true
	return tea.Batch(refreshViews, setStatus(msg))
}

func (v *documentView) addCategory() tea.Cmd {
	data := &categoryFormData{}
	return startWizardCmd(v.state, "Add Category", categoryForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			props, err := data.properties()
			if err != nil {
				return "", err
			}
			c, err := v.state.Editor.AddCategory(data.Name, props)
			if err != nil {
				return "", err
			}
			return "Added category " + c.Name, nil
		})
	})
}

func (v *documentView) addEntry() tea.Cmd {
	r, ok := v.current()
	if !ok {
		return setStatus("Add a category first (A)")
	}
	cat := r.category
	data := &entryFormData{}
	return startWizardCmd(v.state, "Add to "+cat.Name, entryForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			e, err := v.state.Editor.AddEntry(cat.ID, data.Name, data.Comment, nil)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %s to %s", e.Name, cat.Name), nil
		})
	})
}

func (v *documentView) edit() tea.Cmd {
	r, ok := v.current()
	if !ok {
		return nil
	}
	if r.kind == rowCategory {
		cat := r.category
		data := &categoryFormData{Name: cat.Name, Properties: formatPropertySpecs(cat.Properties)}
		return startWizardCmd(v.state, "Edit "+cat.Name, categoryForm(data), func() tea.Cmd {
			return applyChange(v.state, func() (string, error) {
				props, err := data.properties()
				if err != nil {
					return "", err
				}
				if err := v.state.Editor.EditCategory(cat.ID, data.Name, props); err != nil {
					return "", err
				}
				return "Updated category " + cat.Name, nil
			})
		})
	}

	cat, entry := r.category, r.entry
	data := &entryFormData{Name: entry.Name, Comment: entry.Comment}
	return startWizardCmd(v.state, "Edit "+entry.Name, entryForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			if err := v.state.Editor.EditEntry(cat.ID, entry.ID, data.Name, data.Comment, entry.Values); err != nil {
				return "", err
			}
			return "Updated " + entry.Name, nil
		})
	})
}

func (v *documentView) delete() tea.Cmd {
	r, ok := v.current()
	if !ok {
		return nil
	}
	var confirmed bool
	var title string
	if r.kind == rowCategory {
		title = fmt.Sprintf("Delete category %s and its %s?", r.category.Name,
			formatter.Count(len(r.category.Entries), "entry", "entries"))
	} else {
		title = fmt.Sprintf("Delete %s?", r.entry.Name)
	}
	return startWizardCmd(v.state, "Delete", confirmForm(title, &confirmed), func() tea.Cmd {
		if !confirmed {
			return setStatus("Kept")
		}
		return applyChange(v.state, func() (string, error) {
			if r.kind == rowCategory {
				v.state.Editor.DeleteCategory(r.category.ID)
				return "Deleted category " + r.category.Name, nil
			}
			v.state.Editor.DeleteEntry(r.category.ID, r.entry.ID)
			return "Deleted " + r.entry.Name, nil
		})
	})
}

func (v *documentView) editSettings() tea.Cmd {
	doc := v.state.Document()
	data := &settingsFormData{Username: doc.Username, ExportTitle: doc.ExportTitle}
	return startWizardCmd(v.state, "Settings", settingsForm(data), func() tea.Cmd {
		return applyChange(v.state, func() (string, error) {
			v.state.Editor.SetUsername(data.Username)
			v.state.Editor.SetExportTitle(data.ExportTitle)
			return "Settings updated", nil
		})
	})
}

// ── Rendering ────────────────────────────────────────────────────────────────

func (v *documentView) View() string {
	doc := v.state.Document()

	var head []string
	head = append(head, formatter.FormatLegend(doc.Levels, v.state.Filter.LevelID))
	if v.searching {
		exact := formatter.Dim("contains")
		if v.state.Filter.Exact {
			exact = formatter.StyleYellow.Render("exact")
		}
		head = append(head, v.search.View()+"  "+exact)
	} else if v.state.Filter.Active() {
		head = append(head, formatter.Dim(formatter.DescribeCriteria(doc, v.state.Filter)))
	}
	head = append(head, "")

	body, focus := v.renderBody(doc)
	if hint := v.cellHint(doc); hint != "" {
		head = append(head[:len(head)-1], hint, "")
	}

	height := v.state.ContentHeight() - len(head)
	body = v.scroll(body, focus, height)
	return strings.Join(append(head, body...), "\n")
}

// cellHint lists the digit shortcuts for the selected cell.
func (v *documentView) cellHint(doc *domain.Document) string {
	if v.state.Drag.Dragging() || v.searching {
		return ""
	}
	_, p, ok := v.selectedCell()
	if !ok {
		return ""
	}
	switch p.Type {
	case domain.PropertyScale:
		return formatter.Dim(p.Name + ": 1-9, 0 for 10")
	case domain.PropertyBinary:
		return formatter.Dim(p.Name + ": 1 yes, 0 no")
	}
	var parts []string
	for i, l := range doc.Levels {
		if i >= 9 {
			break
		}
		parts = append(parts, formatter.Dim(strconv.Itoa(i+1))+" "+formatter.LevelBubble(l))
	}
	return formatter.Dim(p.Name+": ") + strings.Join(parts, "  ")
}

// renderBody returns the body lines and the index of the line holding the
// cursor (or drag target).
func (v *documentView) renderBody(doc *domain.Document) ([]string, int) {
	if len(v.rows) == 0 {
		if v.state.Filter.Active() {
			return []string{formatter.Dim("No matches. Press c to clear filters.")}, 0
		}
		return []string{formatter.Dim("No categories yet. Press A to add one.")}, 0
	}

	dragging := v.state.Drag.Dragging()
	focusRow := v.cursor
	marker := "›"
	if dragging {
		focusRow = v.dragTarget
		marker = "⇢"
	}

	var lines []string
	focus := 0
	for i := 0; i < len(v.rows); {
		head := v.rows[i]
		j := i + 1
		for j < len(v.rows) && v.rows[j].kind == rowEntry {
			j++
		}

		entryCursor := -1
		if focusRow > i && focusRow < j {
			entryCursor = v.rows[focusRow].entryPos
		}
		headMark := "  "
		if focusRow == i {
			headMark = formatter.StyleHeader.Render(marker) + " "
			focus = len(lines)
		}

		fc := v.filteredCategory(head.category.ID)
		if v.mode == modeQuick {
			block := v.renderQuick(doc, fc, entryCursor, marker)
			block[0] = headMark + block[0]
			if entryCursor >= 0 {
				focus = len(lines) + 1 + entryCursor
			}
			lines = append(lines, block...)
		} else {
			column := -1
			if entryCursor >= 0 && !dragging {
				column = v.column
			}
			block := strings.Split(strings.TrimRight(formatter.FormatCategory(doc, fc, formatter.CategoryOptions{
				Highlights: v.filtered.Highlights,
				Cursor:     entryCursor,
				Column:     column,
				Marker:     marker,
			}), "\n"), "\n")
			block[0] = headMark + block[0]
			if entryCursor >= 0 {
				focus = len(lines) + 3 + entryCursor
			}
			lines = append(lines, block...)
		}
		lines = append(lines, "")
		i = j
	}
	return lines, focus
}

func (v *documentView) filteredCategory(id string) *domain.Category {
	for _, c := range v.filtered.Categories {
		if c.ID == id {
			return c
		}
	}
	return &domain.Category{ID: id}
}

// renderQuick lays a category out one entry per line, with the selected
// cell bracketed.
func (v *documentView) renderQuick(doc *domain.Document, c *domain.Category, cursor int, marker string) []string {
	lines := []string{formatter.Bold(c.Name) + "  " + formatter.Dim(formatProperties(c.Properties))}
	for i, e := range c.Entries {
		mark := "    "
		if i == cursor {
			mark = "  " + formatter.StyleHeader.Render(marker) + " "
		}
		name := e.Name
		if v.filtered.Highlights.Entry(e.ID) {
			name = formatter.Match(name)
		}
		cells := make([]string, 0, len(c.Properties))
		for col, p := range c.Properties {
			val, _ := e.Value(p.Name)
			cell := formatter.ValueCell(doc, val)
			if i == cursor && col == v.column && !v.state.Drag.Dragging() {
				cell = formatter.StyleHeader.Render("[") + cell + formatter.StyleHeader.Render("]")
			}
			cells = append(cells, cell)
		}
		lines = append(lines, mark+name+formatter.Dim(": ")+strings.Join(cells, formatter.Dim(" · ")))
	}
	return lines
}

// scroll keeps the focus line inside a window of height lines.
func (v *documentView) scroll(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		v.offset = 0
		return lines
	}
	if focus < v.offset {
		v.offset = focus
	}
	if focus >= v.offset+height {
		v.offset = focus - height + 1
	}
	v.offset = clamp(v.offset, 0, len(lines)-height)
	return lines[v.offset : v.offset+height]
}
