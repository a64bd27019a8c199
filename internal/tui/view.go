package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/robiweb74/makupovalni-seznam/internal/gesture"
	"github.com/robiweb74/makupovalni-seznam/internal/model"
)

// Screen layout. Row bounds used for mouse hit-testing are derived from the same
// constants the renderer uses, so a click always lands on what was drawn.
const (
	bodyTop = 3 // title, meta line, rule

	// blank, chips, add input, minibuffer, help
	listChromeBottom = 5
	// blank, minibuffer, help
	homeChromeBottom = 3

	gripLeft      = 0
	gripRight     = 3
	checkboxLeft  = 3
	checkboxRight = 7
	textLeft      = 7

	unboundedWidth = 1 << 16
)

// visibleRange returns the [start, end) window of n rows that keeps cursor in view.
func visibleRange(n, cursor, height, chrome int) (int, int) {
	if height <= 0 {
		return 0, n
	}
	capacity := height - bodyTop - chrome
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if cursor >= capacity {
		start = cursor - capacity + 1
	}
	end := start + capacity
	if end > n {
		end = n
	}
	return start, end
}

func (m appModel) rowRight() int {
	if m.width <= 0 {
		return unboundedWidth
	}
	return m.width
}

// itemRows returns the rendered bounds of the visible items of the active list.
func (m appModel) itemRows() []gesture.Row {
	l := m.activeList()
	if l == nil {
		return nil
	}
	start, end := visibleRange(len(l.Items), m.itemCursor, m.height, listChromeBottom)
	rows := make([]gesture.Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, gesture.Row{
			Index:     i,
			Top:       bodyTop + (i - start),
			Height:    1,
			Left:      0,
			Right:     m.rowRight(),
			GripLeft:  gripLeft,
			GripRight: gripRight,
		})
	}
	return rows
}

// homeRowAt returns the list index under screen row y, or -1.
func (m appModel) homeRowAt(y int) int {
	start, end := visibleRange(len(m.snap.Lists), m.homeCursor, m.height, homeChromeBottom)
	i := start + (y - bodyTop)
	if y < bodyTop || i >= end {
		return -1
	}
	return i
}

func (m appModel) View() string {
	var out string
	switch m.view {
	case viewList:
		out = m.viewList()
	default:
		out = m.viewHome()
	}
	if m.modal == modalNone {
		return out
	}
	modal := m.renderModal()
	if m.width <= 0 || m.height <= 0 {
		return out + "\n\n" + modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalNewList:
		return renderInputModal(m.width, "New list", m.modalInput.View(), "enter: create   esc: cancel")
	case modalImport:
		return renderInputModal(m.width, "Import shared list", m.modalInput.View(), "paste a share link or token   enter: import   esc: cancel")
	case modalConfirmDeleteList:
		name := m.pendingDeleteID
		if l, ok := m.snap.FindList(m.pendingDeleteID); ok {
			name = l.Name
		}
		body := fmt.Sprintf("Delete %q and all of its items?", name)
		return renderConfirmModal(m.width, "Delete list", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}

func (m appModel) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, glyphEllipsis())
}

func (m appModel) rule() string {
	w := m.width
	if w <= 0 {
		w = 40
	}
	return styleMuted().Render(strings.Repeat(glyphHRule(), w))
}

func (m appModel) viewHome() string {
	lines := []string{
		styleTitle().Render("SEZNAM"),
		styleMuted().Render(fmt.Sprintf("%d lists", len(m.snap.Lists))),
		m.rule(),
	}
	if len(m.snap.Lists) == 0 {
		lines = append(lines, styleMuted().Render("No lists yet. Press n to create one or i to import a shared link."))
	}
	start, end := visibleRange(len(m.snap.Lists), m.homeCursor, m.height, homeChromeBottom)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderHomeRow(m.snap.Lists[i], i == m.homeCursor))
	}
	lines = append(lines, "", m.minibufferView(), m.help.ShortHelpView(homeKeys.ShortHelp()))
	return strings.Join(lines, "\n")
}

func listMeta(l model.ShoppingList) string {
	return fmt.Sprintf("%d items %s %d done", len(l.Items), glyphBullet(), l.CompletedCount())
}

func (m appModel) renderHomeRow(l model.ShoppingList, selected bool) string {
	marker := "  "
	if selected {
		marker = glyphArrow() + " "
	}
	meta := listMeta(l)
	if !l.CreatedAt.IsZero() {
		meta += "  " + humanize.Time(l.CreatedAt)
	}
	name := l.Name
	if selected {
		name = styleSelected().Render(name)
	}
	return m.truncate(marker + name + "  " + styleMuted().Render(meta))
}

func (m appModel) viewList() string {
	l := m.activeList()
	if l == nil {
		return m.viewHome()
	}
	lines := []string{
		styleTitle().Render(l.Name),
		styleMuted().Render(listMeta(*l)),
		m.rule(),
	}
	if len(l.Items) == 0 {
		lines = append(lines, styleMuted().Render("This list is empty. Press a to add an item."))
	}
	dragged, target := m.drag.Dragged(), m.drag.Target()
	for _, r := range m.itemRows() {
		lines = append(lines, m.renderItemRow(l.Items[r.Index], r.Index, dragged, target))
	}
	lines = append(lines, "", m.chipsView())
	if m.adding {
		lines = append(lines, m.addInput.View())
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.minibufferView(), m.listHelpView())
	return strings.Join(lines, "\n")
}

func padCells(s string, w int) string {
	if n := ansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func (m appModel) renderItemRow(it model.ListItem, idx, dragged, target int) string {
	// Cells: [0,3) grip, [3,7) checkbox, text from 7.
	grip := padCells(" "+glyphGrip(), gripRight-gripLeft)
	box := padCells(glyphCheckbox(it.Completed), checkboxRight-checkboxLeft)
	text := it.Text
	if it.Completed {
		text = styleDone().Render(text)
	}
	if it.Category != "" {
		text += "  " + styleMuted().Render(it.Category)
	}
	row := m.truncate(grip + box + text)

	switch {
	case dragged >= 0 && idx == dragged:
		return styleMuted().Bold(true).Render(row)
	case dragged >= 0 && idx == target:
		return styleDropTarget().Render(row)
	case dragged < 0 && idx == m.itemCursor:
		return styleSelected().Render(row)
	}
	return row
}

func (m appModel) chipsView() string {
	switch {
	case m.suggestBusy:
		return m.spinner.View() + styleMuted().Render(" fetching suggestions")
	case len(m.chips) == 0:
		return ""
	}
	parts := make([]string, 0, len(m.chips))
	for i, c := range m.chips {
		parts = append(parts, styleChip().Render(fmt.Sprintf("%d %s", i+1, c)))
	}
	return m.truncate(strings.Join(parts, " "))
}

func (m appModel) listHelpView() string {
	var bindings []key.Binding
	switch {
	case m.adding:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		}
	case m.drag.Dragging():
		bindings = listKeys.grabHelp()
	default:
		bindings = listKeys.ShortHelp()
	}
	return m.help.ShortHelpView(bindings)
}

func (m appModel) minibufferView() string {
	if m.minibufferText == "" {
		return ""
	}
	if m.minibufferErr {
		return m.truncate(styleError().Render(m.minibufferText))
	}
	return m.truncate(m.minibufferText)
}
