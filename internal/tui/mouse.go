package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m, nil
	}
	if m.view == viewList {
		return m.updateListMouse(msg)
	}
	return m.updateHomeMouse(msg)
}

func (m appModel) updateHomeMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.homeCursor = clamp(m.homeCursor-1, 0, len(m.snap.Lists)-1)
	case tea.MouseButtonWheelDown:
		m.homeCursor = clamp(m.homeCursor+1, 0, len(m.snap.Lists)-1)
	case tea.MouseButtonLeft:
		if i := m.homeRowAt(msg.Y); i >= 0 {
			cmd := m.openList(m.snap.Lists[i].ID)
			return m, cmd
		}
	}
	return m, nil
}

// updateListMouse drives the touch backend: press on a grip starts a drag,
// motion hovers, release drops. Any other press mid-drag interrupts it.
func (m appModel) updateListMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l == nil {
		return m, nil
	}
	tb := m.touch()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			if !m.drag.Dragging() {
				delta := 1
				if msg.Button == tea.MouseButtonWheelUp {
					delta = -1
				}
				m.itemCursor = clamp(m.itemCursor+delta, 0, len(l.Items)-1)
			}
			return m, nil
		}
		if m.drag.Dragging() {
			if m.dragSrc == dragMouse {
				tb.Interrupt()
				m.dragSrc = dragNone
				cmd := m.showMinibuffer("Move cancelled")
				return m, cmd
			}
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if tb.Press(msg.X, msg.Y) {
			m.dragSrc = dragMouse
			m.itemCursor = m.drag.Dragged()
			return m, nil
		}
		idx := tb.HitTest(msg.X, msg.Y)
		if idx < 0 {
			return m, nil
		}
		m.itemCursor = idx
		if msg.X >= checkboxLeft && msg.X < checkboxRight {
			next, ch := m.engine.ToggleItem(m.snap, l.ID, l.Items[idx].ID)
			m.apply(next, ch)
		}

	case tea.MouseActionMotion:
		if m.dragSrc == dragMouse {
			tb.Motion(msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if m.dragSrc != dragMouse {
			return m, nil
		}
		m.dragSrc = dragNone
		if mv, ok := tb.Release(); ok {
			m.applyMove(mv)
		}
	}
	return m, nil
}
