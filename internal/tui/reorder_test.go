package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robiweb74/makupovalni-seznam/internal/gesture"
)

func openABCD(t *testing.T) appModel {
	t.Helper()
	m := newTestModel(t, Options{}, testList("l1", "WEEKLY", "A", "B", "C", "D"))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return press(t, m, "enter")
}

func joined(t *testing.T, m appModel) string {
	t.Helper()
	return strings.Join(activeTexts(t, m), "")
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

// rowY is the screen row of item i when the list is not scrolled.
func rowY(i int) int { return bodyTop + i }

func TestKeyboardGrab_DropMovesItem(t *testing.T) {
	m := openABCD(t)

	m = press(t, m, "m")
	if !m.drag.Dragging() || m.dragSrc != dragKeyboard {
		t.Fatalf("expected keyboard drag to start")
	}
	m = press(t, m, "down", "down", "down")
	if got := m.drag.Target(); got != 3 {
		t.Fatalf("expected target 3, got %d", got)
	}
	m = press(t, m, "enter")

	if got := joined(t, m); got != "BCDA" {
		t.Fatalf("expected BCDA, got %s", got)
	}
	if m.drag.Dragging() || m.dragSrc != dragNone {
		t.Fatalf("expected drag finished")
	}
	if m.itemCursor != 3 {
		t.Fatalf("expected cursor to follow the moved item, got %d", m.itemCursor)
	}
}

func TestKeyboardGrab_EscCancels(t *testing.T) {
	m := openABCD(t)
	m = press(t, m, "m", "down", "down", "esc")
	if got := joined(t, m); got != "ABCD" {
		t.Fatalf("expected unchanged order, got %s", got)
	}
	if m.drag.State() != gesture.Idle {
		t.Fatalf("expected idle after cancel")
	}
	if m.view != viewList {
		t.Fatalf("esc during a grab must not leave the list")
	}
}

func TestKeyboardGrab_DropOnSelfIsNoop(t *testing.T) {
	m := openABCD(t)
	m = press(t, m, "down", "down", "m", "enter")
	if got := joined(t, m); got != "ABCD" {
		t.Fatalf("expected unchanged order, got %s", got)
	}
	if m.itemCursor != 2 {
		t.Fatalf("expected cursor to stay on the dragged row, got %d", m.itemCursor)
	}
}

func TestKeyboardGrab_OtherKeysIgnored(t *testing.T) {
	m := openABCD(t)
	m = press(t, m, "m", "x", "space", "down", "enter")
	if got := joined(t, m); got != "BACD" {
		t.Fatalf("expected only the move to apply, got %s", got)
	}
	if l := m.activeList(); l.Items[0].Completed || l.Items[1].Completed {
		t.Fatalf("toggle must be ignored during a grab")
	}
}

func TestQuickMove(t *testing.T) {
	m := openABCD(t)
	m = press(t, m, "down", "K")
	if got := joined(t, m); got != "BACD" || m.itemCursor != 0 {
		t.Fatalf("expected BACD with cursor 0, got %s cursor=%d", got, m.itemCursor)
	}
	m = press(t, m, "K")
	if got := joined(t, m); got != "BACD" {
		t.Fatalf("moving the first item up must be a no-op, got %s", got)
	}
	m = press(t, m, "J", "J")
	if got := joined(t, m); got != "ACBD" || m.itemCursor != 2 {
		t.Fatalf("expected ACBD with cursor 2, got %s cursor=%d", got, m.itemCursor)
	}
}

func TestMouseDrag_PressMotionRelease(t *testing.T) {
	m := openABCD(t)

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, rowY(0)))
	if !m.drag.Dragging() || m.dragSrc != dragMouse {
		t.Fatalf("expected press on grip to start a drag")
	}
	m = update(t, m,
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, rowY(1)),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, rowY(2)),
		// Off the list: target stays at 2.
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, rowY(9)),
		mouse(tea.MouseActionRelease, tea.MouseButtonNone, 20, rowY(9)),
	)
	if got := joined(t, m); got != "BCAD" {
		t.Fatalf("expected BCAD, got %s", got)
	}
	if m.drag.Dragging() {
		t.Fatalf("expected idle after release")
	}
}

func TestMouse_PressOffGripDoesNotDrag(t *testing.T) {
	m := openABCD(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 12, rowY(2)))
	if m.drag.Dragging() {
		t.Fatalf("press on the text must not start a drag")
	}
	if m.itemCursor != 2 {
		t.Fatalf("expected click to select row 2, got %d", m.itemCursor)
	}
	m = update(t, m,
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 12, rowY(0)),
		mouse(tea.MouseActionRelease, tea.MouseButtonNone, 12, rowY(0)),
	)
	if got := joined(t, m); got != "ABCD" {
		t.Fatalf("expected unchanged order, got %s", got)
	}
}

func TestMouse_CheckboxClickToggles(t *testing.T) {
	m := openABCD(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, checkboxLeft, rowY(1)))
	l := m.activeList()
	if !l.Items[1].Completed || l.Items[0].Completed {
		t.Fatalf("expected only B completed, got %+v", l.Items)
	}
}

func TestMouseDrag_SecondPressInterrupts(t *testing.T) {
	m := openABCD(t)
	m = update(t, m,
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, rowY(0)),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 20, rowY(3)),
		mouse(tea.MouseActionPress, tea.MouseButtonRight, 20, rowY(3)),
	)
	if m.drag.Dragging() || m.dragSrc != dragNone {
		t.Fatalf("expected the second press to cancel the drag")
	}
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 20, rowY(3)))
	if got := joined(t, m); got != "ABCD" {
		t.Fatalf("expected unchanged order, got %s", got)
	}
}

func TestMouseDrag_EscInterrupts(t *testing.T) {
	m := openABCD(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, rowY(1)))
	m = press(t, m, "esc")
	if m.drag.Dragging() || m.view != viewList {
		t.Fatalf("expected esc to cancel the mouse drag and stay in the list")
	}
}

func TestKeyboardGrab_IgnoresMousePress(t *testing.T) {
	m := openABCD(t)
	m = press(t, m, "m")
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, rowY(3)))
	if m.dragSrc != dragKeyboard || m.drag.Dragged() != 0 {
		t.Fatalf("first gesture must win, got src=%v dragged=%d", m.dragSrc, m.drag.Dragged())
	}
}

func TestMutationDuringDragCancelsIt(t *testing.T) {
	m := openABCD(t)
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, rowY(0)))

	next, ch := m.engine.DeleteItem(m.snap, "l1", "d")
	(&m).apply(next, ch)

	if m.drag.Dragging() || m.dragSrc != dragNone {
		t.Fatalf("expected drag cancelled when the list changed")
	}
	m = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 20, rowY(2)))
	if got := joined(t, m); got != "ABC" {
		t.Fatalf("expected no move after cancellation, got %s", got)
	}
}

func TestItemRows_ScrollKeepsCursorVisible(t *testing.T) {
	m := newTestModel(t, Options{}, testList("l1", "LONG", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J"))
	// Room for 12 - 3 - 5 = 4 rows.
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	m = press(t, m, "enter")
	m = press(t, m, "down", "down", "down", "down", "down")

	rows := m.itemRows()
	if len(rows) != 4 {
		t.Fatalf("expected 4 visible rows, got %d", len(rows))
	}
	if rows[0].Index != 2 || rows[3].Index != 5 || rows[0].Top != bodyTop {
		t.Fatalf("unexpected window %+v", rows)
	}

	// The grip of the first visible row drags item 2.
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, bodyTop))
	if m.drag.Dragged() != 2 {
		t.Fatalf("expected item 2 dragged, got %d", m.drag.Dragged())
	}
}
