package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalBoxWidth(termWidth int) int {
	w := termWidth - 8
	if w > 60 {
		w = 60
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth is the usable text width inside the box (border + padding).
func modalBodyWidth(termWidth int) int {
	return modalBoxWidth(termWidth) - 4
}

func renderModalBox(termWidth int, title, content string) string {
	w := modalBoxWidth(termWidth)
	header := lipgloss.NewStyle().Bold(true).Width(w - 4).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Foreground(colorSurfaceFg).
		Padding(0, 1).
		Width(w - 2).
		Render(header + "\n\n" + content)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	// No nested borders: some terminals smear the background around them.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderInputModal(width int, title, input, hint string) string {
	bodyW := modalBodyWidth(width)
	content := strings.Join([]string{
		input,
		"",
		styleMuted().Width(bodyW).Render(hint),
	}, "\n")
	return renderModalBox(width, title, content)
}
