package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const modalMaxWidth = 60

func modalBodyWidth(width int) int {
	w := width - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox wraps content in a titled, padded box sized for a terminal of width columns.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Width(bodyW).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(" " + title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	return box.Render(header + "\n\n" + content)
}

// renderConfirmModal asks a yes/no question. The answer keys are shown as buttons; there is
// no focus cycling since each answer has its own key.
func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string) string {
	// Avoid borders on the buttons: nested borders inside a bordered modal render with
	// background artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnConfirm := btnBase.
		Foreground(colorAccentFg).
		Background(colorError).
		Bold(true)

	sep := lipgloss.NewStyle().Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, btnConfirm.Render(confirmLabel), sep, btnBase.Render(cancelLabel))

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("y: delete   n/esc: keep")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
