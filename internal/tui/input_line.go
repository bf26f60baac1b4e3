package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws value as a single-line text field with a block cursor at the end.
// Long values scroll so the cursor stays visible.
func renderInputLine(bodyW int, value string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// The field must stay one visual line; newlines would look like wrapped input.
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")

	// Room for padding on both sides and the cursor cell.
	avail := bodyW - 3
	if w := xansi.StringWidth(value); w > avail {
		value = "…" + xansi.TruncateLeft(value, w-avail+1, "")
	}
	cursor := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(" ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+value+cursor+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body; terminate styling so it does not bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

func renderCreateProjectModal(width int, input string) string {
	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("enter: create   esc: cancel")
	content := strings.Join([]string{
		"Project name",
		renderInputLine(bodyW, input),
		"",
		help,
	}, "\n")
	return renderModalBox(width, "New project", content)
}
