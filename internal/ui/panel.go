package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames lines in the current theme's border. width <= 0 sizes the
// box to its content.
func Panel(lines []string, width int) string {
	t := current
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	if width > 0 {
		// Width excludes the border itself.
		border = border.Width(width - 2)
	}
	return border.Render(strings.Join(lines, "\n"))
}

// AlignRight pads s on the left to width visible cells.
func AlignRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, s)
}
