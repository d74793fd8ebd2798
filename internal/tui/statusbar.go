package tui

import (
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar renders the bottom key hints with the data file on the right.
func renderStatusBar(width int, path string, dirty bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [x]delete  [w]save  [?]help  [q]uit"
	right := ""
	if path != "" {
		marker := ""
		if dirty {
			marker = "*"
		}
		room := width - lipgloss.Width(left) - 3
		right = cli.Truncate(path, max(room, 8)) + marker + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
