// Package help renders the markdown key reference overlay.
package help

import (
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# Proctor Dashboard

Live view of the remote exam supervision monitor.

## Keys

| Key | Action |
|-----|--------|
| s | start supervision |
| x | stop supervision |
| c | detection controls |
| j/k | scroll alert feed |
| ? | this help |
| esc | close overlay |
| q | quit |

Starting and stopping are **optimistic**: the view switches immediately and
the command is sent in the background. A lost connection behaves like a
server-side stop.
`

// View renders the help overlay, falling back to raw markdown if the
// renderer fails.
func View(width int) string {
	innerW := width - 4
	if innerW < 40 {
		innerW = 40
	}

	body, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		body = helpMarkdown
	}

	return lipgloss.NewStyle().
		Width(innerW).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(body)
}
