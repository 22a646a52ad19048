package status

import (
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the status bar state: connection indicator, session phase,
// wall clock, and a transient one-line note.
type Model struct {
	Connected bool
	Phase     string
	Clock     string
	Note      string
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{Phase: "idle"}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Disconnected")
	}

	phaseStr := lipgloss.NewStyle().Foreground(theme.PhaseColor(m.Phase)).Render(m.Phase)

	clock := m.Clock
	if clock == "" {
		clock = "--:--:--"
	}
	clockStr := theme.StyleDimmed.Render(clock)

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + phaseStr + sep + clockStr
	if m.Note != "" {
		content += sep + theme.StyleDimmed.Render(m.Note)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
