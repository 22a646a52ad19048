// Package controls renders the detection-module toggle overlay. The
// authoritative state lives on the monitor; local toggles are optimistic
// and the monitor's controls_update broadcast reconciles them.
package controls

import (
	"fmt"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Modules lists the toggleable detection modules in display order, using
// the monitor's wire names.
var Modules = []string{"audio", "gaze", "object", "posture"}

// Model holds the toggle state.
type Model struct {
	state client.ControlsPayload
}

// New creates a model with all modules enabled, matching the monitor's
// initial state.
func New() Model {
	return Model{state: client.ControlsPayload{Audio: true, Gaze: true, Object: true, Posture: true}}
}

// Set replaces the full state from a controls_update broadcast.
func (m *Model) Set(p client.ControlsPayload) {
	m.state = p
}

// Enabled reports whether the named module is on.
func (m Model) Enabled(module string) bool {
	switch module {
	case "audio":
		return m.state.Audio
	case "gaze":
		return m.state.Gaze
	case "object":
		return m.state.Object
	case "posture":
		return m.state.Posture
	}
	return false
}

// Toggle flips the named module locally and returns the value to send to
// the monitor. Unknown modules return false without changes.
func (m *Model) Toggle(module string) bool {
	switch module {
	case "audio":
		m.state.Audio = !m.state.Audio
		return m.state.Audio
	case "gaze":
		m.state.Gaze = !m.state.Gaze
		return m.state.Gaze
	case "object":
		m.state.Object = !m.state.Object
		return m.state.Object
	case "posture":
		m.state.Posture = !m.state.Posture
		return m.state.Posture
	}
	return false
}

// View renders the overlay panel.
func (m Model) View(width int) string {
	innerW := width - 4
	if innerW < 30 {
		innerW = 30
	}

	title := theme.StyleHeader.Render(" DETECTION CONTROLS ")
	var lines []string
	for i, module := range Modules {
		mark := lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("on ")
		if !m.Enabled(module) {
			mark = theme.StyleDimmed.Render("off")
		}
		lines = append(lines, fmt.Sprintf("  %d  %-8s %s", i+1, module, mark))
	}
	help := theme.StyleDimmed.Render("1-4:toggle  esc:close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		append(append([]string{title, ""}, lines...), "", help)...)

	return lipgloss.NewStyle().
		Width(innerW).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
