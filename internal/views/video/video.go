// Package video renders the live frame panel: the most recently delivered
// frame wins unconditionally, and a session reset restores placeholders.
package video

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Registered so DecodeConfig can label the payload.
	_ "image/jpeg"
	_ "image/png"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// StatUnavailable is the placeholder shown for numeric indicators when no
// frame is displayed.
const StatUnavailable = "--"

// Model holds the video panel state.
type Model struct {
	Width int

	live         bool
	fps          int
	faceCount    int
	alertsCount  int
	payloadBytes int
	format       string // e.g. "jpeg 640x480", empty if undecodable
	frames       int    // frames received since the last reset
}

// New creates a video panel showing the placeholder.
func New() Model {
	return Model{}
}

// SetFrame replaces the displayed frame with the given payload, verbatim.
// No smoothing, validation, or rate limiting: if frames arrive faster than
// the render cycle, the last-delivered frame wins.
func (m *Model) SetFrame(p client.VideoFramePayload) {
	m.live = true
	m.fps = p.FPS
	m.faceCount = p.FaceCount
	m.alertsCount = p.AlertsCount
	m.frames++

	raw, err := base64.StdEncoding.DecodeString(p.Image)
	if err != nil {
		m.payloadBytes = len(p.Image)
		m.format = ""
		return
	}
	m.payloadBytes = len(raw)
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
		m.format = fmt.Sprintf("%s %dx%d", format, cfg.Width, cfg.Height)
	} else {
		m.format = ""
	}
}

// Reset restores the no-signal placeholder and unavailable stat markers.
func (m *Model) Reset() {
	*m = Model{Width: m.Width}
}

// Live reports whether a frame is currently displayed.
func (m Model) Live() bool { return m.live }

// FPS returns the displayed frame-rate indicator.
func (m Model) FPS() string {
	if !m.live {
		return StatUnavailable
	}
	return fmt.Sprintf("%d", m.fps)
}

// FaceCount returns the displayed face-count indicator.
func (m Model) FaceCount() string {
	if !m.live {
		return StatUnavailable
	}
	return fmt.Sprintf("%d", m.faceCount)
}

// View renders the video surface with its stat row.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var body string
	if m.live {
		label := "LIVE"
		if m.format != "" {
			label = fmt.Sprintf("LIVE  %s  %s", m.format, formatBytes(m.payloadBytes))
		}
		body = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Bold(true).Render("● "+label) +
			theme.StyleDimmed.Render(fmt.Sprintf("  frame #%d", m.frames))
	} else {
		body = theme.StyleDimmed.Render("NO SIGNAL — press s to start monitoring")
	}

	statStyle := lipgloss.NewStyle().Padding(0, 1)
	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	stats := strings.Join([]string{
		statStyle.Foreground(theme.ColorAccent).Render("FPS: " + m.FPS()),
		statStyle.Foreground(theme.ColorBright).Render("Faces: " + m.FaceCount()),
		statStyle.Foreground(theme.ColorWarning).Render("Frame alerts: " + m.alertsStat()),
	}, sep)

	content := lipgloss.JoinVertical(lipgloss.Left, body, stats)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

func (m Model) alertsStat() string {
	if !m.live {
		return StatUnavailable
	}
	return fmt.Sprintf("%d", m.alertsCount)
}

func formatBytes(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fMB", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fKB", float64(n)/1_000)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
