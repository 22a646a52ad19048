// Package alerts renders the violation feed: an append-ordered log shown
// most-recent-first. Entries are immutable once inserted and are never
// reordered or deduplicated. Growth is unbounded unless a cap is
// configured, in which case the oldest entries are evicted.
package alerts

import (
	"fmt"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// Entry is one rendered alert. The head of the slice is the newest.
type Entry struct {
	Payload client.AlertPayload
}

// Model holds the alert feed state.
type Model struct {
	Width  int
	Height int

	maxEntries int // 0 = unbounded
	entries    []Entry
	offset     int // scroll offset from the top (newest)

	// Highlight spring for the newest entry, stepped on clock ticks.
	spring  harmonica.Spring
	glow    float64
	glowVel float64
}

// New creates an empty feed. maxEntries <= 0 keeps the log unbounded.
func New(maxEntries int) Model {
	return Model{
		maxEntries: maxEntries,
		spring:     harmonica.NewSpring(harmonica.FPS(1), 6.0, 1.0),
	}
}

// Add prepends a new alert entry and lights the highlight.
func (m *Model) Add(p client.AlertPayload) {
	m.entries = append([]Entry{{Payload: p}}, m.entries...)
	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.offset = 0
	m.glow, m.glowVel = 1.0, 0
}

// Reset empties the feed back to its placeholder state.
func (m *Model) Reset() {
	m.entries = nil
	m.offset = 0
	m.glow, m.glowVel = 0, 0
}

// Tick advances the highlight decay by one clock interval.
func (m *Model) Tick() {
	m.glow, m.glowVel = m.spring.Update(m.glow, m.glowVel, 0)
}

// Len returns the number of alerts received since the last reset.
func (m Model) Len() int { return len(m.entries) }

// Head returns the newest entry, if any.
func (m Model) Head() (Entry, bool) {
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[0], true
}

// ScrollUp moves the viewport toward older entries.
func (m *Model) ScrollUp(n int) {
	m.offset += n
	if max := len(m.entries) - 1; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// ScrollDown moves the viewport back toward the newest entry.
func (m *Model) ScrollDown(n int) {
	m.offset -= n
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the feed panel.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}
	visible := m.Height
	if visible < 3 {
		visible = 3
	}

	high := lo.CountBy(m.entries, func(e Entry) bool {
		return e.Payload.Severity == client.SeverityHigh
	})

	title := theme.StyleHeader.Render(" ALERTS ") +
		theme.StyleDimmed.Render(fmt.Sprintf(" %d total", len(m.entries)))
	if high > 0 {
		title += theme.StyleDanger.Render(fmt.Sprintf("  %d high", high))
	}

	var lines []string
	if len(m.entries) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  No alerts yet."))
	} else {
		end := m.offset + visible
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderEntry(i, width-6))
		}
		if remaining := len(m.entries) - end; remaining > 0 {
			lines = append(lines, theme.StyleDimmed.Render(fmt.Sprintf("  ↓ %d older", remaining)))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

func (m Model) renderEntry(i, maxWidth int) string {
	e := m.entries[i]
	ts := theme.StyleDimmed.Render(e.Payload.Timestamp.Local().Format("15:04:05"))

	sevStyle := lipgloss.NewStyle().Foreground(theme.SeverityColor(string(e.Payload.Severity)))
	sev := sevStyle.Width(7).Render(string(e.Payload.Severity))

	kindStyle := lipgloss.NewStyle().Foreground(theme.ColorBright)
	if i == 0 && m.glow > 0.25 {
		kindStyle = kindStyle.Bold(true).Foreground(theme.ColorHighlight)
	}
	kind := kindStyle.Render(e.Payload.Type)

	msg := e.Payload.Message
	if e.Payload.Details != "" {
		msg += " (" + e.Payload.Details + ")"
	}
	// Truncate on rune boundaries; alert text may carry multibyte names.
	if runes := []rune(msg); len(runes) > maxWidth-30 && maxWidth > 33 {
		msg = string(runes[:maxWidth-33]) + "..."
	}

	return fmt.Sprintf("  %s %s %s %s", ts, sev, kind, theme.StyleDimmed.Render("—")+" "+msg)
}
