// Package app wires the dashboard together: user keys, inbound monitor
// events, and the clock tick all funnel into a single Bubble Tea update
// loop, so every piece of mutable state is touched from one logical thread.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/config"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/session"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/theme"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/views/alerts"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/views/controls"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/views/help"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/views/status"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/views/video"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayControls
	OverlayHelp
)

// Commander sends fire-and-forget commands to the monitor. The session
// phase never waits on these; errors surface as a status note only.
type Commander interface {
	StartSupervision() error
	StopSupervision() error
	UpdateControls(module string, enabled bool) error
}

// TickMsg is the once-per-interval clock tick.
type TickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	ws     *client.WSClient
	cmds   Commander
	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	width  int
	height int

	session   *session.Controller
	video     video.Model
	feed      alerts.Model
	statusBar status.Model
	controls  controls.Model

	overlay       Overlay
	clockInterval time.Duration
}

// New creates the root model. ws carries the transport; cmds is injected
// separately so tests can record outbound commands.
func New(ws *client.WSClient, cmds Commander, cfg *config.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		ws:            ws,
		cmds:          cmds,
		ctx:           ctx,
		cancel:        cancel,
		keys:          DefaultKeyMap(),
		session:       session.New(),
		video:         video.New(),
		feed:          alerts.New(cfg.UI.AlertLogCap),
		statusBar:     status.New(),
		controls:      controls.New(),
		clockInterval: cfg.UI.ClockInterval,
	}
}

// Init starts the WebSocket connection and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.tick())
}

func (m Model) listen() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	return m.ws.Listen(m.ctx)
}

func (m Model) read() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	return m.ws.ReadLoop(m.ctx)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.clockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.video.Width = msg.Width
		m.feed.Width = msg.Width
		m.feed.Height = msg.Height - 12
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.statusBar.Clock = time.Time(msg).Format("15:04:05")
		m.feed.Tick()
		return m, m.tick()

	case client.ConnectedMsg:
		m.statusBar.Connected = true
		m.statusBar.Note = ""
		return m, m.read()

	case client.DisconnectedMsg:
		m.statusBar.Connected = false
		// A disconnect is an implicit stop: reset unconditionally, and do
		// not echo a stop command over the channel that just died.
		if m.session.Disconnect() {
			m.resetLive()
		}
		return m, m.listen()

	case client.FrameMsg:
		if m.session.Monitoring() {
			m.video.SetFrame(msg.Payload)
		}
		return m, m.read()

	case client.AlertMsg:
		if m.session.Monitoring() {
			m.feed.Add(msg.Payload)
		}
		return m, m.read()

	case client.StoppedMsg:
		if m.session.ServerStop() {
			m.resetLive()
			m.statusBar.Note = "supervision stopped by monitor"
		}
		return m, m.read()

	case client.ControlsMsg:
		m.controls.Set(msg.Payload)
		return m, m.read()

	case client.StartedMsg:
		m.statusBar.Note = "monitor acknowledged start"
		return m, m.read()

	case client.StoppingMsg:
		m.statusBar.Note = "monitor winding down"
		return m, m.read()

	case client.StatusMsg:
		m.statusBar.Note = "channel " + msg.Payload.Status
		return m, m.read()

	case client.ErrorMsg:
		m.statusBar.Note = "monitor error: " + msg.Payload.Message
		return m, m.read()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay == OverlayControls {
		switch msg.String() {
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			module := controls.Modules[idx]
			enabled := m.controls.Toggle(module)
			m.sendControlToggle(module, enabled)
			return m, nil
		}
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Controls) {
			m.overlay = OverlayNone
		}
		return m, nil
	}
	if m.overlay == OverlayHelp {
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
			m.overlay = OverlayNone
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		// Optimistic: the UI enters monitoring before the monitor hears
		// about it. Entering live mode clears the previous run's alerts.
		if m.session.Start() {
			m.feed.Reset()
			m.video.Reset()
			m.statusBar.Phase = m.session.Phase().String()
			if m.cmds != nil {
				if err := m.cmds.StartSupervision(); err != nil {
					m.statusBar.Note = fmt.Sprintf("start not delivered: %v", err)
				}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		if m.session.Stop() {
			m.resetLive()
			if m.cmds != nil {
				if err := m.cmds.StopSupervision(); err != nil {
					m.statusBar.Note = fmt.Sprintf("stop not delivered: %v", err)
				}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.feed.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.feed.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Controls):
		m.overlay = OverlayControls
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil
	}

	return m, nil
}

func (m *Model) sendControlToggle(module string, enabled bool) {
	if m.cmds == nil {
		return
	}
	if err := m.cmds.UpdateControls(module, enabled); err != nil {
		m.statusBar.Note = fmt.Sprintf("toggle not delivered: %v", err)
	}
}

// resetLive restores the placeholder displays after any transition out of
// monitoring. The same reset serves user stop, server stop, and disconnect.
func (m *Model) resetLive() {
	m.video.Reset()
	m.feed.Reset()
	m.statusBar.Phase = m.session.Phase().String()
}

// StartEnabled reports whether the start control is active.
func (m Model) StartEnabled() bool { return !m.session.Monitoring() }

// StopEnabled reports whether the stop control is active.
func (m Model) StopEnabled() bool { return m.session.Monitoring() }

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.overlay {
	case OverlayControls:
		return m.controls.View(m.width)
	case OverlayHelp:
		return help.View(m.width)
	}

	sections := []string{m.statusBar.View()}

	if !m.session.Monitoring() {
		sections = append(sections,
			theme.StyleDimmed.Render("  ── NOT MONITORING ──"))
	}

	sections = append(sections,
		m.video.View(),
		m.feed.View(),
		m.renderFooter(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFooter() string {
	bright := lipgloss.NewStyle().Foreground(theme.ColorBright)
	start := theme.StyleDimmed.Render("s:start")
	stop := theme.StyleDimmed.Render("x:stop")
	if m.StartEnabled() {
		start = bright.Render("s:start")
	}
	if m.StopEnabled() {
		stop = bright.Render("x:stop")
	}
	rest := theme.StyleDimmed.Render("  j/k:alerts  c:controls  ?:help  q:quit")
	return "  " + start + "  " + stop + rest
}
