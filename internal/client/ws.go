package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// WSClient manages the persistent WebSocket connection to the monitor.
type WSClient struct {
	url       string
	token     string
	baseDelay time.Duration
	maxDelay  time.Duration

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes (ping, commands, auth)
	conn    *websocket.Conn
	pingCtx context.CancelFunc // cancels the active ping goroutine
}

// NewWSClient creates a client that connects to the given WebSocket URL.
// baseDelay and maxDelay bound the reconnect backoff.
func NewWSClient(url, token string, baseDelay, maxDelay time.Duration) *WSClient {
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if maxDelay < baseDelay {
		maxDelay = 30 * time.Second
	}
	return &WSClient{url: url, token: token, baseDelay: baseDelay, maxDelay: maxDelay}
}

// --- Bubble Tea messages ---

// ConnectedMsg is sent when the WebSocket connects.
type ConnectedMsg struct{}

// DisconnectedMsg is sent when the connection drops.
type DisconnectedMsg struct{ Err error }

// FrameMsg delivers one video frame.
type FrameMsg struct{ Payload VideoFramePayload }

// AlertMsg delivers one violation alert.
type AlertMsg struct{ Payload AlertPayload }

// StoppedMsg is sent when the monitor ends supervision on its own.
type StoppedMsg struct{}

// StartedMsg acknowledges a start command. Informational only; the UI has
// already transitioned optimistically.
type StartedMsg struct{}

// StoppingMsg acknowledges a stop command. Informational only.
type StoppingMsg struct{}

// StatusMsg carries the channel status sent on connect.
type StatusMsg struct{ Payload StatusPayload }

// ErrorMsg wraps a monitor-side error.
type ErrorMsg struct{ Payload ErrorPayload }

// ControlsMsg carries the detection-module toggle state.
type ControlsMsg struct{ Payload ControlsPayload }

// Listen returns a Bubble Tea command that connects and reports the result.
// It retries with exponential backoff until the context is cancelled.
func (c *WSClient) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		delay := c.baseDelay
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
			if err != nil {
				time.Sleep(delay)
				delay = min(delay*2, c.maxDelay)
				continue
			}

			// Authenticate if a token is set. No write mutex needed here
			// because the connection isn't shared yet (not stored in c.conn).
			if c.token != "" {
				auth := map[string]string{"type": "auth", "token": c.token}
				if err := conn.WriteJSON(auth); err != nil {
					conn.Close()
					continue
				}
			}

			// Cancel any previous ping goroutine.
			c.mu.Lock()
			if c.pingCtx != nil {
				c.pingCtx()
			}
			pingCtx, pingCancel := context.WithCancel(ctx)
			c.conn = conn
			c.pingCtx = pingCancel
			c.mu.Unlock()

			go c.pingLoop(pingCtx, conn)

			return ConnectedMsg{}
		}
	}
}

// ReadLoop returns a Bubble Tea command that reads messages from the
// connection. It should be started after receiving ConnectedMsg and
// re-issued after every delivered message.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return DisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongTimeout))
			return nil
		})
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.mu.Unlock()
				conn.Close()
				return DisconnectedMsg{Err: err}
			}

			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				continue
			}

			if msg := Dispatch(env); msg != nil {
				return msg
			}
		}
	}
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection changes.
func (c *WSClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// StartSupervision sends the start command. Fire-and-forget: callers apply
// their local transition before calling and never wait for an ack.
func (c *WSClient) StartSupervision() error {
	return c.writeEnvelope(Envelope{Type: CmdStartSupervision})
}

// StopSupervision sends the stop command. Fire-and-forget.
func (c *WSClient) StopSupervision() error {
	return c.writeEnvelope(Envelope{Type: CmdStopSupervision})
}

// UpdateControls asks the monitor to toggle one detection module.
func (c *WSClient) UpdateControls(module string, enabled bool) error {
	payload, err := json.Marshal(ControlTogglePayload{Module: module, Enabled: enabled})
	if err != nil {
		return err
	}
	return c.writeEnvelope(Envelope{Type: CmdUpdateControls, Payload: payload})
}

func (c *WSClient) writeEnvelope(env Envelope) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(env)
}

// Dispatch converts one inbound envelope into its Bubble Tea message.
// Unknown types and malformed payloads yield nil and are skipped.
func Dispatch(env Envelope) tea.Msg {
	switch env.Type {
	case MsgVideoFrame:
		var p VideoFramePayload
		if json.Unmarshal(env.Payload, &p) == nil {
			return FrameMsg{Payload: p}
		}
	case MsgNewAlert:
		var p AlertPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			return AlertMsg{Payload: p}
		}
	case MsgSupervisionStopped:
		return StoppedMsg{}
	case MsgSupervisionStarted:
		return StartedMsg{}
	case MsgSupervisionStopping:
		return StoppingMsg{}
	case MsgSupervisionStatus:
		var p StatusPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			return StatusMsg{Payload: p}
		}
	case MsgSupervisionError:
		var p ErrorPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			return ErrorMsg{Payload: p}
		}
	case MsgControlsUpdate:
		var p ControlsPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			return ControlsMsg{Payload: p}
		}
	}
	return nil
}
