// Package client provides the WebSocket client for the remote proctoring
// monitor. Types mirror the monitor wire protocol without importing any
// server-side packages.
package client

import (
	"encoding/json"
	"strings"
	"time"
)

// MessageType identifies the kind of WebSocket message.
type MessageType string

// Inbound event types pushed by the monitor.
const (
	MsgSupervisionStatus   MessageType = "supervision_status"
	MsgSupervisionStarted  MessageType = "supervision_started"
	MsgSupervisionStopping MessageType = "supervision_stopping"
	MsgSupervisionStopped  MessageType = "supervision_stopped"
	MsgSupervisionError    MessageType = "supervision_error"
	MsgVideoFrame          MessageType = "video_frame"
	MsgNewAlert            MessageType = "new_alert"
	MsgControlsUpdate      MessageType = "controls_update"
)

// Outbound command types sent to the monitor.
const (
	CmdStartSupervision MessageType = "start_supervision"
	CmdStopSupervision  MessageType = "stop_supervision"
	CmdUpdateControls   MessageType = "update_controls"
)

// Envelope is the wrapper for all WebSocket messages in both directions.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Severity is the ordered alert category assigned by the monitor.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities for display purposes. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// AlertTime parses the monitor's timestamp format, which is ISO-8601 but
// not always zoned. Zoneless values are taken as local time.
type AlertTime struct {
	time.Time
}

func (t *AlertTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t AlertTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// VideoFramePayload carries one encoded still plus its indicators. Each
// frame fully replaces the previous one; nothing is buffered.
type VideoFramePayload struct {
	Image       string `json:"image"` // base64-encoded JPEG
	FPS         int    `json:"fps"`
	FaceCount   int    `json:"face_count"`
	AlertsCount int    `json:"alerts_count"`
}

// AlertPayload is a single violation alert. Immutable once received.
type AlertPayload struct {
	Timestamp AlertTime `json:"timestamp"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Severity  Severity  `json:"severity"`
}

// StatusPayload acknowledges a connection on the supervision channel.
type StatusPayload struct {
	Status string `json:"status"`
}

// ErrorPayload reports a monitor-side failure (e.g. camera unavailable).
type ErrorPayload struct {
	Message string `json:"message"`
}

// ControlsPayload is the monitor's detection-module toggle state.
type ControlsPayload struct {
	Audio   bool `json:"audio"`
	Gaze    bool `json:"gaze"`
	Object  bool `json:"object"`
	Posture bool `json:"posture"`
}

// ControlTogglePayload is the outbound update_controls command body.
type ControlTogglePayload struct {
	Module  string `json:"module"`
	Enabled bool   `json:"enabled"`
}
