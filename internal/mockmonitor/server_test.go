package mockmonitor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/gorilla/websocket"
)

func dialTestServer(t *testing.T) (*websocket.Conn, *httptest.Server) {
	t.Helper()
	srv := NewServer(10 * time.Millisecond)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, ts
}

func readEnvelope(t *testing.T, conn *websocket.Conn) client.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env client.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return env
}

// waitFor reads until an envelope of the wanted type arrives, skipping
// interleaved frames and alerts.
func waitFor(t *testing.T, conn *websocket.Conn, want client.MessageType) client.Envelope {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		env := readEnvelope(t, conn)
		if env.Type == want {
			return env
		}
	}
	t.Fatalf("never received %q", want)
	return client.Envelope{}
}

func sendCommand(t *testing.T, conn *websocket.Conn, cmd client.MessageType) {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"type": string(cmd)}); err != nil {
		t.Fatalf("write %s: %v", cmd, err)
	}
}

func TestConnectHandshake(t *testing.T) {
	conn, _ := dialTestServer(t)

	env := readEnvelope(t, conn)
	if env.Type != client.MsgSupervisionStatus {
		t.Fatalf("first message = %q, want supervision_status", env.Type)
	}
	var status client.StatusPayload
	if err := json.Unmarshal(env.Payload, &status); err != nil || status.Status != "connected" {
		t.Errorf("status payload = %s", env.Payload)
	}

	env = readEnvelope(t, conn)
	if env.Type != client.MsgControlsUpdate {
		t.Fatalf("second message = %q, want controls_update", env.Type)
	}
}

func TestSupervisionRun(t *testing.T) {
	conn, _ := dialTestServer(t)
	waitFor(t, conn, client.MsgControlsUpdate) // drain handshake

	sendCommand(t, conn, client.CmdStartSupervision)
	waitFor(t, conn, client.MsgSupervisionStarted)

	env := waitFor(t, conn, client.MsgVideoFrame)
	var frame client.VideoFramePayload
	if err := json.Unmarshal(env.Payload, &frame); err != nil {
		t.Fatalf("frame payload: %v", err)
	}
	if frame.Image == "" {
		t.Error("frame should carry an encoded image")
	}
	if frame.FaceCount < 0 {
		t.Errorf("face count = %d", frame.FaceCount)
	}

	sendCommand(t, conn, client.CmdStopSupervision)
	waitFor(t, conn, client.MsgSupervisionStopping)
	waitFor(t, conn, client.MsgSupervisionStopped)
}

func TestUpdateControlsBroadcast(t *testing.T) {
	conn, _ := dialTestServer(t)
	waitFor(t, conn, client.MsgControlsUpdate)

	err := conn.WriteJSON(map[string]interface{}{
		"type":    string(client.CmdUpdateControls),
		"payload": client.ControlTogglePayload{Module: "posture", Enabled: false},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	env := waitFor(t, conn, client.MsgControlsUpdate)
	var state client.ControlsPayload
	if err := json.Unmarshal(env.Payload, &state); err != nil {
		t.Fatalf("controls payload: %v", err)
	}
	if state.Posture {
		t.Error("posture should be disabled after the toggle")
	}
	if !state.Audio {
		t.Error("audio should be untouched")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := NewServer(10 * time.Millisecond)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "proctor_mock_connected_clients") {
		t.Error("metrics should expose the client gauge")
	}
}
