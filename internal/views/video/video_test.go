package video

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
)

func encodedFrame(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestLastFrameWins(t *testing.T) {
	m := New()

	frames := []client.VideoFramePayload{
		{Image: encodedFrame(t, 8, 8), FPS: 24, FaceCount: 1},
		{Image: encodedFrame(t, 8, 8), FPS: 25, FaceCount: 2},
		{Image: encodedFrame(t, 8, 8), FPS: 23, FaceCount: 1},
	}
	for _, f := range frames {
		m.SetFrame(f)
	}

	if m.FPS() != "23" || m.FaceCount() != "1" {
		t.Errorf("stats = fps %s faces %s, want fps 23 faces 1", m.FPS(), m.FaceCount())
	}
	if !m.Live() {
		t.Error("panel should be live after frames")
	}
}

func TestResetRestoresPlaceholders(t *testing.T) {
	m := New()
	m.Width = 60
	m.SetFrame(client.VideoFramePayload{Image: encodedFrame(t, 8, 8), FPS: 24, FaceCount: 1})

	m.Reset()

	if m.Live() {
		t.Error("panel should not be live after reset")
	}
	if m.FPS() != StatUnavailable || m.FaceCount() != StatUnavailable {
		t.Errorf("stats = fps %s faces %s, want %s", m.FPS(), m.FaceCount(), StatUnavailable)
	}
	if !strings.Contains(m.View(), "NO SIGNAL") {
		t.Error("view should show the no-signal placeholder")
	}
	if m.Width != 60 {
		t.Error("reset must not clobber layout width")
	}
}

func TestPayloadLabel(t *testing.T) {
	m := New()
	m.SetFrame(client.VideoFramePayload{Image: encodedFrame(t, 64, 48), FPS: 10})
	if !strings.Contains(m.format, "jpeg 64x48") {
		t.Errorf("format = %q, want jpeg 64x48", m.format)
	}

	// Undecodable payloads must still display, just without a label.
	m.SetFrame(client.VideoFramePayload{Image: "!!!not-base64!!!", FPS: 9})
	if m.format != "" {
		t.Errorf("format = %q, want empty", m.format)
	}
	if m.FPS() != "9" {
		t.Errorf("fps = %s, want 9", m.FPS())
	}
}
