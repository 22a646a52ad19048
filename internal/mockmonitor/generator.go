package mockmonitor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"sync"
	"time"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	frameWidth  = 64
	frameHeight = 48
)

// alertTemplate mirrors the monitor's alert rules. module names which
// detection toggle gates the rule; an empty module is always eligible.
type alertTemplate struct {
	module   string
	kind     string
	message  string
	severity client.Severity
}

var alertTemplates = []alertTemplate{
	{module: "", kind: "Identity Alert", message: "No person detected in the frame.", severity: client.SeverityHigh},
	{module: "", kind: "Identity Alert", message: "An unknown person has been detected.", severity: client.SeverityHigh},
	{module: "object", kind: "Object Alert", message: "Prohibited object detected: cell phone", severity: client.SeverityHigh},
	{module: "gaze", kind: "Behavior Alert", message: "Suspicious gaze detected: Left", severity: client.SeverityMedium},
	{module: "posture", kind: "Behavior Alert", message: "Suspicious posture (e.g., head tilt) detected.", severity: client.SeverityMedium},
	{module: "audio", kind: "Audio Alert", message: "Potential conversation or whisper detected.", severity: client.SeverityLow},
}

// Generator drives one synthetic supervision run at a time.
type Generator struct {
	b        *Broadcaster
	metrics  *metrics
	interval time.Duration

	mu       sync.Mutex
	controls client.ControlsPayload
	running  bool
	stopCh   chan struct{}
}

func NewGenerator(b *Broadcaster, m *metrics, interval time.Duration) *Generator {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Generator{
		b:        b,
		metrics:  m,
		interval: interval,
		controls: client.ControlsPayload{Audio: true, Gaze: true, Object: true, Posture: true},
	}
}

// Controls returns the current detection-module state.
func (g *Generator) Controls() client.ControlsPayload {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controls
}

// SetControl toggles one module and returns the resulting state. Unknown
// modules are ignored.
func (g *Generator) SetControl(module string, enabled bool) client.ControlsPayload {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch module {
	case "audio":
		g.controls.Audio = enabled
	case "gaze":
		g.controls.Gaze = enabled
	case "object":
		g.controls.Object = enabled
	case "posture":
		g.controls.Posture = enabled
	}
	return g.controls
}

// Running reports whether a supervision run is active.
func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Start begins a supervision run. Returns false if one is already active.
func (g *Generator) Start() bool {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return false
	}
	g.running = true
	g.stopCh = make(chan struct{})
	stop := g.stopCh
	g.mu.Unlock()

	g.b.Broadcast(outMessage{Type: client.MsgSupervisionStarted})
	go g.run(stop)
	return true
}

// Stop ends the active run, if any. The run loop broadcasts
// supervision_stopped once it has wound down.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	stop := g.stopCh
	g.mu.Unlock()

	// Announce before releasing the run loop so stopping always precedes
	// stopped on the wire.
	g.b.Broadcast(outMessage{Type: client.MsgSupervisionStopping})
	close(stop)
}

func (g *Generator) run(stop <-chan struct{}) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	tick := 0
	prev := time.Now()
	for {
		select {
		case <-stop:
			g.b.Broadcast(outMessage{Type: client.MsgSupervisionStopped})
			return
		case now := <-ticker.C:
			tick++

			fps := 0
			if d := now.Sub(prev); d > 0 {
				fps = int(time.Second / d)
			}
			prev = now

			faces := 1
			switch r := rand.Intn(20); {
			case r == 0:
				faces = 0
			case r == 1:
				faces = 2
			}

			alerts := g.maybeAlerts(faces)
			g.b.Broadcast(outMessage{
				Type: client.MsgVideoFrame,
				Payload: client.VideoFramePayload{
					Image:       synthFrame(tick),
					FPS:         fps,
					FaceCount:   faces,
					AlertsCount: len(alerts),
				},
			})
			g.metrics.frames.Inc()

			for _, a := range alerts {
				g.b.Broadcast(outMessage{Type: client.MsgNewAlert, Payload: a})
				g.metrics.alerts.WithLabelValues(string(a.Severity)).Inc()
			}
		}
	}
}

// maybeAlerts rolls the alert rules for one frame, honoring the controls
// gating the same way the real monitor does.
func (g *Generator) maybeAlerts(faces int) []client.AlertPayload {
	if rand.Intn(10) != 0 {
		return nil
	}

	eligible := g.eligibleTemplates(faces)
	if len(eligible) == 0 {
		return nil
	}
	tpl := lo.Sample(eligible)

	return []client.AlertPayload{{
		Timestamp: client.AlertTime{Time: time.Now()},
		Type:      tpl.kind,
		Message:   tpl.message,
		Details:   fmt.Sprintf("Evidence: violation_%d_%s.jpg", time.Now().Unix(), uuid.NewString()[:6]),
		Severity:  tpl.severity,
	}}
}

// eligibleTemplates filters the rule set by the controls state. Identity
// rules fire only on identity anomalies (no face or extra faces).
func (g *Generator) eligibleTemplates(faces int) []alertTemplate {
	controls := g.Controls()
	enabled := func(module string) bool {
		switch module {
		case "audio":
			return controls.Audio
		case "gaze":
			return controls.Gaze
		case "object":
			return controls.Object
		case "posture":
			return controls.Posture
		default:
			return faces != 1
		}
	}
	return lo.Filter(alertTemplates, func(t alertTemplate, _ int) bool {
		return enabled(t.module)
	})
}

// synthFrame renders a small moving gradient and returns it base64-encoded,
// shaped like the monitor's JPEG stills.
func synthFrame(tick int) string {
	img := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
	for y := 0; y < frameHeight; y++ {
		for x := 0; x < frameWidth; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*4 + tick*3) % 256),
				G: uint8((y*5 + tick*2) % 256),
				B: uint8((x + y + tick) % 256),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 60}); err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
