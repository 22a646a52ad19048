package mockmonitor

import (
	"testing"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/prometheus/client_golang/prometheus"
)

// stalledConn registers a connection whose writePump never runs, so the
// send buffer fills and never drains — a client that stopped reading.
func stalledConn(b *Broadcaster) *conn {
	c := &conn{send: make(chan []byte, 64)}
	b.mu.Lock()
	b.conns[c] = true
	b.mu.Unlock()
	return c
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	b := NewBroadcaster(newMetrics(prometheus.NewRegistry()))
	c := stalledConn(b)

	// Saturate the send buffer.
	for i := 0; i < cap(c.send); i++ {
		b.Broadcast(outMessage{Type: client.MsgVideoFrame})
	}
	if b.Count() != 1 {
		t.Fatalf("count = %d while buffer filling, want 1", b.Count())
	}
	if len(c.send) != cap(c.send) {
		t.Fatalf("send buffer = %d/%d, expected full", len(c.send), cap(c.send))
	}

	// The next broadcast cannot enqueue and must disconnect the client
	// rather than block or queue without bound.
	b.Broadcast(outMessage{Type: client.MsgVideoFrame})

	if b.Count() != 0 {
		t.Errorf("count = %d after overflow, want 0 (slow client dropped)", b.Count())
	}

	// Remove closed the channel: the buffered messages drain, then the
	// channel reports closed.
	drained := 0
	for range c.send {
		drained++
	}
	if drained != 64 {
		t.Errorf("drained = %d buffered messages, want 64", drained)
	}
}

func TestSendDropsSilentlyWhenSaturated(t *testing.T) {
	b := NewBroadcaster(newMetrics(prometheus.NewRegistry()))
	c := stalledConn(b)

	for i := 0; i < cap(c.send); i++ {
		b.Send(c, outMessage{Type: client.MsgNewAlert})
	}

	// A targeted send to a saturated client is dropped, not fatal, and
	// does not disconnect: only Broadcast enforces the drop policy.
	b.Send(c, outMessage{Type: client.MsgNewAlert})

	if b.Count() != 1 {
		t.Errorf("count = %d, want 1 (Send must not remove)", b.Count())
	}
	if len(c.send) != cap(c.send) {
		t.Errorf("send buffer = %d/%d, overflow message should be dropped", len(c.send), cap(c.send))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	b := NewBroadcaster(newMetrics(prometheus.NewRegistry()))
	c := stalledConn(b)

	b.Remove(c)
	b.Remove(c) // second removal must not double-close the send channel

	if b.Count() != 0 {
		t.Errorf("count = %d, want 0", b.Count())
	}
}
