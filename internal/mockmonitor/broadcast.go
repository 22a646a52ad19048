// Package mockmonitor is a development stand-in for the remote proctoring
// monitor: it speaks the dashboard wire protocol over WebSocket and emits
// synthetic frames and alerts so the TUI can be exercised without cameras
// or detection models.
package mockmonitor

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/gorilla/websocket"
)

// outMessage is the server-side envelope; payloads are marshaled inline.
type outMessage struct {
	Type    client.MessageType `json:"type"`
	Payload interface{}        `json:"payload,omitempty"`
}

type conn struct {
	ws   *websocket.Conn
	send chan []byte
}

func newConn(ws *websocket.Conn) *conn {
	c := &conn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *conn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *conn) close() {
	close(c.send)
}

// Broadcaster fans outbound envelopes to all connected dashboards.
type Broadcaster struct {
	mu      sync.RWMutex
	conns   map[*conn]bool
	metrics *metrics
}

func NewBroadcaster(m *metrics) *Broadcaster {
	return &Broadcaster{
		conns:   make(map[*conn]bool),
		metrics: m,
	}
}

func (b *Broadcaster) Add(ws *websocket.Conn) *conn {
	c := newConn(ws)
	b.mu.Lock()
	b.conns[c] = true
	n := len(b.conns)
	b.mu.Unlock()
	b.metrics.clients.Set(float64(n))
	return c
}

func (b *Broadcaster) Remove(c *conn) {
	b.mu.Lock()
	if _, ok := b.conns[c]; ok {
		delete(b.conns, c)
		c.close()
	}
	n := len(b.conns)
	b.mu.Unlock()
	b.metrics.clients.Set(float64(n))
}

// Send delivers one envelope to a single connection, dropping it if the
// client cannot keep up.
func (b *Broadcaster) Send(c *conn, msg outMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Broadcast delivers one envelope to every connection. Clients that cannot
// keep up are disconnected rather than queued without bound.
func (b *Broadcaster) Broadcast(msg outMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	b.mu.RLock()
	conns := make([]*conn, 0, len(b.conns))
	for c := range b.conns {
		conns = append(conns, c)
	}
	b.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			b.Remove(c)
		}
	}
}

func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.conns)
}
