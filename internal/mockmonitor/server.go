package mockmonitor

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the mock monitor over HTTP: /ws for the dashboard
// protocol, /metrics for Prometheus, /healthz for probes.
type Server struct {
	broadcaster *Broadcaster
	gen         *Generator
	registry    *prometheus.Registry
	upgrader    websocket.Upgrader
}

// NewServer creates a mock monitor emitting one frame per interval.
func NewServer(interval time.Duration) *Server {
	registry := prometheus.NewRegistry()
	m := newMetrics(registry)
	b := NewBroadcaster(m)
	return &Server{
		broadcaster: b,
		gen:         NewGenerator(b, m, interval),
		registry:    registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dev tool: dashboards connect from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Generator returns the synthetic event source, exposed for tests.
func (s *Server) Generator() *Generator {
	return s.gen
}

// SetupRoutes registers all handlers on the mux.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	c := s.broadcaster.Add(ws)
	log.Printf("dashboard connected (%d total)", s.broadcaster.Count())

	// Mirror the monitor's connect handshake: channel status plus the
	// current controls state.
	s.broadcaster.Send(c, outMessage{
		Type:    client.MsgSupervisionStatus,
		Payload: client.StatusPayload{Status: "connected"},
	})
	s.broadcaster.Send(c, outMessage{
		Type:    client.MsgControlsUpdate,
		Payload: s.gen.Controls(),
	})

	go s.readLoop(c)
}

func (s *Server) readLoop(c *conn) {
	defer func() {
		s.broadcaster.Remove(c)
		log.Printf("dashboard disconnected (%d remaining)", s.broadcaster.Count())
		// The last dashboard leaving ends the run, like the monitor
		// treating a supervision client disconnect as a stop signal.
		if s.broadcaster.Count() == 0 {
			s.gen.Stop()
		}
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}

		var env client.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		switch env.Type {
		case client.CmdStartSupervision:
			if s.gen.Start() {
				log.Printf("supervision started")
			}
		case client.CmdStopSupervision:
			log.Printf("supervision stop requested")
			s.gen.Stop()
		case client.CmdUpdateControls:
			var toggle client.ControlTogglePayload
			if json.Unmarshal(env.Payload, &toggle) != nil {
				continue
			}
			state := s.gen.SetControl(toggle.Module, toggle.Enabled)
			log.Printf("control %q set to %v", toggle.Module, toggle.Enabled)
			s.broadcaster.Broadcast(outMessage{
				Type:    client.MsgControlsUpdate,
				Payload: state,
			})
		}
	}
}

// ListenAndServe starts the HTTP server on host:port.
func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("mock monitor listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
