package mockmonitor

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	frames  prometheus.Counter
	alerts  *prometheus.CounterVec
	clients prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proctor_mock_frames_total",
			Help: "Total synthetic video frames broadcast.",
		}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proctor_mock_alerts_total",
			Help: "Total synthetic alerts broadcast, by severity.",
		}, []string{"severity"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proctor_mock_connected_clients",
			Help: "Currently connected dashboard clients.",
		}),
	}
	reg.MustRegister(m.frames, m.alerts, m.clients)
	return m
}
