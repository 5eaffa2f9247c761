package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebSocketMetrics holds Prometheus metrics for live-update connections.
type WebSocketMetrics struct {
	ActiveConnections prometheus.Gauge
	Broadcasts        prometheus.Counter
	Deliveries        prometheus.Counter
	DroppedClients    prometheus.Counter
}

// NewWebSocketMetrics creates and registers WebSocket metrics on the given registry.
func NewWebSocketMetrics(reg prometheus.Registerer) *WebSocketMetrics {
	m := &WebSocketMetrics{
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "active_connections",
			Help:      "Number of open live-update connections.",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "broadcasts_total",
			Help:      "Total number of broadcast calls.",
		}),
		Deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "deliveries_total",
			Help:      "Total number of messages queued to individual connections.",
		}),
		DroppedClients: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "dropped_clients_total",
			Help:      "Total number of connections closed because a delivery failed.",
		}),
	}

	reg.MustRegister(m.ActiveConnections, m.Broadcasts, m.Deliveries, m.DroppedClients)
	return m
}
