package metrics

import "github.com/prometheus/client_golang/prometheus"

// WallMetrics holds Prometheus metrics for walls and word submissions.
type WallMetrics struct {
	WallsCreated   prometheus.Counter
	WordsSubmitted *prometheus.CounterVec
}

// NewWallMetrics creates and registers wall metrics on the given registry.
func NewWallMetrics(reg prometheus.Registerer) *WallMetrics {
	m := &WallMetrics{
		WallsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "walls",
			Name:      "created_total",
			Help:      "Total number of walls created.",
		}),
		WordsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "words",
			Name:      "submitted_total",
			Help:      "Total number of word submissions by operation.",
		}, []string{"operation"}),
	}

	reg.MustRegister(m.WallsCreated, m.WordsSubmitted)
	return m
}
