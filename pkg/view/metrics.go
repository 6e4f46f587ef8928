package view

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus counters for the viewer.
type Metrics struct {
	graphBuilds       prometheus.Counter
	overlayRecomputes *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
}

// NewMetrics creates the viewer metric set.
func NewMetrics() *Metrics {
	return &Metrics{
		graphBuilds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gridlens_graph_builds_total",
				Help: "Total number of base topology rebuilds",
			},
		),
		overlayRecomputes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridlens_overlay_recomputes_total",
				Help: "Total number of overlay recomputations by resulting state",
			},
			[]string{"state"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridlens_http_requests_total",
				Help: "Total number of HTTP requests by route",
			},
			[]string{"route"},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.graphBuilds,
		m.overlayRecomputes,
		m.requestsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
