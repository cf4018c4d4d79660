package spotify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records client activity as Prometheus counters. A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
	cacheTotal    *prometheus.CounterVec
}

// NewMetrics registers the client counters on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotq_requests_total",
				Help: "Spotify API requests by kind (token, query, post) and outcome",
			},
			[]string{"kind", "outcome"},
		),
		cacheTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotq_cache_lookups_total",
				Help: "Cache lookups by kind and result (hit, miss)",
			},
			[]string{"kind", "result"},
		),
	}
}

func (m *Metrics) request(kind, outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) lookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(kind, result).Inc()
}
