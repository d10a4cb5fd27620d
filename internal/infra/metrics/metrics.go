// Package metrics exposes hash pool observability through Prometheus.
package metrics

import (
	"net/http"

	"authgate/internal/infra/hashpool"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the process registry and the hash pool collectors. The pool's
// active-worker gauge is how a crashed worker (reduced capacity) becomes
// visible from the outside.
type Metrics struct {
	registry *prometheus.Registry
}

// New registers collectors reading from the pool's snapshot. GaugeFunc and
// CounterFunc keep the pool itself free of any Prometheus dependency.
func New(pool *hashpool.Pool) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "authgate_hashpool_queue_depth",
			Help: "Jobs currently waiting in the hash pool dispatch queue.",
		}, func() float64 { return float64(pool.Snapshot().QueueDepth) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "authgate_hashpool_queue_capacity",
			Help: "Fixed capacity of the hash pool dispatch queue.",
		}, func() float64 { return float64(pool.Snapshot().QueueCapacity) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "authgate_hashpool_active_workers",
			Help: "Hash workers currently alive; below the configured count means lost capacity.",
		}, func() float64 { return float64(pool.Snapshot().ActiveWorkers) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "authgate_hashpool_jobs_completed_total",
			Help: "Hash and verify jobs that produced a successful result.",
		}, func() float64 { return float64(pool.Snapshot().Completed) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "authgate_hashpool_jobs_failed_total",
			Help: "Hash and verify jobs that produced an error result.",
		}, func() float64 { return float64(pool.Snapshot().Failed) }),
	)

	return &Metrics{registry: registry}
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
