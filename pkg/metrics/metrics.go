// Package metrics exposes operational Prometheus metrics for the store and
// the schedule engine.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the process-local Prometheus registry and the counters the
// services report into.
type Collector struct {
	registry            *prometheus.Registry
	mutationsCommitted  *prometheus.CounterVec
	mutationsRolledBack *prometheus.CounterVec
	scheduleGenerations *prometheus.CounterVec
	logger              *slog.Logger
}

// NewCollector creates a Collector with its own registry.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		mutationsCommitted: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "account_mutations_committed_total",
			Help: "Total number of account mutations confirmed by the persistence service",
		}, []string{"operation"}),
		mutationsRolledBack: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "account_mutations_rolled_back_total",
			Help: "Total number of account mutations reverted after a persistence failure",
		}, []string{"operation"}),
		scheduleGenerations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_generations_total",
			Help: "Total number of weekly schedule generations",
		}, []string{"source"}),
		logger: logger,
	}
}

// RecordMutation counts a settled store mutation.
func (c *Collector) RecordMutation(operation string, committed bool) {
	if committed {
		c.mutationsCommitted.WithLabelValues(operation).Inc()
		return
	}
	c.mutationsRolledBack.WithLabelValues(operation).Inc()
}

// RecordScheduleGeneration counts a schedule regeneration. Source is one of
// "auto", "manual" or "optimizer".
func (c *Collector) RecordScheduleGeneration(source string) {
	c.scheduleGenerations.WithLabelValues(source).Inc()
}

// Handler returns the HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
