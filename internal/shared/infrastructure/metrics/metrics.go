// Package metrics registers the Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	// CommandsTotal counts executed commands by name and outcome.
	CommandsTotal *prometheus.CounterVec

	// BatchItemsTotal counts batch items by action and outcome.
	BatchItemsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency by route and code.
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates a Metrics bundle with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siteline",
			Name:      "commands_total",
			Help:      "Commands executed, by command name and outcome.",
		}, []string{"command", "outcome"}),
		BatchItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siteline",
			Name:      "batch_items_total",
			Help:      "Batch operation items processed, by action and outcome.",
		}, []string{"action", "outcome"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "siteline",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

// ObserveCommand records a command execution outcome.
func (m *Metrics) ObserveCommand(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
}
