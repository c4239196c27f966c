// Package metrics holds roster's Prometheus collectors.
//
// roster has no network surface, so nothing is scraped. When a metrics file is
// configured the registry is written in the text exposition format on exit,
// ready for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roster"

// Metrics groups the collectors and the registry they are registered in.
type Metrics struct {
	registry *prometheus.Registry

	Operations       *prometheus.CounterVec
	OperationSeconds *prometheus.HistogramVec
	SalariesAdjusted *prometheus.CounterVec
	Employees        prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Operations run, by name and outcome.",
		}, []string{"operation", "outcome"}),
		OperationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent running an operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		SalariesAdjusted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "salaries_adjusted_total",
			Help:      "Employee salaries changed by batch adjustments, by mode.",
		}, []string{"mode"}),
		Employees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "employees",
			Help:      "Employees in the store at the last summary report.",
		}),
	}

	m.registry.MustRegister(m.Operations, m.OperationSeconds, m.SalariesAdjusted, m.Employees)
	return m
}

// Registry exposes the registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
