package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry
type Collector struct {
	registry       *prometheus.Registry
	remoteCalls    *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	workflowRuns   *prometheus.CounterVec
}

// NewCollector registers the service metrics on a fresh registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		remoteCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "giftwrap_remote_calls_total",
			Help: "Remote catalog calls by operation and result.",
		}, []string{"operation", "result"}),
		remoteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "giftwrap_remote_call_duration_seconds",
			Help:    "Remote catalog call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		workflowRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "giftwrap_workflow_runs_total",
			Help: "Provisioning and sync runs by outcome.",
		}, []string{"workflow", "outcome"}),
	}
}

// ObserveRemoteCall records one remote catalog call
func (c *Collector) ObserveRemoteCall(operation string, result string, duration time.Duration) {
	c.remoteCalls.WithLabelValues(operation, result).Inc()
	c.remoteDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordWorkflow records a workflow outcome
func (c *Collector) RecordWorkflow(workflow string, outcome string) {
	c.workflowRuns.WithLabelValues(workflow, outcome).Inc()
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
