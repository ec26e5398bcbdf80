// Package metrics backs ports.MetricsCollector with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements ports.MetricsCollector on top of a private Prometheus
// registry, so a program can run more than one Collector (for example, one
// per test) without colliding on the global default registry.
type Collector struct {
	registry *prometheus.Registry

	keysCreated       *prometheus.CounterVec
	toolsMediated     *prometheus.CounterVec
	policyDenials     *prometheus.CounterVec
	schemaViolations  *prometheus.CounterVec
	unknownKeys       *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	registrySize      *prometheus.GaugeVec
	mediationDuration *prometheus.HistogramVec
	qllmLatency       prometheus.Histogram
}

// NewCollector creates and registers every mediator metric against a fresh
// Prometheus registry, returned alongside the Collector so the caller can
// serve it on an HTTP /metrics endpoint.
func NewCollector() (*Collector, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	c := &Collector{
		registry: registry,

		keysCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualmediator",
			Name:      "keys_created_total",
			Help:      "Total number of key tokens issued by KeyRegistries.",
		}, []string{"reason"}),

		toolsMediated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualmediator",
			Name:      "tools_mediated_total",
			Help:      "Total number of tool calls that completed mediation.",
		}, []string{"tool_name", "status"}),

		policyDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualmediator",
			Name:      "policy_denials_total",
			Help:      "Total number of tool calls denied by the PolicyGate.",
		}, []string{"tool_name", "reason"}),

		schemaViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualmediator",
			Name:      "schema_violations_total",
			Help:      "Total number of Q-LLM responses rejected by the SchemaValidator.",
		}, []string{"field"}),

		unknownKeys: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dualmediator",
			Name:      "unknown_keys_total",
			Help:      "Total number of key tokens that failed to resolve.",
		}, []string{"context"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "dualmediator",
			Name:      "active_sessions",
			Help:      "Current number of sessions with a live Mediator.",
		}),

		registrySize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dualmediator",
			Name:      "registry_size",
			Help:      "Current number of entries held by a session's KeyRegistry.",
		}, []string{"session_id"}),

		mediationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dualmediator",
			Name:      "mediation_duration_seconds",
			Help:      "Duration of a full before_tool/execute/after_tool mediation cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"tool_name"}),

		qllmLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dualmediator",
			Name:      "qllm_round_trip_seconds",
			Help:      "Latency of a qllm_remote round trip.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
	return c, registry
}

// IncKeysCreated implements ports.MetricsCollector.
func (c *Collector) IncKeysCreated(labels map[string]string) {
	c.keysCreated.WithLabelValues(label(labels, "reason", "unspecified")).Inc()
}

// IncToolsMediated implements ports.MetricsCollector.
func (c *Collector) IncToolsMediated(toolName string, labels map[string]string) {
	c.toolsMediated.WithLabelValues(toolName, label(labels, "status", "success")).Inc()
}

// IncPolicyDenials implements ports.MetricsCollector.
func (c *Collector) IncPolicyDenials(toolName string, labels map[string]string) {
	c.policyDenials.WithLabelValues(toolName, label(labels, "reason", "unspecified")).Inc()
}

// IncSchemaViolations implements ports.MetricsCollector.
func (c *Collector) IncSchemaViolations(labels map[string]string) {
	c.schemaViolations.WithLabelValues(label(labels, "field", "unspecified")).Inc()
}

// IncUnknownKeys implements ports.MetricsCollector.
func (c *Collector) IncUnknownKeys(labels map[string]string) {
	c.unknownKeys.WithLabelValues(label(labels, "context", "unspecified")).Inc()
}

// SetActiveSessions implements ports.MetricsCollector.
func (c *Collector) SetActiveSessions(count int) {
	c.activeSessions.Set(float64(count))
}

// SetRegistrySize implements ports.MetricsCollector.
func (c *Collector) SetRegistrySize(sessionID string, size int) {
	c.registrySize.WithLabelValues(sessionID).Set(float64(size))
}

// ObserveMediationDuration implements ports.MetricsCollector.
func (c *Collector) ObserveMediationDuration(toolName string, duration time.Duration, labels map[string]string) {
	c.mediationDuration.WithLabelValues(toolName).Observe(duration.Seconds())
}

// ObserveQLLMLatency implements ports.MetricsCollector.
func (c *Collector) ObserveQLLMLatency(duration time.Duration, labels map[string]string) {
	c.qllmLatency.Observe(duration.Seconds())
}

// label returns labels[key] if present and non-empty, or fallback.
func label(labels map[string]string, key, fallback string) string {
	if v, ok := labels[key]; ok && v != "" {
		return v
	}
	return fallback
}
