// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// TurnsTotal counts processed intake turns by final conversation status.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_turns_total",
		Help: "Total processed turns",
	}, []string{"status"})

	// TurnFailures counts turns aborted before producing a reply.
	TurnFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_turn_failures_total",
		Help: "Total turns aborted with an error",
	})

	// ToolCallsTotal counts tool dispatches by tool name and outcome.
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_tool_calls_total",
		Help: "Total tool dispatches",
	}, []string{"tool", "outcome"})

	// LLMRequestDuration tracks generation call latency per provider.
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "LLM generation call duration in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"provider"})

	// ConversationsExpired counts idle conversations swept to expired.
	ConversationsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_conversations_expired_total",
		Help: "Total conversations expired for inactivity",
	})
)

// RecordRequest records an HTTP request observation.
func RecordRequest(method, path, status string, durationSec float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSec)
}

// RecordToolCall records a tool dispatch outcome.
func RecordToolCall(tool string, success bool) {
	outcome := "ok"
	if !success {
		outcome = "rejected"
	}
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}
