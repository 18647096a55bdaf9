// Package metrics exposes Prometheus counters and histograms for the ask
// pipeline and the completion client.
package metrics

import (
	"net/http"
	"time"

	"github.com/bnde/leuk/internal/intelligence"
	"github.com/bnde/leuk/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leuk"

// Metrics owns a dedicated registry so that several instances (one per
// test, for example) never collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	AsksTotal       *prometheus.CounterVec
	AskDuration     *prometheus.HistogramVec
	LLMCallsTotal   *prometheus.CounterVec
	LLMCallDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AsksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "asks_total",
				Help:      "Total number of questions handled, by outcome and failure reason",
			},
			[]string{"outcome", "reason"},
		),
		AskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ask_duration_seconds",
				Help:      "Duration of the ask pipeline in seconds",
				Buckets:   []float64{.005, .05, .25, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		LLMCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of completion calls, by error code",
			},
			[]string{"model", "error_code"},
		),
		LLMCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "Latency of completion calls in seconds",
				Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"model"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnAsk implements intelligence.AskObserver.
func (m *Metrics) OnAsk(event intelligence.AskEvent) {
	m.AsksTotal.WithLabelValues(string(event.Outcome), string(event.Reason)).Inc()
	m.AskDuration.WithLabelValues(string(event.Outcome)).Observe(event.Duration.Seconds())
}

// OnCallComplete implements llm.Observer.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	code := event.ErrorCode
	if event.Success {
		code = "none"
	}
	m.LLMCallsTotal.WithLabelValues(event.Model, code).Inc()
	latency := time.Duration(event.LatencyMs) * time.Millisecond
	m.LLMCallDuration.WithLabelValues(event.Model).Observe(latency.Seconds())
}
