package hooks

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ogreowl/flightdesk"
)

// MetricsHook records round activity in Prometheus collectors.
type MetricsHook struct {
	modelCalls   *prometheus.CounterVec
	modelLatency prometheus.Histogram
	tokens       *prometheus.CounterVec
	toolCalls    *prometheus.CounterVec
	toolLatency  *prometheus.HistogramVec
	errors       *prometheus.CounterVec
}

// NewMetricsHook registers the flightdesk collectors on reg. A nil reg means
// the default registerer. Collectors that are already registered are reused,
// so several agents can share one registry.
func NewMetricsHook(reg prometheus.Registerer) (*MetricsHook, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	h := &MetricsHook{
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flightdesk_model_calls_total",
			Help: "Model requests by outcome",
		}, []string{"model", "outcome"}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flightdesk_model_latency_seconds",
			Help:    "Model request latency",
			Buckets: prometheus.DefBuckets,
		}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flightdesk_model_tokens_total",
			Help: "Tokens reported by the model",
		}, []string{"direction"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flightdesk_tool_calls_total",
			Help: "Tool call attempts by tool and outcome",
		}, []string{"tool", "outcome"}),
		toolLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flightdesk_tool_latency_seconds",
			Help:    "Tool execution latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flightdesk_errors_total",
			Help: "Degraded rounds and failed lookups by stage",
		}, []string{"stage"}),
	}

	var err error
	if h.modelCalls, err = register(reg, h.modelCalls); err != nil {
		return nil, err
	}
	if h.modelLatency, err = register(reg, h.modelLatency); err != nil {
		return nil, err
	}
	if h.tokens, err = register(reg, h.tokens); err != nil {
		return nil, err
	}
	if h.toolCalls, err = register(reg, h.toolCalls); err != nil {
		return nil, err
	}
	if h.toolLatency, err = register(reg, h.toolLatency); err != nil {
		return nil, err
	}
	if h.errors, err = register(reg, h.errors); err != nil {
		return nil, err
	}
	return h, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *MetricsHook) OnAfterModelCall(_ context.Context, e flightdesk.AfterModelCallEvent) {
	h.modelCalls.WithLabelValues(e.Model, outcome(e.Error)).Inc()
	h.modelLatency.Observe(e.Duration.Seconds())
	if e.Response != nil && e.Response.Info != nil {
		h.tokens.WithLabelValues("input").Add(float64(e.Response.Info.InputTokens))
		h.tokens.WithLabelValues("output").Add(float64(e.Response.Info.OutputTokens))
	}
}

func (h *MetricsHook) OnAfterToolCall(_ context.Context, e flightdesk.AfterToolCallEvent) {
	h.toolCalls.WithLabelValues(e.ToolName, outcome(e.Error)).Inc()
	if e.Error == nil {
		h.toolLatency.WithLabelValues(e.ToolName).Observe(e.Duration.Seconds())
	}
}

func (h *MetricsHook) OnError(_ context.Context, e flightdesk.ErrorEvent) {
	h.errors.WithLabelValues(string(e.Stage)).Inc()
}

var (
	_ flightdesk.AfterModelCallHook = (*MetricsHook)(nil)
	_ flightdesk.AfterToolCallHook  = (*MetricsHook)(nil)
	_ flightdesk.ErrorHook          = (*MetricsHook)(nil)
)
