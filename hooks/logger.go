package hooks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ogreowl/flightdesk"
)

// LoggerHook writes one zerolog event per model call, tool call and error.
// Request and response bodies are logged at debug level only.
type LoggerHook struct {
	log zerolog.Logger
}

// NewLoggerHook creates a LoggerHook writing to log.
func NewLoggerHook(log zerolog.Logger) *LoggerHook {
	return &LoggerHook{log: log}
}

func (h *LoggerHook) OnBeforeModelCall(_ context.Context, e flightdesk.BeforeModelCallEvent) {
	h.log.Debug().
		Str("model", e.Model).
		Int("messages", len(e.Request)).
		Msg("model call")
}

func (h *LoggerHook) OnAfterModelCall(_ context.Context, e flightdesk.AfterModelCallEvent) {
	if e.Error != nil {
		h.log.Error().
			Err(e.Error).
			Str("model", e.Model).
			Dur("duration", e.Duration).
			Msg("model call failed")
		return
	}

	ev := h.log.Info().
		Str("model", e.Model).
		Dur("duration", e.Duration)
	if e.Response != nil && e.Response.Info != nil {
		ev = ev.
			Int("input_tokens", e.Response.Info.InputTokens).
			Int("output_tokens", e.Response.Info.OutputTokens)
	}
	if e.Response != nil && len(e.Response.Choices) > 0 {
		if call := e.Response.Choices[0].FirstToolCall(); call != nil {
			ev = ev.Str("tool_call", call.FunctionCall.Name)
		}
	}
	ev.Msg("model call done")
}

func (h *LoggerHook) OnBeforeToolCall(_ context.Context, e flightdesk.BeforeToolCallEvent) {
	h.log.Debug().
		Str("tool", e.ToolName).
		Interface("args", e.Args).
		Msg("tool call")
}

func (h *LoggerHook) OnAfterToolCall(_ context.Context, e flightdesk.AfterToolCallEvent) {
	if e.Error != nil {
		h.log.Warn().
			Err(e.Error).
			Str("tool", e.ToolName).
			Msg("tool call rejected")
		return
	}
	h.log.Info().
		Str("tool", e.ToolName).
		Dur("duration", e.Duration).
		Msg("tool call done")
}

func (h *LoggerHook) OnError(_ context.Context, e flightdesk.ErrorEvent) {
	h.log.Error().
		Err(e.Err).
		Str("stage", string(e.Stage)).
		Msg("round degraded")
}

var (
	_ flightdesk.BeforeModelCallHook = (*LoggerHook)(nil)
	_ flightdesk.AfterModelCallHook  = (*LoggerHook)(nil)
	_ flightdesk.BeforeToolCallHook  = (*LoggerHook)(nil)
	_ flightdesk.AfterToolCallHook   = (*LoggerHook)(nil)
	_ flightdesk.ErrorHook           = (*LoggerHook)(nil)
)
