package flightdesk

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Dispatch Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks allow observing a dispatch round at various points. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to the dispatch agent
//
// Example:
//
//	type AuditHook struct {
//	    logger zerolog.Logger
//	}
//
//	func (h *AuditHook) OnAfterToolCall(ctx context.Context, e flightdesk.AfterToolCallEvent) {
//	    h.logger.Info().Str("tool", e.ToolName).Dur("took", e.Duration).Msg("tool call")
//	}
//
// Hooks are called in registration order. For paired hooks (Before/After), the After
// hook is always called if the Before hook was called, even on error.
//
// Hooks should NOT return errors and must not mutate the schedule.
// -----------------------------------------------------------------------------

// BeforeModelCallHook is notified before the model is asked for a decision.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified after the model call returns, including on error.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified after arguments were decoded and before the
// tool runs.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, event BeforeToolCallEvent)
}

// AfterToolCallHook is notified after a tool call attempt. Calls rejected
// before decoding (unknown tool, malformed arguments) are reported with a nil
// Args and a non-nil Error.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, event AfterToolCallEvent)
}

// ErrorHook is notified when a round degrades to an apology or a weather
// lookup fails.
type ErrorHook interface {
	OnError(ctx context.Context, event ErrorEvent)
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is passed to BeforeModelCallHook.
type BeforeModelCallEvent struct {
	Model   string
	Request []llms.MessageContent
}

// AfterModelCallEvent is passed to AfterModelCallHook.
type AfterModelCallEvent struct {
	Model    string
	Request  []llms.MessageContent
	Response *ContentResponse
	Duration time.Duration
	Error    error
}

// BeforeToolCallEvent is passed to BeforeToolCallHook.
type BeforeToolCallEvent struct {
	ToolName string
	Args     any
}

// AfterToolCallEvent is passed to AfterToolCallHook.
type AfterToolCallEvent struct {
	ToolName string
	Args     any
	Output   any
	Duration time.Duration
	Error    error
}

// ErrorStage names where in the round an error surfaced.
type ErrorStage string

const (
	StageModel    ErrorStage = "model"
	StageToolCall ErrorStage = "tool_call"

	// StageWeather failures do not turn into an apology; the weather tool
	// degrades to its own reply.
	StageWeather ErrorStage = "weather"
)

// ErrorEvent is passed to ErrorHook.
type ErrorEvent struct {
	Stage ErrorStage
	Err   error
}
