package hooks

import (
	"context"

	"github.com/ogreowl/flightdesk"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// # Overview
//
// Hooks can implement any combination of hook interfaces; they only receive
// events for the interfaces they implement.
//
//	registry := hooks.NewRegistry().
//	    Register(hooks.NewLoggerHook(log)).
//	    Register(hooks.NewMetricsHook(prometheus.DefaultRegisterer))
//
//	agent := dispatch.NewAgent(model, store).WithHooks(registry)
//
// # Nil Registry
//
// All Fire methods are no-ops on a nil *Registry, so components can hold an
// optional registry without guarding every call site.
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all hooks before the first round.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeModelCall dispatches to every BeforeModelCallHook.
func (r *Registry) FireBeforeModelCall(ctx context.Context, event flightdesk.BeforeModelCallEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(flightdesk.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, event)
		}
	}
}

// FireAfterModelCall dispatches to every AfterModelCallHook.
func (r *Registry) FireAfterModelCall(ctx context.Context, event flightdesk.AfterModelCallEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(flightdesk.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, event)
		}
	}
}

// FireBeforeToolCall dispatches to every BeforeToolCallHook.
func (r *Registry) FireBeforeToolCall(ctx context.Context, event flightdesk.BeforeToolCallEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(flightdesk.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, event)
		}
	}
}

// FireAfterToolCall dispatches to every AfterToolCallHook.
func (r *Registry) FireAfterToolCall(ctx context.Context, event flightdesk.AfterToolCallEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(flightdesk.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, event)
		}
	}
}

// FireError dispatches to every ErrorHook.
// This is informational only; the round still degrades to an apology.
func (r *Registry) FireError(ctx context.Context, event flightdesk.ErrorEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(flightdesk.ErrorHook); ok {
			hook.OnError(ctx, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}
