// Package hooks provides a registry for observing dispatch rounds, plus the
// stock logging and metrics hooks.
//
// Each hook interface corresponds to a specific event type; implement only
// the interfaces you need.
//
// # Hook Interfaces
//
// Model call hooks:
//   - [flightdesk.BeforeModelCallHook] - Called before the model is asked for a decision
//   - [flightdesk.AfterModelCallHook] - Called after the model call returns
//
// Tool call hooks:
//   - [flightdesk.BeforeToolCallHook] - Called once arguments are decoded
//   - [flightdesk.AfterToolCallHook] - Called after each tool call attempt
//
// Failure hooks:
//   - [flightdesk.ErrorHook] - Called when a round degrades to an apology
//
// # Stock Hooks
//
//   - [LoggerHook] writes a zerolog event per model call, tool call and error
//   - [MetricsHook] records Prometheus counters and latency histograms
package hooks
