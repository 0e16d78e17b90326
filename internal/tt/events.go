// Package tt provides test helpers shared across flightdesk packages.
package tt

import (
	"context"
	"sync"

	"github.com/ogreowl/flightdesk"
)

// -----------------------------------------------------------------------------
// RecordingHook - implements every flightdesk hook interface
// -----------------------------------------------------------------------------

// RecordingHook stores every event it receives, in order.
type RecordingHook struct {
	mu sync.Mutex

	BeforeModelCalls []flightdesk.BeforeModelCallEvent
	AfterModelCalls  []flightdesk.AfterModelCallEvent
	BeforeToolCalls  []flightdesk.BeforeToolCallEvent
	AfterToolCalls   []flightdesk.AfterToolCallEvent
	Errors           []flightdesk.ErrorEvent

	// Sequence lists event kinds in arrival order, e.g. "before_model".
	Sequence []string
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

func (h *RecordingHook) OnBeforeModelCall(_ context.Context, e flightdesk.BeforeModelCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.BeforeModelCalls = append(h.BeforeModelCalls, e)
	h.Sequence = append(h.Sequence, "before_model")
}

func (h *RecordingHook) OnAfterModelCall(_ context.Context, e flightdesk.AfterModelCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.AfterModelCalls = append(h.AfterModelCalls, e)
	h.Sequence = append(h.Sequence, "after_model")
}

func (h *RecordingHook) OnBeforeToolCall(_ context.Context, e flightdesk.BeforeToolCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.BeforeToolCalls = append(h.BeforeToolCalls, e)
	h.Sequence = append(h.Sequence, "before_tool")
}

func (h *RecordingHook) OnAfterToolCall(_ context.Context, e flightdesk.AfterToolCallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.AfterToolCalls = append(h.AfterToolCalls, e)
	h.Sequence = append(h.Sequence, "after_tool")
}

func (h *RecordingHook) OnError(_ context.Context, e flightdesk.ErrorEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Errors = append(h.Errors, e)
	h.Sequence = append(h.Sequence, "error")
}

var (
	_ flightdesk.BeforeModelCallHook = (*RecordingHook)(nil)
	_ flightdesk.AfterModelCallHook  = (*RecordingHook)(nil)
	_ flightdesk.BeforeToolCallHook  = (*RecordingHook)(nil)
	_ flightdesk.AfterToolCallHook   = (*RecordingHook)(nil)
	_ flightdesk.ErrorHook           = (*RecordingHook)(nil)
)
