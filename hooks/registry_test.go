package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/internal/tt"
)

// errorOnly implements a single hook interface.
type errorOnly struct {
	stages []flightdesk.ErrorStage
}

func (h *errorOnly) OnError(_ context.Context, e flightdesk.ErrorEvent) {
	h.stages = append(h.stages, e.Stage)
}

func fireAll(ctx context.Context, r *Registry) {
	r.FireBeforeModelCall(ctx, flightdesk.BeforeModelCallEvent{Model: "m"})
	r.FireAfterModelCall(ctx, flightdesk.AfterModelCallEvent{Model: "m"})
	r.FireBeforeToolCall(ctx, flightdesk.BeforeToolCallEvent{ToolName: "add_flight"})
	r.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: "add_flight"})
	r.FireError(ctx, flightdesk.ErrorEvent{Stage: flightdesk.StageModel, Err: errors.New("x")})
}

func TestRegistry_DispatchByInterface(t *testing.T) {
	rec := tt.NewRecordingHook()
	only := &errorOnly{}
	r := NewRegistry().Register(rec).Register(only).Register("not a hook")

	fireAll(context.Background(), r)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{
		"before_model", "after_model", "before_tool", "after_tool", "error",
	}, rec.Sequence)
	assert.Equal(t, []flightdesk.ErrorStage{flightdesk.StageModel}, only.stages)
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	var order []string
	first := &orderHook{name: "first", order: &order}
	second := &orderHook{name: "second", order: &order}

	NewRegistry().Register(first).Register(second).
		FireError(context.Background(), flightdesk.ErrorEvent{Stage: flightdesk.StageToolCall})

	assert.Equal(t, []string{"first", "second"}, order)
}

type orderHook struct {
	name  string
	order *[]string
}

func (h *orderHook) OnError(context.Context, flightdesk.ErrorEvent) {
	*h.order = append(*h.order, h.name)
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() { fireAll(context.Background(), r) })
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Clear(t *testing.T) {
	rec := tt.NewRecordingHook()
	r := NewRegistry().Register(rec)

	r.Clear()
	fireAll(context.Background(), r)

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, rec.Sequence)
}
