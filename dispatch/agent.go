// Package dispatch runs one conversational round: it composes the request,
// asks the model for a decision, routes a tool call to the schedule, and turns
// every outcome (including failures) into a reply string.
//
// # Round Protocol
//
//	1. Compose the preamble, prior turns and the new utterance, advertise the
//	   tool catalog, and make exactly one model request.
//	2. Free text is the reply.
//	3. A tool call is routed by name. Only the first tool call is honored.
//	4. Any error becomes ApologyReply and is reported to ErrorHook.
//
// The caller owns the history. [Conversation] is a small helper that appends
// the user turn, any system notes and the reply after each round.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/hooks"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/toolchain"
	"github.com/ogreowl/flightdesk/weather"
)

// Agent owns the dependencies of a round. It is not safe for concurrent use;
// serialize rounds against the same store.
type Agent struct {
	model         flightdesk.Model
	modelName     string
	store         *schedule.Store
	weather       weather.Lookup
	hooks         *hooks.Registry
	clock         flightdesk.TimeProvider
	onDataChanged func()
	chain         *toolchain.Native
}

// NewAgent creates an agent over the given model and store with the five
// catalog tools registered. Without a weather lookup check_weather always
// reports that weather could not be fetched.
func NewAgent(model flightdesk.Model, store *schedule.Store) *Agent {
	a := &Agent{
		model:     model,
		modelName: "unknown",
		store:     store,
		clock:     flightdesk.NewDefaultTimeProvider(),
		chain:     toolchain.NewNative(),
	}
	a.registerTools()
	return a
}

// WithWeather sets the weather lookup used by check_weather.
func (a *Agent) WithWeather(w weather.Lookup) *Agent {
	a.weather = w
	return a
}

// WithOnDataChanged sets the callback raised after every attempted add, edit
// or delete, whether or not a flight was found.
func (a *Agent) WithOnDataChanged(fn func()) *Agent {
	a.onDataChanged = fn
	return a
}

// WithHooks sets the hook registry for model calls, tool calls and errors.
func (a *Agent) WithHooks(r *hooks.Registry) *Agent {
	a.hooks = r
	a.chain.WithHooks(r)
	return a
}

// WithTimeProvider replaces the clock used for the preamble.
func (a *Agent) WithTimeProvider(tp flightdesk.TimeProvider) *Agent {
	a.clock = tp
	return a
}

// WithModelName sets the name reported in model call events.
func (a *Agent) WithModelName(name string) *Agent {
	a.modelName = name
	return a
}

// Store returns the schedule the agent operates on.
func (a *Agent) Store() *schedule.Store {
	return a.store
}

// Tools returns the function declarations advertised to the model.
func (a *Agent) Tools() []llms.Tool {
	return a.chain.Definitions()
}

// Messages composes the model request for a round: the preamble as a system
// message, then history, then the utterance.
func (a *Agent) Messages(history []Turn, utterance string) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, len(history)+2)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, Preamble(a.clock.Now(), a.store.Flights())))
	for _, t := range history {
		msgs = append(msgs, llms.TextParts(t.Role.messageType(), t.Content))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, utterance))
	return msgs
}

// Next runs one round and returns its result. It never returns nil.
func (a *Agent) Next(ctx context.Context, history []Turn, utterance string) *TurnResult {
	msgs := a.Messages(history, utterance)

	a.hooks.FireBeforeModelCall(ctx, flightdesk.BeforeModelCallEvent{
		Model:   a.modelName,
		Request: msgs,
	})

	start := time.Now()
	resp, err := a.model.GenerateContent(ctx, msgs, llms.WithTools(a.chain.Definitions()))
	duration := time.Since(start)

	a.hooks.FireAfterModelCall(ctx, flightdesk.AfterModelCallEvent{
		Model:    a.modelName,
		Request:  msgs,
		Response: resp,
		Duration: duration,
		Error:    err,
	})

	if err != nil {
		return a.fail(ctx, flightdesk.StageModel, "", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return a.fail(ctx, flightdesk.StageModel, "", flightdesk.ErrNoChoices)
	}

	choice := resp.Choices[0]
	if call := choice.FirstToolCall(); call != nil {
		return a.Dispatch(ctx, call.FunctionCall.Name, call.FunctionCall.Arguments)
	}

	if strings.TrimSpace(choice.Content) == "" {
		return &TurnResult{Reply: NoResponseReply}
	}
	return &TurnResult{Reply: choice.Content}
}

// Dispatch executes one tool request and maps its outcome to a reply.
// An unknown name is rejected before the arguments are parsed.
func (a *Agent) Dispatch(ctx context.Context, name, rawArgs string) *TurnResult {
	result, err := a.chain.Execute(ctx, flightdesk.ToolCall{Name: name, Arguments: rawArgs})
	if err != nil {
		if errors.Is(err, flightdesk.ErrUnknownTool) || errors.Is(err, flightdesk.ErrMissingToolName) {
			return &TurnResult{Reply: UnknownToolReply, ToolName: name}
		}
		return a.fail(ctx, flightdesk.StageToolCall, name, err)
	}

	out, ok := result.Output.(Outcome)
	if !ok {
		return a.fail(ctx, flightdesk.StageToolCall, name, errors.New("tool returned unexpected output"))
	}

	if out.DataChanged && a.onDataChanged != nil {
		a.onDataChanged()
	}

	tr := &TurnResult{
		Reply:       out.Reply,
		DataChanged: out.DataChanged,
		ToolName:    name,
	}
	if out.Note != "" {
		tr.Notes = []Turn{SystemTurn(out.Note)}
	}
	return tr
}

func (a *Agent) fail(ctx context.Context, stage flightdesk.ErrorStage, toolName string, err error) *TurnResult {
	a.hooks.FireError(ctx, flightdesk.ErrorEvent{Stage: stage, Err: err})
	return &TurnResult{Reply: ApologyReply, ToolName: toolName, Err: err}
}
