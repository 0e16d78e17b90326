package hooks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"

	"github.com/ogreowl/flightdesk"
)

// TraceHook writes a full transcript of every round as YAML documents, one
// per event. Nothing is truncated; it is meant for debugging sessions, not
// production logs.
type TraceHook struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewTraceHook creates a TraceHook writing to w.
func NewTraceHook(w io.Writer) *TraceHook {
	return &TraceHook{out: w, now: time.Now}
}

type traceMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content,omitempty"`
}

type traceEntry struct {
	Event    string         `yaml:"event"`
	At       string         `yaml:"at"`
	Model    string         `yaml:"model,omitempty"`
	Tool     string         `yaml:"tool,omitempty"`
	Stage    string         `yaml:"stage,omitempty"`
	Duration string         `yaml:"duration,omitempty"`
	Request  []traceMessage `yaml:"request,omitempty"`
	Reply    string         `yaml:"reply,omitempty"`
	Calls    []string       `yaml:"tool_calls,omitempty"`
	Args     any            `yaml:"args,omitempty"`
	Output   any            `yaml:"output,omitempty"`
	Tokens   map[string]int `yaml:"tokens,omitempty"`
	Error    string         `yaml:"error,omitempty"`
}

func (h *TraceHook) write(e traceEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e.At = h.now().Format("2006-01-02 15:04:05.000")
	data, err := yaml.Marshal(e)
	if err != nil {
		fmt.Fprintf(h.out, "# failed to marshal %s: %v\n", e.Event, err)
		return
	}
	fmt.Fprintf(h.out, "---\n%s", data)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func transcript(msgs []llms.MessageContent) []traceMessage {
	out := make([]traceMessage, 0, len(msgs))
	for _, m := range msgs {
		tm := traceMessage{Role: string(m.Role)}
		for _, part := range m.Parts {
			if tc, ok := part.(llms.TextContent); ok {
				tm.Content += tc.Text
			}
		}
		out = append(out, tm)
	}
	return out
}

func (h *TraceHook) OnBeforeModelCall(_ context.Context, e flightdesk.BeforeModelCallEvent) {
	h.write(traceEntry{
		Event:   "before_model_call",
		Model:   e.Model,
		Request: transcript(e.Request),
	})
}

func (h *TraceHook) OnAfterModelCall(_ context.Context, e flightdesk.AfterModelCallEvent) {
	entry := traceEntry{
		Event:    "after_model_call",
		Model:    e.Model,
		Duration: e.Duration.String(),
		Error:    errString(e.Error),
	}
	if e.Response != nil {
		if len(e.Response.Choices) > 0 && e.Response.Choices[0] != nil {
			choice := e.Response.Choices[0]
			entry.Reply = choice.Content
			for _, tc := range choice.ToolCalls {
				if tc.FunctionCall != nil {
					entry.Calls = append(entry.Calls, tc.FunctionCall.Name+" "+tc.FunctionCall.Arguments)
				}
			}
		}
		if info := e.Response.Info; info != nil {
			entry.Tokens = map[string]int{
				"input":  info.InputTokens,
				"output": info.OutputTokens,
				"total":  info.TotalTokens,
			}
		}
	}
	h.write(entry)
}

func (h *TraceHook) OnBeforeToolCall(_ context.Context, e flightdesk.BeforeToolCallEvent) {
	h.write(traceEntry{Event: "before_tool_call", Tool: e.ToolName, Args: e.Args})
}

func (h *TraceHook) OnAfterToolCall(_ context.Context, e flightdesk.AfterToolCallEvent) {
	h.write(traceEntry{
		Event:    "after_tool_call",
		Tool:     e.ToolName,
		Duration: e.Duration.String(),
		Output:   e.Output,
		Error:    errString(e.Error),
	})
}

func (h *TraceHook) OnError(_ context.Context, e flightdesk.ErrorEvent) {
	h.write(traceEntry{Event: "error", Stage: string(e.Stage), Error: errString(e.Err)})
}

var (
	_ flightdesk.BeforeModelCallHook = (*TraceHook)(nil)
	_ flightdesk.AfterModelCallHook  = (*TraceHook)(nil)
	_ flightdesk.BeforeToolCallHook  = (*TraceHook)(nil)
	_ flightdesk.AfterToolCallHook   = (*TraceHook)(nil)
	_ flightdesk.ErrorHook           = (*TraceHook)(nil)
)
