package hooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"

	"github.com/ogreowl/flightdesk"
)

func decodeTrace(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs
		}
		require.NoError(t, err)
		docs = append(docs, doc)
	}
}

func TestTraceHook_WritesOneDocumentPerEvent(t *testing.T) {
	var buf bytes.Buffer
	h := NewTraceHook(&buf)
	h.now = func() time.Time { return time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	h.OnBeforeModelCall(ctx, flightdesk.BeforeModelCallEvent{
		Model: "gpt-4o",
		Request: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, "Today is 6/13/2024"),
			llms.TextParts(llms.ChatMessageTypeHuman, "Delete F2"),
		},
	})
	h.OnAfterModelCall(ctx, flightdesk.AfterModelCallEvent{
		Model:    "gpt-4o",
		Duration: 2 * time.Second,
		Response: &flightdesk.ContentResponse{
			Choices: []*flightdesk.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					FunctionCall: &llms.FunctionCall{Name: "delete_flight", Arguments: `{"flightId":"F2"}`},
				}},
			}},
			Info: &flightdesk.GenerationInfo{InputTokens: 10, OutputTokens: 2, TotalTokens: 12},
		},
	})
	h.OnBeforeToolCall(ctx, flightdesk.BeforeToolCallEvent{
		ToolName: "delete_flight",
		Args:     map[string]string{"flightId": "F2"},
	})
	h.OnAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: "delete_flight", Output: "ok"})
	h.OnError(ctx, flightdesk.ErrorEvent{Stage: flightdesk.StageWeather, Err: errors.New("timeout")})

	docs := decodeTrace(t, buf.Bytes())
	require.Len(t, docs, 5)

	assert.Equal(t, "before_model_call", docs[0]["event"])
	assert.Equal(t, "2024-06-13 08:00:00.000", docs[0]["at"])
	assert.Equal(t, []any{
		map[string]any{"role": "system", "content": "Today is 6/13/2024"},
		map[string]any{"role": "human", "content": "Delete F2"},
	}, docs[0]["request"])

	assert.Equal(t, "2s", docs[1]["duration"])
	assert.Equal(t, []any{`delete_flight {"flightId":"F2"}`}, docs[1]["tool_calls"])
	assert.Equal(t, map[string]any{"input": 10, "output": 2, "total": 12}, docs[1]["tokens"])

	assert.Equal(t, map[string]any{"flightId": "F2"}, docs[2]["args"])
	assert.Equal(t, "ok", docs[3]["output"])
	assert.NotContains(t, docs[3], "error")

	assert.Equal(t, "weather", docs[4]["stage"])
	assert.Equal(t, "timeout", docs[4]["error"])
}
