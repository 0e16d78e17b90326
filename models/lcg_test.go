package models

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeLLM) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLCGWrapper_GenerateContent(t *testing.T) {
	llm := &fakeLLM{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:    "",
			StopReason: "tool_calls",
			ToolCalls: []llms.ToolCall{{
				ID:   "call_1",
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      "delete_flight",
					Arguments: `{"flightId":"F3"}`,
				},
			}},
			GenerationInfo: map[string]any{
				"PromptTokens":     120,
				"CompletionTokens": 14,
				"TotalTokens":      134,
			},
		}},
	}}
	model := NewLCGWrapper(llm).WithModelName("gpt-4o")

	tools := []llms.Tool{{Type: "function", Function: &llms.FunctionDefinition{Name: "delete_flight"}}}
	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, "Delete F3")}

	resp, err := model.GenerateContent(context.Background(), msgs, llms.WithTools(tools))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", model.Name())
	assert.Same(t, llm, model.Unwrap())
	assert.Equal(t, msgs, llm.messages)
	assert.Equal(t, tools, llm.opts.Tools)

	require.Len(t, resp.Choices, 1)
	call := resp.Choices[0].FirstToolCall()
	require.NotNil(t, call)
	assert.Equal(t, "delete_flight", call.FunctionCall.Name)
	assert.Equal(t, "tool_calls", resp.Choices[0].StopReason)

	require.NotNil(t, resp.Info)
	assert.Equal(t, 120, resp.Info.InputTokens)
	assert.Equal(t, 14, resp.Info.OutputTokens)
	assert.Equal(t, 134, resp.Info.TotalTokens)
	assert.GreaterOrEqual(t, int64(resp.Info.Duration), int64(0))
}

func TestLCGWrapper_Error(t *testing.T) {
	upstream := errors.New("503 service unavailable")
	model := NewLCGWrapper(&fakeLLM{err: upstream})

	resp, err := model.GenerateContent(context.Background(), nil)

	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, resp)
}

func TestLCGWrapper_NilChoice(t *testing.T) {
	model := NewLCGWrapper(&fakeLLM{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{nil},
	}})

	resp, err := model.GenerateContent(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, resp.Choices, 1)
	assert.Nil(t, resp.Choices[0].FirstToolCall())
	assert.Zero(t, resp.Info.TotalTokens)
}

func TestExtractTokens(t *testing.T) {
	type expected struct {
		input  int
		output int
		total  int
	}

	tests := []struct {
		name     string
		input    map[string]any
		expected expected
	}{
		{
			name: "openai keys",
			input: map[string]any{
				"PromptTokens": 10, "CompletionTokens": 5, "TotalTokens": 15,
			},
			expected: expected{input: 10, output: 5, total: 15},
		},
		{
			name: "anthropic keys without total",
			input: map[string]any{
				"InputTokens": 7, "OutputTokens": 3,
			},
			expected: expected{input: 7, output: 3, total: 10},
		},
		{
			name: "snake case floats",
			input: map[string]any{
				"input_tokens": float64(8), "output_tokens": float64(2), "total_tokens": float64(11),
			},
			expected: expected{input: 8, output: 2, total: 11},
		},
		{
			name: "int64 values",
			input: map[string]any{
				"PromptTokens": int64(4), "CompletionTokens": int32(6),
			},
			expected: expected{input: 4, output: 6, total: 10},
		},
		{
			name:     "unrecognized types",
			input:    map[string]any{"PromptTokens": "12"},
			expected: expected{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := extractInputTokens(tc.input)
			out := extractOutputTokens(tc.input)

			assert.Equal(t, tc.expected.input, in)
			assert.Equal(t, tc.expected.output, out)
			assert.Equal(t, tc.expected.total, extractTotalTokens(tc.input, in, out))
		})
	}
}
