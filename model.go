package flightdesk

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Model is the agent service: one request in, one decision out. Requests use
// langchaingo message types and the catalog is passed with llms.WithTools.
// Implementations report token usage in a provider-neutral GenerationInfo.
type Model interface {
	GenerateContent(
		ctx context.Context,
		messages []llms.MessageContent,
		options ...llms.CallOption,
	) (*ContentResponse, error)
}

// ContentResponse is a model decision. Only the first choice is consulted.
type ContentResponse struct {
	Choices []*ContentChoice
	Info    *GenerationInfo
}

// ContentChoice is either free text or one or more tool requests.
type ContentChoice struct {
	Content    string
	StopReason string
	ToolCalls  []llms.ToolCall
}

// FirstToolCall returns the first tool call of the choice, or nil when the
// model answered in free text. Any further tool calls are ignored.
func (c *ContentChoice) FirstToolCall() *llms.ToolCall {
	if c == nil {
		return nil
	}
	for i := range c.ToolCalls {
		if c.ToolCalls[i].FunctionCall != nil {
			return &c.ToolCalls[i]
		}
	}
	return nil
}

// GenerationInfo is usage metadata for one request.
type GenerationInfo struct {
	InputTokens  int
	OutputTokens int

	// TotalTokens is taken from the provider when reported, otherwise it is
	// InputTokens + OutputTokens.
	TotalTokens int

	// RawGenerationInfo is the provider's own map, untouched.
	RawGenerationInfo map[string]any

	Duration time.Duration
}
