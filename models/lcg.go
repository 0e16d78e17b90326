package models

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/ogreowl/flightdesk"
)

// LCGWrapper wraps an llms.Model and implements flightdesk.Model.
// It normalizes token usage across providers.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4o"))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4o")
//
//	response, err := model.GenerateContent(ctx, messages, llms.WithTools(tools))
type LCGWrapper struct {
	model     llms.Model
	modelName string
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name reported by Name.
// Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// Name returns the configured model name.
func (m *LCGWrapper) Name() string {
	return m.modelName
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// GenerateContent implements flightdesk.Model.
func (m *LCGWrapper) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*flightdesk.ContentResponse, error) {
	start := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, options...)
	duration := time.Since(start)

	var response *flightdesk.ContentResponse
	if lcgResponse != nil {
		response = convertLCGResponse(lcgResponse, duration)
	}
	return response, err
}

// convertLCGResponse converts an llms.ContentResponse, normalizing token counts.
func convertLCGResponse(
	lcgResponse *llms.ContentResponse,
	duration time.Duration,
) *flightdesk.ContentResponse {
	response := &flightdesk.ContentResponse{
		Choices: make([]*flightdesk.ContentChoice, len(lcgResponse.Choices)),
		Info:    &flightdesk.GenerationInfo{Duration: duration},
	}

	for i, choice := range lcgResponse.Choices {
		if choice == nil {
			response.Choices[i] = &flightdesk.ContentChoice{}
			continue
		}
		response.Choices[i] = &flightdesk.ContentChoice{
			Content:    choice.Content,
			StopReason: choice.StopReason,
			ToolCalls:  choice.ToolCalls,
		}
	}

	if len(lcgResponse.Choices) > 0 && lcgResponse.Choices[0] != nil &&
		lcgResponse.Choices[0].GenerationInfo != nil {
		rawInfo := lcgResponse.Choices[0].GenerationInfo
		response.Info.RawGenerationInfo = rawInfo
		response.Info.InputTokens = extractInputTokens(rawInfo)
		response.Info.OutputTokens = extractOutputTokens(rawInfo)
		response.Info.TotalTokens = extractTotalTokens(
			rawInfo,
			response.Info.InputTokens,
			response.Info.OutputTokens,
		)
	}

	return response
}

// extractInputTokens handles the key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "input_tokens")
}

func extractOutputTokens(info map[string]any) int {
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return getIntFromMap(info, "output_tokens")
}

// extractTotalTokens falls back to input + output.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

func getIntFromMap(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements flightdesk.Model.
var _ flightdesk.Model = (*LCGWrapper)(nil)
