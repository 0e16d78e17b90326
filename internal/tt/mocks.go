package tt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/weather"
)

// -----------------------------------------------------------------------------
// MockModel - implements flightdesk.Model
// -----------------------------------------------------------------------------

// MockModel is a configurable mock that implements flightdesk.Model.
// Responses and errors are consumed in call order.
type MockModel struct {
	mu        sync.Mutex
	responses []*flightdesk.ContentResponse
	errors    []error
	callCount int

	// CapturedMessages stores the messages passed to each GenerateContent call.
	CapturedMessages [][]llms.MessageContent

	// CapturedOptions stores the resolved call options of each call.
	CapturedOptions []llms.CallOptions
}

// NewMockModel creates an empty MockModel.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddResponse queues a free-text response.
func (m *MockModel) AddResponse(content string) *MockModel {
	return m.AddRawResponse(&flightdesk.ContentResponse{
		Choices: []*flightdesk.ContentChoice{{Content: content, StopReason: "stop"}},
		Info:    &flightdesk.GenerationInfo{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})
}

// AddToolCall queues a response requesting one tool call.
func (m *MockModel) AddToolCall(name, arguments string) *MockModel {
	return m.AddToolCalls(flightdesk.ToolCall{Name: name, Arguments: arguments})
}

// AddToolCalls queues a response requesting several tool calls in one choice.
func (m *MockModel) AddToolCalls(calls ...flightdesk.ToolCall) *MockModel {
	toolCalls := make([]llms.ToolCall, len(calls))
	for i, c := range calls {
		toolCalls[i] = llms.ToolCall{
			ID:   fmt.Sprintf("call_%d", i+1),
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      c.Name,
				Arguments: c.Arguments,
			},
		}
	}
	return m.AddRawResponse(&flightdesk.ContentResponse{
		Choices: []*flightdesk.ContentChoice{{StopReason: "tool_calls", ToolCalls: toolCalls}},
		Info:    &flightdesk.GenerationInfo{InputTokens: 20, OutputTokens: 8, TotalTokens: 28},
	})
}

// AddRawResponse queues a raw ContentResponse.
// Use this when you need full control over the response structure
// (e.g., empty Choices slice).
func (m *MockModel) AddRawResponse(resp *flightdesk.ContentResponse) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, nil)
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// GenerateContent implements flightdesk.Model.
// With nothing queued it answers "ok".
func (m *MockModel) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*flightdesk.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.callCount
	m.callCount++

	m.CapturedMessages = append(m.CapturedMessages, messages)
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	m.CapturedOptions = append(m.CapturedOptions, opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) && m.responses[idx] != nil {
		return m.responses[idx], nil
	}
	return &flightdesk.ContentResponse{
		Choices: []*flightdesk.ContentChoice{{Content: "ok", StopReason: "stop"}},
		Info:    &flightdesk.GenerationInfo{InputTokens: 10, OutputTokens: 1, TotalTokens: 11},
	}, nil
}

var _ flightdesk.Model = (*MockModel)(nil)

// -----------------------------------------------------------------------------
// MockWeather - implements weather.Lookup
// -----------------------------------------------------------------------------

// WeatherCall records one Resolve invocation.
type WeatherCall struct {
	CityOrCode string
	At         *time.Time
}

// MockWeather is a configurable weather.Lookup. Reports are keyed by the
// exact cityOrCode argument; unknown keys return Err or weather.ErrNotFound.
type MockWeather struct {
	mu      sync.Mutex
	reports map[string]*weather.Report
	Err     error
	Calls   []WeatherCall
}

// NewMockWeather creates a MockWeather with no reports.
func NewMockWeather() *MockWeather {
	return &MockWeather{reports: make(map[string]*weather.Report)}
}

// WithReport registers the report returned for cityOrCode.
func (w *MockWeather) WithReport(cityOrCode string, r *weather.Report) *MockWeather {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports[cityOrCode] = r
	return w
}

// WithError makes every lookup fail with err.
func (w *MockWeather) WithError(err error) *MockWeather {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Err = err
	return w
}

// Resolve implements weather.Lookup.
func (w *MockWeather) Resolve(ctx context.Context, cityOrCode string, at *time.Time) (*weather.Report, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Calls = append(w.Calls, WeatherCall{CityOrCode: cityOrCode, At: at})

	if w.Err != nil {
		return nil, w.Err
	}
	r, ok := w.reports[cityOrCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", weather.ErrNotFound, cityOrCode)
	}
	return r, nil
}

var _ weather.Lookup = (*MockWeather)(nil)
