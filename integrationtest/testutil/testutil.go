// Package testutil holds helpers for scenarios that run against a live model.
package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/hooks"
	"github.com/ogreowl/flightdesk/models"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/weather"
)

// Environment variables read by CreateModel.
const (
	EnvAPIKey  = "FLIGHTDESK_TEST_OPENAI_KEY"
	EnvBaseURL = "FLIGHTDESK_TEST_BASE_URL"
	EnvModel   = "FLIGHTDESK_TEST_MODEL"
)

// Now is the fixed "today" scenarios run at, matching the seeded schedule.
var Now = time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC)

// Enabled reports whether live scenarios can run.
func Enabled() bool {
	return os.Getenv(EnvAPIKey) != ""
}

// CreateModel creates the model under test from the environment.
func CreateModel() (*models.LCGWrapper, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", EnvAPIKey)
	}
	model := os.Getenv(EnvModel)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return models.NewOpenAIModel(model, apiKey, os.Getenv(EnvBaseURL))
}

// Scenario is a scripted conversation and a check on the resulting schedule.
type Scenario struct {
	Name        string
	Description string
	Utterances  []string
	Weather     weather.Lookup
	Check       func(store *schedule.Store, last *dispatch.TurnResult) error
}

// Run plays the scenario against a freshly seeded store, tracing every
// round to w.
func Run(ctx context.Context, w io.Writer, sc Scenario) error {
	model, err := CreateModel()
	if err != nil {
		return err
	}

	PrintHeader(w, strings.ToUpper(sc.Name))
	fmt.Fprintln(w, sc.Description)

	agent := dispatch.NewAgent(model, schedule.NewSeeded()).
		WithModelName(model.Name()).
		WithTimeProvider(flightdesk.NewMockTimeProvider(Now)).
		WithHooks(hooks.NewRegistry().Register(hooks.NewTraceHook(w)))
	if sc.Weather != nil {
		agent.WithWeather(sc.Weather)
	}
	conv := dispatch.NewConversation(agent)

	var last *dispatch.TurnResult
	for _, u := range sc.Utterances {
		PrintSection(w, "User")
		fmt.Fprintln(w, u)
		last = conv.Send(ctx, u)
		PrintSection(w, "Assistant")
		fmt.Fprintln(w, last.Reply)
	}

	if sc.Check == nil {
		return nil
	}
	return sc.Check(agent.Store(), last)
}

// PrintHeader prints a header line.
func PrintHeader(w io.Writer, title string) {
	line := strings.Repeat("=", 80)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
}

// PrintSection prints a section header.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "--- %s ---\n", title)
}

// ContainsIgnoreCase checks if s contains substr, case-insensitive.
func ContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
