// Package flightdesk provides an in-memory flight schedule that a conversational
// agent can query and mutate through a fixed catalog of tools.
//
// The root package holds the types shared by every layer: the [Model] interface
// the dispatch loop talks to, the generic [Tool] / [ToolFunc] used to declare
// callable operations, hook interfaces for observing a round, and the sentinel
// errors the dispatch boundary converts into user-facing strings.
//
// # Quick Start
//
//	store := schedule.NewSeeded()
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4o"))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4o")
//
//	agent := dispatch.NewAgent(model, store).
//	    WithWeather(weather.NewOpenWeather(weatherKey).WithAirports(store.Airports())).
//	    WithOnDataChanged(func() { refresh(store.Flights()) })
//
//	conv := dispatch.NewConversation(agent)
//	reply := conv.Send(ctx, "Move F2 to aircraft A3")
//
// # Packages
//
//   - schedule: flights, aircraft, airports and the duration table
//   - conflict: double-booking and same-airport detection
//   - catalog: the five tool declarations advertised to the model
//   - toolchain: argument validation, decoding and dispatch by tool name
//   - dispatch: the per-turn protocol and the conversation history
//   - weather: forecast lookup with nearest-sample selection
//   - models: LangChainGo adapter with OpenAI and GitHub Models providers
//   - hooks: hook registry plus logging, metrics and trace hooks
//   - config: file and environment configuration
//   - server, cmd/flightdesk: HTTP API and CLI
//
// # Tool & ToolChain
//
// Tools are the actions the agent can take. Each tool has typed input/output and
// focuses purely on schedule logic:
//
//	tool := flightdesk.NewToolFunc(
//	    catalog.DeleteFlight,
//	    "Delete a flight from the schedule. Provide the flightId.",
//	    schema.Object(map[string]*schema.Property{
//	        "flightId": schema.String("ID of the flight to delete"),
//	    }, "flightId"),
//	    func(ctx context.Context, in catalog.DeleteFlightInput) (string, error) {
//	        ...
//	    },
//	)
//
// The toolchain validates the model's JSON arguments against the tool schema,
// decodes them into the typed input and calls the tool. See the toolchain
// package for details.
package flightdesk
