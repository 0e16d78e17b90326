// Package toolchain turns a model's function call into a typed tool invocation.
//
// # Quick Start
//
//	chain := toolchain.NewNative().WithHooks(registry)
//	chain.MustRegisterTool(flightdesk.NewToolFunc(
//	    catalog.DeleteFlight,
//	    "Delete a flight from the schedule.",
//	    params,
//	    func(ctx context.Context, in catalog.DeleteFlightInput) (string, error) {
//	        ...
//	    },
//	))
//
//	resp, _ := model.GenerateContent(ctx, msgs, llms.WithTools(chain.Definitions()))
//	call := resp.Choices[0].FirstToolCall()
//	result, err := chain.Execute(ctx, flightdesk.ToolCall{
//	    Name:      call.FunctionCall.Name,
//	    Arguments: call.FunctionCall.Arguments,
//	})
//
// # Argument Decoding
//
// Arguments arrive as a JSON object string. The chain validates them against
// the tool's compiled parameter schema, then decodes them into the tool's input
// type by reflection. String timestamps headed for time.Time or *time.Time
// fields accept several layouts:
//
//   - RFC3339 and RFC3339Nano ("2024-06-13T10:00:00Z")
//   - ISO without zone ("2024-06-13T10:00:00", "2024-06-13T10:00")
//   - space separated ("2024-06-13 10:00:00", "2024-06-13 10:00")
//   - date only ("2024-06-13")
//
// Zone-less layouts are read as UTC. An empty string leaves the field unset.
//
// # Errors
//
// Execute returns errors wrapping flightdesk.ErrUnknownTool,
// flightdesk.ErrInvalidJSON or *schema.ValidationError for rejected calls, and
// the tool's own error otherwise. Every attempt is reported to
// AfterToolCallHook.
package toolchain
