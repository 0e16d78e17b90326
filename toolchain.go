package flightdesk

// ToolCall represents a tool invocation requested by the model.
type ToolCall struct {
	// Name is the requested tool name. It may not exist in the catalog.
	Name string

	// Arguments is the raw JSON argument object as produced by the model.
	Arguments string
}

// ToolCallResult is the outcome of executing one tool call.
type ToolCallResult struct {
	// Name of the tool that was called.
	Name string

	// Output is the tool's raw typed output (type-erased).
	Output any
}
