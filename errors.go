package flightdesk

import "errors"

// Errors returned while turning a model decision into a tool execution.
var (
	ErrInvalidJSON     = errors.New("invalid JSON in tool arguments")
	ErrMissingToolName = errors.New("tool call missing name")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrNoChoices       = errors.New("model returned no choices")
)
