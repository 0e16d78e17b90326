package flightdesk

import (
	"context"
)

// Tool is a capability advertised to the model, such as adding a flight or
// checking warnings. Call never sees raw JSON: the toolchain validates the
// model's arguments against ParameterSchema and decodes them into I first.
type Tool[I, O any] interface {
	Name() string
	Description() string

	// ParameterSchema is the JSON Schema object describing I, or nil when the
	// tool takes no arguments.
	ParameterSchema() map[string]any

	Call(ctx context.Context, input I) (*ToolResult[O], error)
}

// ToolResult carries a tool's typed output back through the toolchain, which
// reads the Output field by reflection.
type ToolResult[O any] struct {
	Output O
}

// ToolFunc adapts a plain function to Tool.
type ToolFunc[I, O any] struct {
	name, description string
	schema            map[string]any
	fn                func(context.Context, I) (O, error)
}

// NewToolFunc declares a tool backed by fn.
func NewToolFunc[I, O any](
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, input I) (O, error),
) *ToolFunc[I, O] {
	return &ToolFunc[I, O]{name: name, description: description, schema: schema, fn: fn}
}

func (t *ToolFunc[I, O]) Name() string                    { return t.name }
func (t *ToolFunc[I, O]) Description() string             { return t.description }
func (t *ToolFunc[I, O]) ParameterSchema() map[string]any { return t.schema }

// Call runs fn. An error from fn is returned as is, with no result.
func (t *ToolFunc[I, O]) Call(ctx context.Context, input I) (*ToolResult[O], error) {
	out, err := t.fn(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ToolResult[O]{Output: out}, nil
}

var _ Tool[struct{}, string] = (*ToolFunc[struct{}, string])(nil)
