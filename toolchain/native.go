package toolchain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/ogreowl/flightdesk"
	"github.com/ogreowl/flightdesk/hooks"
	"github.com/ogreowl/flightdesk/schema"
)

// Native executes tool calls that arrive through the model provider's
// function-calling channel.
//
// Each call names a tool and carries its arguments as a JSON object string:
//
//	{"name": "delete_flight", "arguments": "{\"flightId\": \"F3\"}"}
//
// Execute checks a call in a fixed order. An unknown name fails first with
// flightdesk.ErrUnknownTool, before the arguments are looked at. Then the
// arguments must be a JSON object (flightdesk.ErrInvalidJSON), must satisfy the
// tool's schema (*schema.ValidationError) and must decode into the tool's input
// type. Only then is the tool called.
type Native struct {
	tools     []any
	toolMap   map[string]any
	schemaMap map[string]*schema.Schema
	hooks     *hooks.Registry
}

// NewNative creates an empty chain.
func NewNative() *Native {
	return &Native{
		tools:     make([]any, 0),
		toolMap:   make(map[string]any),
		schemaMap: make(map[string]*schema.Schema),
	}
}

// WithHooks sets the registry notified around each tool call.
func (c *Native) WithHooks(r *hooks.Registry) *Native {
	c.hooks = r
	return c
}

// RegisterTool adds a tool. The tool must implement flightdesk.Tool[I, O].
// Registering a second tool under an existing name replaces the first.
func (c *Native) RegisterTool(tool any) error {
	meta, err := GetToolMeta(tool)
	if err != nil {
		return err
	}

	if raw := meta.Schema(); raw != nil {
		compiled, err := schema.Compile(raw)
		if err != nil {
			return fmt.Errorf("tool %s: %w", meta.Name(), err)
		}
		c.schemaMap[meta.Name()] = compiled
	} else {
		delete(c.schemaMap, meta.Name())
	}

	if _, exists := c.toolMap[meta.Name()]; exists {
		for i, t := range c.tools {
			if m, _ := GetToolMeta(t); m != nil && m.Name() == meta.Name() {
				c.tools[i] = tool
			}
		}
	} else {
		c.tools = append(c.tools, tool)
	}
	c.toolMap[meta.Name()] = tool
	return nil
}

// MustRegisterTool is like RegisterTool but panics on error.
func (c *Native) MustRegisterTool(tool any) *Native {
	if err := c.RegisterTool(tool); err != nil {
		panic(err)
	}
	return c
}

// Names returns the registered tool names in registration order.
func (c *Native) Names() []string {
	names := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		if meta, err := GetToolMeta(t); err == nil {
			names = append(names, meta.Name())
		}
	}
	return names
}

// Definitions returns the function declarations to advertise to the model,
// in registration order.
func (c *Native) Definitions() []llms.Tool {
	defs := make([]llms.Tool, 0, len(c.tools))
	for _, t := range c.tools {
		meta, err := GetToolMeta(t)
		if err != nil {
			continue
		}
		params := meta.Schema()
		if params == nil {
			params = schema.Object(map[string]*schema.Property{})
		}
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        meta.Name(),
				Description: meta.Description(),
				Parameters:  params,
			},
		})
	}
	return defs
}

// Execute runs a single tool call. See Native for the order of checks.
func (c *Native) Execute(ctx context.Context, call flightdesk.ToolCall) (*flightdesk.ToolCallResult, error) {
	if call.Name == "" {
		return nil, flightdesk.ErrMissingToolName
	}

	tool, ok := c.toolMap[call.Name]
	if !ok {
		err := fmt.Errorf("%w: %s", flightdesk.ErrUnknownTool, call.Name)
		c.hooks.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: call.Name, Error: err})
		return nil, err
	}

	args, err := ParseArguments(call.Arguments)
	if err != nil {
		c.hooks.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: call.Name, Error: err})
		return nil, err
	}

	if compiled, ok := c.schemaMap[call.Name]; ok {
		if err := compiled.Validate(args); err != nil {
			c.hooks.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: call.Name, Error: err})
			return nil, err
		}
	}

	typedInput, err := TransformArgsReflect(tool, args)
	if err != nil {
		c.hooks.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{ToolName: call.Name, Error: err})
		return nil, err
	}

	c.hooks.FireBeforeToolCall(ctx, flightdesk.BeforeToolCallEvent{ToolName: call.Name, Args: typedInput})

	start := time.Now()
	output, err := CallToolWithTypedInputReflect(ctx, tool, typedInput)
	duration := time.Since(start)

	c.hooks.FireAfterToolCall(ctx, flightdesk.AfterToolCallEvent{
		ToolName: call.Name,
		Args:     typedInput,
		Output:   output,
		Duration: duration,
		Error:    err,
	})

	if err != nil {
		return nil, err
	}
	return &flightdesk.ToolCallResult{Name: call.Name, Output: output}, nil
}

// ParseArguments decodes a tool call's argument string into a JSON object.
// An empty or whitespace-only string, or a literal null, is an empty object.
// Top-level keys whose value is null are dropped, so an optional argument
// sent as null reads as absent and a required one fails as missing.
func ParseArguments(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", flightdesk.ErrInvalidJSON, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	for k, v := range args {
		if v == nil {
			delete(args, k)
		}
	}
	return args, nil
}
