package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// ToolMeta holds metadata about a registered tool extracted via reflection.
type ToolMeta struct {
	name        string
	description string
	schema      map[string]any
	tool        any
	inputType   reflect.Type
}

// Name returns the tool's name.
func (m *ToolMeta) Name() string { return m.name }

// Description returns the tool's description.
func (m *ToolMeta) Description() string { return m.description }

// Schema returns the tool's parameter schema.
func (m *ToolMeta) Schema() map[string]any { return m.schema }

// InputType returns the tool's input type I.
func (m *ToolMeta) InputType() reflect.Type { return m.inputType }

// GetToolMeta extracts metadata from a flightdesk.Tool[I, O] using reflection.
func GetToolMeta(tool any) (*ToolMeta, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}

	name, err := callStringMethod(toolVal, "Name")
	if err != nil {
		return nil, err
	}
	description, err := callStringMethod(toolVal, "Description")
	if err != nil {
		return nil, err
	}

	schemaMethod := toolVal.MethodByName("ParameterSchema")
	if !schemaMethod.IsValid() {
		return nil, errors.New("tool does not have ParameterSchema method")
	}
	var params map[string]any
	if out := schemaMethod.Call(nil)[0]; !out.IsNil() {
		params, _ = out.Interface().(map[string]any)
	}

	inputType, err := callInputType(toolVal)
	if err != nil {
		return nil, err
	}

	return &ToolMeta{
		name:        name,
		description: description,
		schema:      params,
		tool:        tool,
		inputType:   inputType,
	}, nil
}

func callStringMethod(v reflect.Value, method string) (string, error) {
	m := v.MethodByName(method)
	if !m.IsValid() {
		return "", fmt.Errorf("tool does not have %s method", method)
	}
	return m.Call(nil)[0].String(), nil
}

// callInputType reads I from Call(ctx context.Context, input I).
func callInputType(v reflect.Value) (reflect.Type, error) {
	m := v.MethodByName("Call")
	if !m.IsValid() {
		return nil, errors.New("tool does not have Call method")
	}
	t := m.Type()
	if t.NumIn() != 2 || t.NumOut() != 2 {
		return nil, fmt.Errorf(
			"Call method has unexpected signature: expected 2 params and 2 results, got %d and %d",
			t.NumIn(), t.NumOut(),
		)
	}
	return t.In(1), nil
}

// TransformArgsReflect decodes raw arguments into the tool's typed input.
//
// Before decoding, string values headed for time.Time fields are normalized:
//   - an empty string becomes null, leaving the field zero (or nil for *time.Time)
//   - a parseable timestamp is rewritten as RFC3339Nano; zone-less timestamps are UTC
//   - anything else is passed through and fails decoding
//
// Returns the typed input as `any`. The dynamic type is the tool's input type I.
func TransformArgsReflect(tool any, args map[string]any) (any, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}
	inputType, err := callInputType(toolVal)
	if err != nil {
		return nil, err
	}
	return decodeInto(inputType, args)
}

func decodeInto(inputType reflect.Type, args map[string]any) (any, error) {
	structType := inputType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	encoded, err := json.Marshal(convertArgsForType(args, structType))
	if err != nil {
		return nil, fmt.Errorf("marshal args: %w", err)
	}

	target := reflect.New(structType)
	if err := json.Unmarshal(encoded, target.Interface()); err != nil {
		return nil, fmt.Errorf("decode args into %s: %w", structType.Name(), err)
	}

	if inputType.Kind() == reflect.Ptr {
		return target.Interface(), nil
	}
	return target.Elem().Interface(), nil
}

// CallToolWithTypedInputReflect calls a flightdesk.Tool[I, O] with an input
// already decoded by TransformArgsReflect and returns the tool's Output field.
func CallToolWithTypedInputReflect(ctx context.Context, tool any, typedInput any) (any, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}
	callMethod := toolVal.MethodByName("Call")
	if !callMethod.IsValid() {
		return nil, errors.New("tool does not have Call method")
	}

	in := reflect.ValueOf(typedInput)
	if !in.IsValid() {
		in = reflect.Zero(callMethod.Type().In(1))
	}

	results := callMethod.Call([]reflect.Value{reflect.ValueOf(ctx), in})
	resultVal, errVal := results[0], results[1]

	if !errVal.IsNil() {
		return nil, errVal.Interface().(error)
	}
	if resultVal.IsNil() {
		return nil, errors.New("nil result from tool")
	}

	return resultVal.Elem().FieldByName("Output").Interface(), nil
}

// CallToolReflect combines TransformArgsReflect and CallToolWithTypedInputReflect.
func CallToolReflect(ctx context.Context, tool any, args map[string]any) (any, error) {
	typedInput, err := TransformArgsReflect(tool, args)
	if err != nil {
		return nil, err
	}
	return CallToolWithTypedInputReflect(ctx, tool, typedInput)
}

func convertArgsForType(args map[string]any, structType reflect.Type) map[string]any {
	if args == nil || structType.Kind() != reflect.Struct {
		return args
	}

	result := make(map[string]any, len(args))
	for key, value := range args {
		field, found := findFieldByName(structType, key)
		if !found {
			result[key] = value
			continue
		}
		result[key] = convertValueToType(value, field.Type)
	}
	return result
}

// findFieldByName finds a struct field by json tag, falling back to a
// case-insensitive match on the Go field name.
func findFieldByName(structType reflect.Type, name string) (reflect.StructField, bool) {
	for i := range structType.NumField() {
		field := structType.Field(i)

		tagName, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tagName == name {
			return field, true
		}
		if tagName == "" && strings.EqualFold(field.Name, name) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func convertValueToType(value any, targetType reflect.Type) any {
	if value == nil {
		return nil
	}

	elemType := targetType
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	switch {
	case elemType == timeType:
		str, ok := value.(string)
		if !ok {
			return value
		}
		if strings.TrimSpace(str) == "" {
			return nil
		}
		if t, err := ParseTime(str); err == nil {
			return t.Format(time.RFC3339Nano)
		}
		return value

	case elemType.Kind() == reflect.Struct:
		if m, ok := value.(map[string]any); ok {
			return convertArgsForType(m, elemType)
		}
	}

	return value
}

// ParseTime parses the timestamp shapes models and HTML forms commonly produce.
// Layouts without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	s = strings.TrimSpace(s)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %q", s)
}
