// Package schema builds and validates the JSON Schemas that describe tool
// parameters.
//
// # Quick Start
//
//	params := schema.Object(map[string]*schema.Property{
//	    "flightId":      schema.String("The ID of the flight to edit"),
//	    "departureTime": schema.DateTime("New departure time in ISO format"),
//	}, "flightId")
//
//	s := schema.MustCompile(params)
//	err := s.Validate(map[string]any{"flightId": "F1"})
//
// The same map is handed to the model as the function's parameter declaration,
// so builders only emit keywords that model providers accept.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resourceName = "params.json"

// Schema pairs the declaration map with its compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the declaration map.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks decoded JSON arguments against the schema.
// A nil schema accepts everything.
func (s *Schema) Validate(data map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if data == nil {
		data = map[string]any{}
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a validation failure from the compiled schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("arguments do not match schema: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile turns a declaration map into a Schema.
// A nil map compiles to a nil Schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceName, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := c.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Object creates an object schema. Names passed after the properties are
// marked required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	obj := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

// Property is a single parameter in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	format      string
	minLength   *int
	pattern     string
}

func (p *Property) build() map[string]any {
	m := map[string]any{"type": p.typ}

	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.format != "" {
		m["format"] = p.format
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// DateTime creates a string property annotated as a date-time.
// The format is an annotation for the model; it is not asserted during
// validation, so timestamps without a zone are accepted.
func DateTime(description string) *Property {
	return &Property{typ: "string", description: description, format: "date-time"}
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Format sets the format annotation.
func (p *Property) Format(format string) *Property {
	p.format = format
	return p
}

// MinLength sets the minimum string length.
func (p *Property) MinLength(n int) *Property {
	p.minLength = &n
	return p
}

// Pattern sets a regular expression the string must match.
//
//	schema.String("Flight ID").Pattern(`^F[0-9]+$`)
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}
