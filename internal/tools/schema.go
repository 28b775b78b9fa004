package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mozilla-ai/repology-mcp/internal/errors"
)

// argumentValidator checks tool call arguments against the input schema advertised by the tool.
type argumentValidator struct {
	schema *gojsonschema.Schema
}

// newArgumentValidator compiles the input schema of tool.
func newArgumentValidator(tool mcp.Tool) (*argumentValidator, error) {
	raw, err := inputSchema(tool)
	if err != nil {
		return nil, err
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile input schema for tool '%s': %w", tool.Name, err)
	}

	return &argumentValidator{schema: schema}, nil
}

// validate returns an error wrapping errors.ErrInvalidArgument when args do not satisfy the schema.
func (v *argumentValidator) validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidArgument, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}

	return fmt.Errorf("%w: %s", errors.ErrInvalidArgument, strings.Join(problems, "; "))
}

// inputSchema extracts the JSON input schema from the tool's wire representation.
func inputSchema(tool mcp.Tool) ([]byte, error) {
	b, err := json.Marshal(tool)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool '%s': %w", tool.Name, err)
	}

	var wire struct {
		InputSchema map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return nil, fmt.Errorf("failed to read input schema for tool '%s': %w", tool.Name, err)
	}
	if wire.InputSchema == nil {
		return nil, fmt.Errorf("tool '%s' has no input schema", tool.Name)
	}

	// An empty required list is not valid JSON Schema draft 4.
	if req, ok := wire.InputSchema["required"].([]any); ok && len(req) == 0 {
		delete(wire.InputSchema, "required")
	}

	return json.Marshal(wire.InputSchema)
}

// integer restricts a number property to whole numbers.
func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}

// nonEmpty requires a string property to contain at least one character.
func nonEmpty() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["minLength"] = 1
	}
}
