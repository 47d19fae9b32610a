package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolDefinition is one named, schema-described callable discoverable by an
// external agent. Function always returns a rendered envelope string;
// validation and backend failures are rendered, never raised past this
// boundary.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    func(ctx context.Context, input json.RawMessage) (string, error)
}

// GenerateSchema derives the JSON input schema for a tool from its params
// struct. Field descriptions come from jsonschema_description tags.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

// SchemaJSON renders a tool's input schema for discovery surfaces that speak
// plain JSON (the SSE and stdio delivery modes).
func SchemaJSON(def ToolDefinition) json.RawMessage {
	b, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": def.InputSchema.Properties,
	})
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return b
}
