package openai

import "sort"

// TextOptions configures output formatting in the Responses API.
// "text": { "format": { "type": "json_schema", "name": ..., "schema": {...}, "strict": true } }
type TextOptions struct {
	Format    TextFormat    `json:"format"`
	Verbosity TextVerbosity `json:"verbosity,omitempty"`
}

// TextFormat selects the output format. For json_schema, Name is required at
// this level and Schema is the raw schema object.
type TextFormat struct {
	Type   TextFormatType `json:"type"`
	Name   string         `json:"name,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
	Strict *bool          `json:"strict,omitempty"`
}

type TextFormatType string

const (
	TextFormatTypeText       TextFormatType = "text"
	TextFormatTypeJSONObject TextFormatType = "json_object"
	TextFormatTypeJSONSchema TextFormatType = "json_schema"
)

func TextAsPlain(verbosity TextVerbosity) TextOptions {
	return TextOptions{
		Format:    TextFormat{Type: TextFormatTypeText},
		Verbosity: verbosity,
	}
}

func TextAsJSONSchema(name string, schema map[string]any, strict bool) TextOptions {
	return TextOptions{
		Format: TextFormat{
			Type:   TextFormatTypeJSONSchema,
			Name:   name,
			Schema: schema,
			Strict: &strict,
		},
	}
}

// StrictObj builds a strict JSON Schema object: the given properties,
// additionalProperties false, and every key required (sorted for
// determinism).
func StrictObj(props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
		"required":             keys,
	}
}
