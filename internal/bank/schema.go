package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema constrains the raw shape of a bank document. Shape problems
// (missing fields, wrong JSON types) fail schema validation with a
// JSON-pointer location; rules the schema cannot express (kind tags,
// option flag counts, kind/answer pairing, duplicate ids) are collected
// as defects by the loader instead.
var fileSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "object",
	"required": []string{"meta", "questions"},
	"properties": map[string]any{
		"meta": map[string]any{
			"type":     "object",
			"required": []string{"title", "total_questions"},
			"properties": map[string]any{
				"title":           map[string]any{"type": "string", "minLength": 1},
				"creator":         map[string]any{"type": "string"},
				"description":     map[string]any{"type": "string"},
				"total_questions": map[string]any{"type": "integer", "minimum": 0},
				"format_version":  map[string]any{"type": "string"},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "type", "question"},
				"properties": map[string]any{
					"id":               map[string]any{"type": "string", "minLength": 1},
					"type":             map[string]any{"type": "string", "minLength": 1},
					"type_description": map[string]any{"type": "string"},
					"question":         map[string]any{"type": "string", "minLength": 1},
					"answer":           map[string]any{"type": []string{"string", "null"}},
					"explanation":      map[string]any{"type": []string{"string", "null"}},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []string{"text", "is_correct"},
							"properties": map[string]any{
								"id":         map[string]any{"type": "string"},
								"text":       map[string]any{"type": "string"},
								"is_correct": map[string]any{"type": "boolean"},
							},
						},
					},
				},
			},
		},
	},
}

// compiledSchema compiles fileSchema once per process.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects a parsed JSON value, not Go maps with typed
	// members. Round-trip through encoding/json to flatten it.
	raw, err := json.Marshal(fileSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal bank schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://bank.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})
