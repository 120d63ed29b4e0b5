package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const responseSchemaURL = "schema://assessment-response.json"

// responseSchema describes the success body of POST /assessments/.
// Score range and tier labels are checked by the risk package so that
// they surface as their own error types.
var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"total_epds_score":       map[string]any{"type": "integer"},
		"depression_level":       map[string]any{"type": "string", "minLength": 1},
		"recommendation_title":   map[string]any{"type": "string"},
		"recommendation_message": map[string]any{"type": "string"},
		"emergency_advice":       map[string]any{"type": []any{"string", "null"}},
	},
	"required": []any{
		"total_epds_score",
		"depression_level",
		"recommendation_title",
		"recommendation_message",
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledResponseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		raw, err := json.Marshal(responseSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(responseSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(responseSchemaURL)
	})
	return compiled, compileErr
}

// validateResponse checks raw against the response schema and returns a
// *ContractError on any violation.
func validateResponse(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ContractError{Reason: "malformed JSON", Body: raw, Err: err}
	}

	schema, err := compiledResponseSchema()
	if err != nil {
		return fmt.Errorf("compile response schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return &ContractError{Reason: "schema validation failed", Body: raw, Err: err}
	}
	return nil
}
