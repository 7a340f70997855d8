// pkg/kbfile/schema.go
package kbfile

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// fileSchema is the JSON Schema every knowledge-base file must satisfy before
// its entries reach the matching engine.
const fileSchema = `{
  "type": "object",
  "required": ["version", "entries"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "entries": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["keywords", "category", "response"],
        "properties": {
          "keywords": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string", "minLength": 1}
          },
          "requiredKeywords": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          },
          "category": {
            "type": "string",
            "enum": ["payment", "security", "process", "onboarding", "support", "quality"]
          },
          "response": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// Validate checks raw file contents against the knowledge-base schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(fileSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema validation failed: %v", errs)
	}

	return nil
}
