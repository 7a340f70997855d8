// internal/workers/chat/respond/validation.go
package chatrespond

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const inputSchema = `{
	"type": "object",
	"required": ["sessionId", "message"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"userId": {"type": "string"},
		"message": {"type": "string", "minLength": 1}
	}
}`

func validateInput(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(inputSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid input: %s", strings.Join(problems, "; "))
}
