// internal/server/schema.go
package server

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	xmlerrors "xmlgen-service/internal/common/errors"
)

// generateRequest is the JSON form of a generation job.
type generateRequest struct {
	Template        string `json:"template"`
	NumTransactions int    `json:"numTransactions"`
	NumBatches      int    `json:"numBatches"`
	NumCopies       int    `json:"numCopies"`
}

const generateRequestSchema = `{
	"type": "object",
	"required": ["template", "numTransactions", "numBatches", "numCopies"],
	"additionalProperties": false,
	"properties": {
		"template": {"type": "string", "minLength": 1},
		"numTransactions": {"type": "integer", "minimum": 1},
		"numBatches": {"type": "integer", "minimum": 1},
		"numCopies": {"type": "integer", "minimum": 1}
	}
}`

// validateGenerateRequest checks the raw body against the request schema.
func validateGenerateRequest(body []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(generateRequestSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return xmlerrors.NewInvalidParameterError("body", fmt.Sprintf("not a JSON object: %s", err))
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return xmlerrors.NewInvalidParameterError("body", fmt.Sprintf("schema validation failed: %v", errs))
	}
	return nil
}
