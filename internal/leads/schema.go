package leads

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"it-configurator/internal/common/errors"
)

// leadPayloadSchema is the contract for incoming save_lead documents. The
// service re-validates semantics on top; this gate rejects malformed shapes
// before any of that runs.
const leadPayloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "email", "services"],
  "properties": {
    "name": {"type": "string", "minLength": 1, "maxLength": 200},
    "email": {"type": "string", "minLength": 3, "maxLength": 254},
    "company": {"type": "string", "maxLength": 200},
    "phone": {"type": "string", "maxLength": 50},
    "message": {"type": "string", "maxLength": 5000},
    "privacy_consent": {"type": "boolean"},
    "estimated_price": {"type": ["string", "number"]},
    "services": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "selected": {"type": "boolean"},
          "recommended": {"type": "boolean"},
          "priority": {"type": "integer", "minimum": 0},
          "config": {"type": "object"}
        }
      }
    },
    "profile": {"type": "object"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(leadPayloadSchema)

// ValidatePayloadJSON checks a raw submission document against the payload
// schema.
func ValidatePayloadJSON(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewValidationFailedError(fmt.Sprintf("unreadable payload: %v", err), nil)
	}
	if result.Valid() {
		return nil
	}

	var fields []string
	var details []string
	for _, desc := range result.Errors() {
		fields = append(fields, desc.Field())
		details = append(details, desc.String())
	}
	return errors.NewValidationFailedError(
		fmt.Sprintf("invalid payload: %s", strings.Join(details, "; ")),
		fields,
	)
}
