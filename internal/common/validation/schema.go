// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema, safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON schema document.
func Compile(schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(schemaJSON string) *Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateBytes validates a raw JSON document. err is set only when the
// document cannot be decoded.
func (s *Schema) ValidateBytes(doc []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateGo validates a decoded value such as map[string]interface{}.
func (s *Schema) ValidateGo(doc interface{}) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewGoLoader(doc))
}

func (s *Schema) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := s.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, toValidationError(desc))
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

func toValidationError(desc gojsonschema.ResultError) ValidationError {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == gojsonschema.STRING_CONTEXT_ROOT || field == "" {
				field = prop
			} else {
				field = field + "." + prop
			}
		}
	}

	return ValidationError{
		Field:   field,
		Message: desc.Description(),
		Code:    errorCode(desc.Type()),
	}
}

func errorCode(kind string) string {
	switch kind {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "enum":
		return "INVALID_ENUM_VALUE"
	case "string_gte", "string_lte":
		return "LENGTH_VIOLATION"
	case "number_gte", "number_lte", "number_gt", "number_lt":
		return "RANGE_VIOLATION"
	case "pattern":
		return "PATTERN_MISMATCH"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	default:
		return strings.ToUpper(kind)
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	return len(vr.GetErrorsForField(field)) > 0
}

// GetErrorsForField returns errors for a field and anything nested under it.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	urlPattern   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
