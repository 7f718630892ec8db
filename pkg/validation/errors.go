package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
)

// ErrorCode constants for machine-readable error identification
const (
	ErrCodeRequired    = "required"
	ErrCodeType        = "type"
	ErrCodePattern     = "pattern"
	ErrCodeEnum        = "enum"
	ErrCodeSchema      = "schema"
	ErrCodeInvalidJSON = "invalid_json"
)

// ErrorLocation constants
const (
	LocationBody     = "body"
	LocationPath     = "path"
	LocationQuery    = "query"
	LocationHeader   = "header"
	LocationResponse = "response"
)

// FieldError represents a detailed validation error for a single field.
type FieldError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Location indicates where the field is: body, path, query, header, response
	Location string `json:"location"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Received is the actual value that was received
	Received any `json:"received,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Result contains the outcome of validation.
type Result struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false)
	Errors []*FieldError `json:"errors,omitempty"`
}

// NewResult returns a passing result.
func NewResult() *Result { return &Result{Valid: true} }

// AddError adds a validation error to the result
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Merge combines another result into this one
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// RequestError is returned for a request that fails validation.
type RequestError struct {
	Result *Result
}

// NewRequestError wraps a failed result.
func NewRequestError(r *Result) *RequestError { return &RequestError{Result: r} }

func (e *RequestError) Error() string {
	msgs := make([]string, len(e.Result.Errors))
	for i, fe := range e.Result.Errors {
		msgs[i] = fe.Error()
	}
	return "request validation failed: " + strings.Join(msgs, "; ")
}

// StatusCode returns the HTTP status for the error.
func (e *RequestError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *RequestError) Code() string { return arm.CloudErrorCodeInvalidRequestContent }

// CloudError renders the failure as an ARM error with one detail per field.
func (e *RequestError) CloudError() *arm.CloudError {
	ce := arm.NewCloudError(e.StatusCode(), e.Code(), "", "%s", e.Error())
	for _, fe := range e.Result.Errors {
		ce.Details = append(ce.Details, arm.CloudErrorBody{
			Code:    fe.Code,
			Message: fe.Message,
			Target:  strings.TrimSuffix(fe.Location+"."+fe.Field, "."),
		})
	}
	return ce
}

// NewRequiredError creates an error for a missing required field
func NewRequiredError(field, location string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeRequired,
		Message:  fmt.Sprintf("parameter '%s' is required", field),
	}
}

// NewTypeError creates an error for a type mismatch
func NewTypeError(field, location, expected string, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeType,
		Message:  fmt.Sprintf("expected type '%s'", expected),
		Received: received,
	}
}

// NewPatternError creates an error for regex pattern mismatch
func NewPatternError(field, location, pattern string, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodePattern,
		Message:  fmt.Sprintf("must match pattern '%s'", pattern),
		Received: received,
	}
}

// NewEnumError creates an error for value not in enum
func NewEnumError(field, location string, allowed []any, received any) *FieldError {
	allowedStrs := make([]string, len(allowed))
	for i, v := range allowed {
		allowedStrs[i] = fmt.Sprintf("%v", v)
	}
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeEnum,
		Message:  fmt.Sprintf("must be one of: %s", strings.Join(allowedStrs, ", ")),
		Received: received,
	}
}

// NewSchemaError creates an error for JSON Schema validation failure
func NewSchemaError(field, location, message string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeSchema,
		Message:  message,
	}
}

// NewInvalidJSONError creates an error for malformed JSON
func NewInvalidJSONError(message string) *FieldError {
	return &FieldError{
		Location: LocationBody,
		Code:     ErrCodeInvalidJSON,
		Message:  fmt.Sprintf("invalid JSON: %s", message),
	}
}
