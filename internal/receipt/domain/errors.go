package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReceiptNotFound indicates no receipt matches the requested identifier.
var ErrReceiptNotFound = errors.New("receipt not found")

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors accumulates every rejected field of a submission so the
// caller sees the complete set at once.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		parts = append(parts, ve.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure.
func (e *ValidationErrors) Add(field, code, message string) {
	e.Errors = append(e.Errors, ValidationError{Field: field, Code: code, Message: message})
}

// HasErrors reports whether any field was rejected.
func (e *ValidationErrors) HasErrors() bool { return len(e.Errors) > 0 }

// AsValidationErrors unwraps err into a *ValidationErrors when possible.
func AsValidationErrors(err error) (*ValidationErrors, bool) {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
