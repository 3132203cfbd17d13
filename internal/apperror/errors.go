// Package apperror define error taxonomy shared by services and controllers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden is returned when caller lacks permission. It never tells which rule failed.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for absent records and for records hidden from the caller.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned when operation requires an identity but caller is anonymous.
	ErrUnauthenticated = errors.New("authentication required")
)

// FieldError is a single policy violation on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation of a rejected request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add append a violation and return the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil return nil when no violation was collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid build a ValidationError with one field violation.
func Invalid(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// AsValidation unwrap err into *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
