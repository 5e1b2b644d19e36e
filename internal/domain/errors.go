package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateSlug          = errors.New("an event with this slug already exists")
	ErrReferencedEventMissing = errors.New("referenced event does not exist")
	ErrEventReferenceCheck    = errors.New("error validating event reference")
)

// FieldError is a single field-level validation failure.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field errors found while validating one record.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

// NewValidationError returns a ValidationError for entity with the given field errors.
func NewValidationError(entity string, fields ...FieldError) *ValidationError {
	return &ValidationError{Entity: entity, Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Entity + " validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
