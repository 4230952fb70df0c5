package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate          = errors.New("invalid date format")
	ErrInvalidTime          = errors.New("invalid time format")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrDuplicateSlug        = errors.New("an event with this slug already exists")
	ErrEventNotFound        = errors.New("event not found")
	ErrBookingEventNotFound = errors.New("booking references an event that does not exist")
	ErrInvalidPagination    = errors.New("invalid pagination parameters")
)

// ValidationError reports a missing or malformed input field by name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}
