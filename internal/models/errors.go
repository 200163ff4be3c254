package models

import (
	"errors"
	"fmt"
)

// ErrEmptyUpdateID signals an update attempted on a product that was
// never persisted. This is a programming error in the caller, not a
// client error, so it is deliberately kept out of the validation type.
var ErrEmptyUpdateID = errors.New("Update called with empty ID field")

// DataValidationError is returned when a product payload or a filter
// value fails a field, type or enumeration check.
type DataValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for DataValidationError.
func (e *DataValidationError) Error() string {
	return e.Message
}

// Is allows errors.Is checks against the type.
func (e *DataValidationError) Is(target error) bool {
	_, ok := target.(*DataValidationError)
	return ok
}

// NewDataValidationError creates a DataValidationError for a field.
func NewDataValidationError(field, message string) error {
	return &DataValidationError{Field: field, Message: message}
}

// NotFoundError is returned when an operation references a product ID
// that is not in the store.
type NotFoundError struct {
	ID uint
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product with id '%d' was not found.", e.ID)
}

// Is allows errors.Is checks against the type.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NewNotFoundError creates a NotFoundError for an ID.
func NewNotFoundError(id uint) error {
	return &NotFoundError{ID: id}
}

// IsDataValidationError checks if an error is a DataValidationError.
func IsDataValidationError(err error) bool {
	var dve *DataValidationError
	return errors.As(err, &dve)
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
