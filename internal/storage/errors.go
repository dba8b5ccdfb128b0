package storage

import "errors"

// The error taxonomy below maps one-to-one onto HTTP statuses at the edge:
// ValidationError and ReferenceError become 400, NotFoundError 404,
// ConflictError 409. Handlers dispatch on the error type, never on message
// text, so messages stay free for human consumption.

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// ReferenceError reports a foreign key pointing at a non-existent entity.
type ReferenceError struct {
	Msg string
}

func (e *ReferenceError) Error() string {
	return e.Msg
}

func NewReferenceError(msg string) error {
	return &ReferenceError{Msg: msg}
}

func IsReferenceError(err error) bool {
	var referenceError *ReferenceError
	return errors.As(err, &referenceError)
}

// ConflictError reports a duplicate value for a unique field.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}

// NotFoundError reports a lookup or delete of an entity that does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}
