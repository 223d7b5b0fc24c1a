package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the error kind for every rejected calculation input.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the input that violated its constraint.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// NewInputError creates an InputError for field.
func NewInputError(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
