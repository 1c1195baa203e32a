package engine

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
// Invalid input is always caller-correctable and never retried; the
// serving layer maps it to a "please check your input" response, as
// opposed to factors.ErrFactorNotFound which means the factor data set
// does not cover a supplied activity type.
const ErrInvalidInput = constError("invalid input")

// InvalidInputError reports which field of an ActivityInput failed
// validation and why. It matches ErrInvalidInput via errors.Is.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
