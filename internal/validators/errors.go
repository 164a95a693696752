package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel all field validation failures unwrap to.
// Callers that only need to know "was this a user input problem" match it
// with [errors.Is]; callers that render messages inspect [ValidationError].
var ErrValidation = errors.New("validation failed")

// ErrUnsupportedType is returned by [Validator.Validate] when the passed
// object is not one of the supported model types.
var ErrUnsupportedType = errors.New("unsupported type for validation")

// ErrUnknownField is returned when a field name passed for scoped validation
// is not recognized.
var ErrUnknownField = errors.New("unknown field")

// ValidationError describes a single rejected field value. It unwraps to
// [ErrValidation] so both sentinel matching and message rendering work.
type ValidationError struct {
	// Field is the rejected field's name.
	Field string

	// Reason is a short, user-presentable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newFieldError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
