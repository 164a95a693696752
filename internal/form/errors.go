package form

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/card-keeper-bot/models"
)

var (
	// ErrSessionNotFound is returned when an owner has no active form
	// session to apply the action to.
	ErrSessionNotFound = errors.New("no active form session")

	// ErrInvalidTransition is returned when an action is not allowed in the
	// session's current stage, e.g. submitting a value while no field is
	// selected.
	ErrInvalidTransition = errors.New("action not allowed in current form stage")

	// ErrUnknownField is returned when a field selection names a field the
	// form does not collect.
	ErrUnknownField = errors.New("unknown form field")

	// ErrFormIncomplete is returned by Finish while required fields are
	// still missing. Use [AsIncomplete] to recover the missing field list.
	ErrFormIncomplete = errors.New("form is incomplete")
)

// IncompleteFormError reports a Finish attempt on a form whose required
// fields are not all collected. It unwraps to [ErrFormIncomplete].
type IncompleteFormError struct {
	Missing []models.Field
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("%v: missing fields %v", ErrFormIncomplete, e.Missing)
}

func (e *IncompleteFormError) Unwrap() error {
	return ErrFormIncomplete
}

// AsIncomplete extracts the missing-field detail from err, if present.
func AsIncomplete(err error) (*IncompleteFormError, bool) {
	var incomplete *IncompleteFormError
	ok := errors.As(err, &incomplete)
	return incomplete, ok
}

func newTransitionError(action string, stage models.Stage) error {
	return fmt.Errorf("%w: %s in stage %s", ErrInvalidTransition, action, stage)
}
