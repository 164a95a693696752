package models

import "time"

// Stage defines the lifecycle stage of a form session.
type Stage int

const (
	// Collecting means the session is showing the field menu and waiting for
	// the user to pick a field, finish, or cancel.
	Collecting Stage = 1

	// AwaitingFieldValue means one field has been selected and the session is
	// waiting for a free-text value for it.
	AwaitingFieldValue Stage = 2

	// Completed is the terminal stage of a session whose buffer has been
	// persisted as a Card.
	Completed Stage = 3

	// Abandoned is the terminal stage of a cancelled or expired session.
	// Nothing is persisted.
	Abandoned Stage = 4
)

// String returns the human-readable stage name used in logs and errors.
func (s Stage) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case AwaitingFieldValue:
		return "awaiting_field_value"
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Field names a single collectable form field.
type Field string

const (
	FieldBankName   Field = "bank_name"
	FieldCardNumber Field = "card_number"
	FieldExpiry     Field = "expiry_date"
	FieldCVV        Field = "cvv"
)

// FormFields is the fixed, ordered set of fields an add-card form collects.
// CVV is conditionally required depending on the card number length.
var FormFields = []Field{FieldBankName, FieldCardNumber, FieldExpiry, FieldCVV}

// FormSession is one in-progress add-card conversation for a single owner.
// It lives only in memory and is never persisted; on completion its buffer is
// handed to the record store and the session is discarded.
type FormSession struct {
	// OwnerID is the user conducting the session.
	OwnerID int64

	// Fields maps field name to the value collected so far.
	Fields map[Field]string

	// ActiveField is the field currently awaiting free-text input.
	// Empty unless Stage is AwaitingFieldValue.
	ActiveField Field

	// Stage is the current lifecycle stage.
	Stage Stage

	// LastActivity is bumped on every applied action and drives idle expiry.
	LastActivity time.Time
}

// NewFormSession creates an empty session in the Collecting stage.
func NewFormSession(ownerID int64) *FormSession {
	return &FormSession{
		OwnerID:      ownerID,
		Fields:       make(map[Field]string, len(FormFields)),
		Stage:        Collecting,
		LastActivity: time.Now(),
	}
}

// Filled reports whether the named field has a collected value.
func (s *FormSession) Filled(f Field) bool {
	return s.Fields[f] != ""
}

// Terminal reports whether the session has reached a terminal stage.
func (s *FormSession) Terminal() bool {
	return s.Stage == Completed || s.Stage == Abandoned
}
