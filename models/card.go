package models

import (
	"strings"
	"time"
)

// Card represents a single stored card record.
// It is the primary persistence model of the application.
type Card struct {
	// ID is the store-assigned unique identifier of the record.
	ID string `json:"id"`

	// OwnerID is the user who created this record. Immutable; every store
	// operation is scoped by it and no operation may cross owner boundaries.
	OwnerID int64 `json:"owner_id"`

	// BankName is the issuing bank. Always non-empty.
	BankName string `json:"bank_name"`

	// CardNumber holds either the last 4 digits (when the user opted out of
	// storing the full number) or the full card number.
	CardNumber string `json:"card_number"`

	// Expiry is the expiry in MM/YYYY form. Format-validated only; it is not
	// interpreted as a calendar value.
	Expiry string `json:"expiry_date"`

	// CVV is present only when CardNumber holds a full number.
	CVV *string `json:"cvv,omitempty"`

	// CreatedAt is the creation timestamp. Immutable.
	CreatedAt time.Time `json:"created_at"`
}

// CardSummary is the lightweight listing projection of a Card.
// It carries no CVV and only the tail of the card number.
type CardSummary struct {
	ID       string `json:"id"`
	BankName string `json:"bank_name"`
	Tail     string `json:"tail"`
	Expiry   string `json:"expiry_date"`
}

// TableName returns the name of the database table
// associated with the Card model.
func (c *Card) TableName() string {
	return "cards"
}

// IsFullNumber reports whether CardNumber holds a full card number rather
// than a last-4 tail. The distinction is derived from the digit count, never
// stored as a separate flag: exactly 4 digits means tail-only, anything
// longer is treated as a full number.
func (c *Card) IsFullNumber() bool {
	return len(CardDigits(c.CardNumber)) > 4
}

// Tail returns the last 4 digits of CardNumber.
func (c *Card) Tail() string {
	digits := CardDigits(c.CardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Summary converts the Card to its listing projection.
func (c *Card) Summary() CardSummary {
	return CardSummary{
		ID:       c.ID,
		BankName: c.BankName,
		Tail:     c.Tail(),
		Expiry:   c.Expiry,
	}
}

// CardDigits strips the spaces and dashes users habitually type into card
// numbers and returns the bare digit string.
func CardDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
