// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strconv"
	"strings"

	"github.com/MKhiriev/card-keeper-bot/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping). They match the form field names so the
// form engine can validate a single submitted value by its active field.
const (
	// FieldOwnerID targets the owner identifier of a card record.
	FieldOwnerID = "owner_id"

	// FieldBankName targets the issuing bank name.
	FieldBankName = string(models.FieldBankName)

	// FieldCardNumber targets the card number (4-digit tail or full number).
	FieldCardNumber = string(models.FieldCardNumber)

	// FieldExpiry targets the expiry in MM/YYYY form.
	FieldExpiry = string(models.FieldExpiry)

	// FieldCVV targets the card verification value.
	FieldCVV = string(models.FieldCVV)

	// FieldCVVRule enforces the derived requirement that CVV is present
	// exactly when the card number is a full number.
	FieldCVVRule = "cvv rule"
)

// Card number length boundaries. A cleaned digit string of exactly
// TailLength digits is a last-4 tail; FullNumberMin..FullNumberMax digits is
// a full card number. Anything else is rejected.
const (
	TailLength    = 4
	FullNumberMin = 13
	FullNumberMax = 19
)

// Validator is the interface implemented by model validators.
// The optional fields arguments scope validation to the named fields;
// when omitted, a sensible default set is validated.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

// CardValidator implements [Validator] for the card domain models.
// It holds the card field rules shared by the form session engine
// (per-field, on submit) and the record store (whole-record, on create).
type CardValidator struct {
}

// NewCardValidator constructs a new CardValidator
// and returns it as the Validator interface.
func NewCardValidator() Validator {
	return &CardValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms are
// accepted. Returns ErrUnsupportedType if obj does not match any known model.
func (v *CardValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Card:
		return v.validateCard(ctx, value, fields...)
	case *models.Card:
		return v.validateCard(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateCard validates a single Card model.
//
// Default validated fields (when none specified):
// OwnerID, BankName, CardNumber, Expiry, and the derived CVV rule.
func (v *CardValidator) validateCard(_ context.Context, card models.Card, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldBankName, FieldCardNumber, FieldExpiry, FieldCVVRule}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if card.OwnerID <= 0 {
				return newFieldError(FieldOwnerID, "missing owner")
			}
		case FieldBankName:
			if err := CheckBankName(card.BankName); err != nil {
				return err
			}
		case FieldCardNumber:
			if err := CheckCardNumber(card.CardNumber); err != nil {
				return err
			}
		case FieldExpiry:
			if err := CheckExpiry(card.Expiry); err != nil {
				return err
			}
		case FieldCVV:
			if card.CVV == nil {
				return newFieldError(FieldCVV, "cvv is required")
			}
			if err := CheckCVV(*card.CVV); err != nil {
				return err
			}
		case FieldCVVRule:
			if err := v.checkCVVRule(card); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checkCVVRule enforces that a CVV accompanies a full card number and only a
// full card number. The requirement is derived from the digit count of the
// stored number, never from a separate flag, so the two can not disagree.
func (v *CardValidator) checkCVVRule(card models.Card) error {
	if card.IsFullNumber() {
		if card.CVV == nil || *card.CVV == "" {
			return newFieldError(FieldCVV, "cvv is required when a full card number is stored")
		}
		return CheckCVV(*card.CVV)
	}

	// Tail-only records carry no CVV; a stray value is rejected rather than
	// silently kept so the caller can drop it explicitly.
	if card.CVV != nil && *card.CVV != "" {
		return newFieldError(FieldCVV, "cvv is not stored for last-4-digit records")
	}

	return nil
}

// CheckField validates a single raw form value against the rules of the
// named field. Used by the form session engine on every submitted value.
func CheckField(field models.Field, raw string) error {
	switch field {
	case models.FieldBankName:
		return CheckBankName(raw)
	case models.FieldCardNumber:
		return CheckCardNumber(raw)
	case models.FieldExpiry:
		return CheckExpiry(raw)
	case models.FieldCVV:
		return CheckCVV(raw)
	default:
		return ErrUnknownField
	}
}

// CheckBankName requires a non-empty bank name.
func CheckBankName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return newFieldError(FieldBankName, "bank name must not be empty")
	}
	return nil
}

// CheckCardNumber accepts either the last 4 digits of a card or a full
// 13-19 digit number. Digits may be grouped with spaces or dashes.
func CheckCardNumber(raw string) error {
	if raw == "" {
		return newFieldError(FieldCardNumber, "card number must not be empty")
	}

	for _, r := range raw {
		if (r < '0' || r > '9') && r != ' ' && r != '-' {
			return newFieldError(FieldCardNumber, "card number may contain only digits, spaces and dashes")
		}
	}

	digits := models.CardDigits(raw)
	if len(digits) == TailLength {
		return nil
	}
	if len(digits) >= FullNumberMin && len(digits) <= FullNumberMax {
		return nil
	}

	return newFieldError(FieldCardNumber, "enter the last 4 digits or a full 13-19 digit number")
}

// CheckExpiry requires the MM/YYYY form with a month between 1 and 12.
// The value is not interpreted as a calendar date; a past expiry is accepted.
func CheckExpiry(raw string) error {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return newFieldError(FieldExpiry, "expiry must be in MM/YYYY form")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return newFieldError(FieldExpiry, "expiry month must be between 01 and 12")
	}

	year := parts[1]
	if len(year) != 4 {
		return newFieldError(FieldExpiry, "expiry year must have 4 digits")
	}
	if _, err := strconv.Atoi(year); err != nil {
		return newFieldError(FieldExpiry, "expiry year must have 4 digits")
	}

	return nil
}

// CheckCVV requires a 3 or 4 digit value.
func CheckCVV(raw string) error {
	if len(raw) < 3 || len(raw) > 4 {
		return newFieldError(FieldCVV, "cvv must have 3 or 4 digits")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return newFieldError(FieldCVV, "cvv must contain only digits")
		}
	}
	return nil
}

// Missing reports which required fields are still absent from a form buffer,
// applying the derived CVV rule: bank name, card number and expiry are always
// required; CVV only when the collected card number is a full number.
func Missing(fields map[models.Field]string) []models.Field {
	var missing []models.Field

	for _, f := range []models.Field{models.FieldBankName, models.FieldCardNumber, models.FieldExpiry} {
		if fields[f] == "" {
			missing = append(missing, f)
		}
	}

	number := fields[models.FieldCardNumber]
	if number != "" && len(models.CardDigits(number)) > TailLength && fields[models.FieldCVV] == "" {
		missing = append(missing, models.FieldCVV)
	}

	return missing
}
