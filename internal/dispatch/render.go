package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/card-keeper-bot/internal/form"
	"github.com/MKhiriev/card-keeper-bot/internal/service"
	"github.com/MKhiriev/card-keeper-bot/internal/store"
	"github.com/MKhiriev/card-keeper-bot/internal/validators"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// User-facing message texts. The transport renders them verbatim; no
// transport-specific markup here.
const (
	msgWelcome = "Welcome to your card keeper!\n\n" +
		"Available commands:\n" +
		"/add_card - add a new card\n" +
		"/view_cards - view all your cards\n" +
		"/view_card <search> - view a specific card\n" +
		"/delete_card <search> - delete a card\n" +
		"/cancel - cancel the current form\n" +
		"/help - show this help\n\n" +
		"Your data is isolated to your account only."

	msgHelp = "Card keeper commands:\n\n" +
		"/add_card - add a new card with an interactive form\n" +
		"/view_cards - view all your cards\n" +
		"/view_card <bank name or last 4 digits> - view a specific card\n" +
		"/delete_card <bank name or last 4 digits> - delete a card\n" +
		"/cancel - cancel the current form\n\n" +
		"Examples:\n" +
		"/view_card HDFC - view your HDFC card\n" +
		"/view_card 1234 - view the card ending with 1234"

	msgFormTitle = "Add a new card\n\n" +
		"Pick a field to fill, then type its value. " +
		"Press Done when every required field is set."

	msgFormCancelled = "Form cancelled. No data was saved."
	msgClosed        = "Closed."
	msgCardDeleted   = "Card deleted. It has been permanently removed from your account."

	msgNoCards      = "You have no saved cards yet. Use /add_card to add one."
	msgNoMatches    = "No cards matched your search."
	msgCardNotFound = "Card not found."
	msgEmptyQuery   = "Please provide a bank name or the last 4 digits, e.g. /view_card HDFC."

	msgNoActiveForm   = "There is no form in progress. Use /add_card to start one."
	msgNoConversation = "I did not expect a text reply right now. Use /help to see the commands."
	msgDuplicateCard  = "You already store a card with this number."
	msgMenuFirst      = "Pick a field from the menu first."
	msgValueFirst     = "Finish entering the current field value first."

	msgUnknownAction  = "Unsupported action."
	msgUnknownCommand = "Unknown command. Use /help to see what I can do."
	msgUnknownButton  = "This button is no longer valid."
	msgInternal       = "Something went wrong. Please try again."
)

// cardIntent selects the follow-up action attached to rendered cards: a view
// flow ends at the detail, a delete flow continues into confirmation.
type cardIntent int

const (
	viewIntent cardIntent = iota
	deleteIntent
)

// formFieldLabels maps field names to the labels shown on menu buttons and
// in the collected-value summary.
var formFieldLabels = map[models.Field]string{
	models.FieldBankName:   "Bank Name",
	models.FieldCardNumber: "Card Number",
	models.FieldExpiry:     "Expiry Date",
	models.FieldCVV:        "CVV",
}

// fieldPrompts is what the user sees after selecting a field.
var fieldPrompts = map[models.Field]string{
	models.FieldBankName: "Please enter the bank name:",
	models.FieldCardNumber: "Please enter the card number.\n\n" +
		"You can enter:\n" +
		"- the last 4 digits (e.g. 1234)\n" +
		"- the full card number (13-19 digits)",
	models.FieldExpiry: "Please enter the expiry date (MM/YYYY):",
	models.FieldCVV:    "Please enter the CVV (3-4 digits):",
}

// renderFormMenu shows the field menu with the collected values so far.
// Filled fields get a check mark on their button; the menu is derived purely
// from the snapshot, so re-rendering it is always safe.
func renderFormMenu(snap models.FormSession) models.Instruction {
	var summary strings.Builder
	summary.WriteString(msgFormTitle)
	summary.WriteString("\n")

	buttons := make([]models.Button, 0, len(models.FormFields)+2)
	for _, field := range models.FormFields {
		label := formFieldLabels[field]

		value := "not set"
		if snap.Filled(field) {
			label = label + " ✓"
			value = displayValue(field, snap.Fields[field])
		}
		fmt.Fprintf(&summary, "\n%s: %s", formFieldLabels[field], value)

		buttons = append(buttons, models.Button{
			Label:      label,
			CallbackID: callbackFieldPrefix + string(field),
		})
	}

	buttons = append(buttons,
		models.Button{Label: "Done", CallbackID: callbackFormDone},
		models.Button{Label: "Cancel", CallbackID: callbackFormCancel},
	)

	return models.ShowMenu{Title: summary.String(), Buttons: buttons}
}

// renderFieldPrompt asks for a value for the selected field. Cancel is the
// only button: free text is the expected reply.
func renderFieldPrompt(field models.Field) models.Instruction {
	prompt, ok := fieldPrompts[field]
	if !ok {
		prompt = fmt.Sprintf("Please enter a value for %s:", field)
	}

	return models.ShowMenu{
		Title:   prompt,
		Buttons: []models.Button{{Label: "Cancel", CallbackID: callbackFormCancel}},
	}
}

func renderCardSaved(card models.Card) models.Instruction {
	return models.ShowSuccess{
		Message: fmt.Sprintf(
			"Card added successfully!\n\nBank: %s\nCard: %s\nExpires: %s",
			card.BankName, maskedNumber(&card), card.Expiry,
		),
	}
}

func renderCardList(summaries []models.CardSummary, intent cardIntent) models.Instruction {
	if len(summaries) == 0 {
		return models.ShowRecordList{Title: msgNoCards, Summaries: []models.CardSummary{}}
	}

	title := "Your cards:"
	prefix := callbackViewPrefix
	if intent == deleteIntent {
		title = "Pick the card to delete:"
		prefix = callbackDeletePrefix
	}

	buttons := make([]models.Button, 0, len(summaries))
	for _, s := range summaries {
		buttons = append(buttons, models.Button{
			Label:      fmt.Sprintf("%s •••• %s", s.BankName, s.Tail),
			CallbackID: prefix + s.ID,
		})
	}

	return models.ShowRecordList{Title: title, Summaries: summaries, Buttons: buttons}
}

// renderCardDetail shows one card in full. A delete-flow detail asks for
// confirmation instead of offering a delete shortcut.
func renderCardDetail(card models.Card, intent cardIntent) models.Instruction {
	var buttons []models.Button
	if intent == deleteIntent {
		buttons = []models.Button{
			{Label: "Yes, delete this card", CallbackID: callbackConfirmPrefix + card.ID},
			{Label: "Cancel", CallbackID: callbackCloseView},
		}
	} else {
		buttons = []models.Button{
			{Label: "Delete", CallbackID: callbackDeletePrefix + card.ID},
			{Label: "Close", CallbackID: callbackCloseView},
		}
	}

	return models.ShowRecordDetail{Record: sanitized(card), Buttons: buttons}
}

// renderError translates core errors into user-facing ShowError messages.
// Unknown errors get a generic message: internal detail never reaches the
// transport.
func renderError(err error) models.Instruction {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return models.ShowError{
			Message: fmt.Sprintf("Invalid %s: %s. Please try again.",
				strings.ReplaceAll(validationErr.Field, "_", " "), validationErr.Reason),
		}
	}

	if incomplete, ok := form.AsIncomplete(err); ok {
		names := make([]string, 0, len(incomplete.Missing))
		for _, f := range incomplete.Missing {
			names = append(names, formFieldLabels[f])
		}
		return models.ShowError{
			Message: "The form is not complete. Missing: " + strings.Join(names, ", ") + ".",
		}
	}

	switch {
	case errors.Is(err, form.ErrSessionNotFound):
		return models.ShowError{Message: msgNoActiveForm}
	case errors.Is(err, form.ErrInvalidTransition):
		return renderTransitionError(err)
	case errors.Is(err, form.ErrUnknownField):
		return models.ShowError{Message: msgUnknownButton}
	case errors.Is(err, store.ErrDuplicateCard):
		return models.ShowError{Message: msgDuplicateCard}
	case errors.Is(err, store.ErrCardNotFound):
		return models.ShowError{Message: msgCardNotFound}
	case errors.Is(err, service.ErrEmptySearchQuery):
		return models.ShowError{Message: msgEmptyQuery}
	default:
		return models.ShowError{Message: msgInternal}
	}
}

// renderTransitionError distinguishes the two recoverable stage mismatches:
// text or finish while no field dialog is open, and a menu action while a
// value is pending.
func renderTransitionError(err error) models.Instruction {
	if strings.Contains(err.Error(), models.AwaitingFieldValue.String()) {
		return models.ShowError{Message: msgValueFirst}
	}
	return models.ShowError{Message: msgMenuFirst}
}

// sanitized prepares a card for display: the CVV never leaves the core and
// full numbers are reduced to their tail.
func sanitized(card models.Card) models.Card {
	card.CVV = nil
	card.CardNumber = maskedNumber(&card)
	return card
}

func maskedNumber(card *models.Card) string {
	return "•••• " + card.Tail()
}

// displayValue renders a collected field value for the form summary.
// Sensitive fields are masked: full card numbers are reduced to their
// tail and the CVV is never echoed back.
func displayValue(field models.Field, value string) string {
	switch field {
	case models.FieldCardNumber:
		digits := models.CardDigits(value)
		if len(digits) > 4 {
			return "•••• " + digits[len(digits)-4:]
		}
		return digits
	case models.FieldCVV:
		return "•••"
	default:
		return value
	}
}
