// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dispatch routes inbound user actions to the form engine or the
// card service and renders the outcome as a display instruction for the
// messaging transport. The adapter itself holds no state and performs no
// validation; every action maps to exactly one engine or service call and
// every call maps to exactly one instruction.
package dispatch

import (
	"context"
	"strings"

	"github.com/MKhiriev/card-keeper-bot/internal/form"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/service"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// Callback id prefixes understood by the ButtonPress router. The suffix
// carries the form field name or the card record id.
const (
	callbackFieldPrefix   = "form_field_"
	callbackViewPrefix    = "view_card_"
	callbackDeletePrefix  = "delete_card_"
	callbackConfirmPrefix = "confirm_delete_"

	callbackFormDone   = "form_done"
	callbackFormCancel = "form_cancel"
	callbackCloseView  = "close_view"
)

// Dispatcher maps actions to core calls. Safe for concurrent use: all state
// lives in the form manager and the store.
type Dispatcher struct {
	cards service.CardService
	forms *form.Manager

	logger *logger.Logger
}

// NewDispatcher constructs a Dispatcher over the given service and form
// manager.
func NewDispatcher(cards service.CardService, forms *form.Manager, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		cards:  cards,
		forms:  forms,
		logger: logger,
	}
}

// Dispatch handles one inbound action and always returns exactly one
// instruction. Failures of any kind come back as ShowError; they never
// propagate as errors because there is no caller that could do anything
// else with them.
func (d *Dispatcher) Dispatch(ctx context.Context, action models.Action) models.Instruction {
	log := logger.FromContext(ctx)

	switch a := action.(type) {
	case models.Command:
		return d.dispatchCommand(ctx, a)
	case models.ButtonPress:
		return d.dispatchButtonPress(ctx, a)
	case models.FreeText:
		return d.dispatchFreeText(ctx, a)
	default:
		log.Error().
			Str("func", "Dispatcher.Dispatch").
			Msg("unknown action kind")
		return models.ShowError{Message: msgUnknownAction}
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd models.Command) models.Instruction {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "Dispatcher.dispatchCommand").
		Int64("owner_id", cmd.OwnerID).
		Str("command", cmd.Name).
		Msg("routing command")

	switch strings.TrimPrefix(cmd.Name, "/") {
	case "start":
		return models.ShowMenu{Title: msgWelcome}

	case "help":
		return models.ShowMenu{Title: msgHelp}

	case "add_card":
		snap := d.forms.Start(ctx, cmd.OwnerID)
		return renderFormMenu(snap)

	case "view_cards":
		return d.listCards(ctx, cmd.OwnerID)

	case "view_card":
		return d.findCards(ctx, cmd.OwnerID, cmd.Args, viewIntent)

	case "delete_card":
		return d.findCards(ctx, cmd.OwnerID, cmd.Args, deleteIntent)

	case "cancel":
		if err := d.forms.Cancel(ctx, cmd.OwnerID); err != nil {
			return renderError(err)
		}
		return models.ShowSuccess{Message: msgFormCancelled}

	default:
		return models.ShowError{Message: msgUnknownCommand}
	}
}

func (d *Dispatcher) dispatchButtonPress(ctx context.Context, press models.ButtonPress) models.Instruction {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "Dispatcher.dispatchButtonPress").
		Int64("owner_id", press.OwnerID).
		Str("callback_id", press.CallbackID).
		Msg("routing button press")

	callback := press.CallbackID

	switch {
	case strings.HasPrefix(callback, callbackFieldPrefix):
		return d.selectField(ctx, press.OwnerID, models.Field(strings.TrimPrefix(callback, callbackFieldPrefix)))

	case callback == callbackFormDone:
		return d.finishForm(ctx, press.OwnerID)

	case callback == callbackFormCancel:
		if err := d.forms.Cancel(ctx, press.OwnerID); err != nil {
			return renderError(err)
		}
		return models.ShowSuccess{Message: msgFormCancelled}

	case strings.HasPrefix(callback, callbackViewPrefix):
		return d.showCard(ctx, press.OwnerID, strings.TrimPrefix(callback, callbackViewPrefix), viewIntent)

	case strings.HasPrefix(callback, callbackDeletePrefix):
		return d.showCard(ctx, press.OwnerID, strings.TrimPrefix(callback, callbackDeletePrefix), deleteIntent)

	case strings.HasPrefix(callback, callbackConfirmPrefix):
		return d.deleteCard(ctx, press.OwnerID, strings.TrimPrefix(callback, callbackConfirmPrefix))

	case callback == callbackCloseView:
		return models.ShowSuccess{Message: msgClosed}

	default:
		return models.ShowError{Message: msgUnknownButton}
	}
}

// dispatchFreeText feeds plain text into the owner's form session. Text is
// the expected reply while a field is awaiting a value; outside of that it
// either re-renders the form menu (session present) or is rejected (no
// session).
func (d *Dispatcher) dispatchFreeText(ctx context.Context, text models.FreeText) models.Instruction {
	snap, err := d.forms.Snapshot(text.OwnerID)
	if err != nil {
		return models.ShowError{Message: msgNoConversation}
	}

	if snap.Stage != models.AwaitingFieldValue {
		// stray text while the menu is up: remind the user where they are
		return renderFormMenu(snap)
	}

	snap, err = d.forms.SubmitValue(ctx, text.OwnerID, text.Content)
	if err != nil {
		return renderError(err)
	}

	return renderFormMenu(snap)
}

func (d *Dispatcher) selectField(ctx context.Context, ownerID int64, field models.Field) models.Instruction {
	_, err := d.forms.SelectField(ctx, ownerID, field)
	if err != nil {
		return renderError(err)
	}

	return renderFieldPrompt(field)
}

func (d *Dispatcher) finishForm(ctx context.Context, ownerID int64) models.Instruction {
	created, err := d.forms.Finish(ctx, ownerID)
	if err != nil {
		return renderError(err)
	}

	return renderCardSaved(created)
}

func (d *Dispatcher) listCards(ctx context.Context, ownerID int64) models.Instruction {
	summaries, err := d.cards.ListCards(ctx, ownerID)
	if err != nil {
		return renderError(err)
	}

	return renderCardList(summaries, viewIntent)
}

// findCards resolves a search query into a detail view (single match) or a
// selectable list (multiple matches) carrying the given follow-up intent.
func (d *Dispatcher) findCards(ctx context.Context, ownerID int64, query string, intent cardIntent) models.Instruction {
	matches, err := d.cards.FindCards(ctx, ownerID, query)
	if err != nil {
		return renderError(err)
	}

	switch len(matches) {
	case 0:
		return models.ShowError{Message: msgNoMatches}
	case 1:
		return renderCardDetail(matches[0], intent)
	default:
		summaries := make([]models.CardSummary, 0, len(matches))
		for i := range matches {
			summaries = append(summaries, matches[i].Summary())
		}
		return renderCardList(summaries, intent)
	}
}

func (d *Dispatcher) showCard(ctx context.Context, ownerID int64, cardID string, intent cardIntent) models.Instruction {
	card, err := d.cards.GetCard(ctx, ownerID, cardID)
	if err != nil {
		return renderError(err)
	}

	return renderCardDetail(card, intent)
}

func (d *Dispatcher) deleteCard(ctx context.Context, ownerID int64, cardID string) models.Instruction {
	log := logger.FromContext(ctx)

	deleted, err := d.cards.DeleteCard(ctx, ownerID, cardID)
	if err != nil {
		return renderError(err)
	}
	if !deleted {
		return models.ShowError{Message: msgCardNotFound}
	}

	log.Info().
		Str("func", "Dispatcher.deleteCard").
		Int64("owner_id", ownerID).
		Str("card_id", cardID).
		Msg("card deleted via dispatch")

	return models.ShowSuccess{Message: msgCardDeleted}
}
