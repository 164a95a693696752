// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/utils"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// handleAction receives one user action and returns one display
// instruction. The acting owner comes exclusively from the authenticated
// request context; any owner hints in the payload are ignored.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.handleAction").Msg("no user ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var envelope models.ActionEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		log.Err(err).Str("func", "*Handler.handleAction").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	action, err := envelope.Action(ownerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.handleAction").Msg("unknown action kind")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	instruction := h.dispatcher.Dispatch(r.Context(), action)

	response, err := models.NewInstructionEnvelope(instruction)
	if err != nil {
		log.Err(err).Str("func", "*Handler.handleAction").Msg("error encoding instruction")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.handleAction").Msg("error writing response")
	}
}
