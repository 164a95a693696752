// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/store"
	"github.com/MKhiriev/card-keeper-bot/internal/validators"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// cardService is the concrete implementation of CardService. It validates
// whole card records before persistence, normalises the card number to a
// bare digit string, and delegates everything else to the repository.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
type cardService struct {
	cardRepository store.CardRepository
	validator      validators.Validator

	logger *logger.Logger
}

// NewCardService constructs a CardService wired to the given repository.
func NewCardService(cardRepository store.CardRepository, validator validators.Validator, logger *logger.Logger) CardService {
	return &cardService{
		cardRepository: cardRepository,
		validator:      validator,
		logger:         logger,
	}
}

// CreateCard validates and persists a new card for card.OwnerID.
//
// The card number is stored as bare digits: separators accepted on input are
// stripped so duplicate detection and tail search see one canonical form.
//
// Returns the stored card or:
//   - ErrInvalidDataProvided if the owner id is missing.
//   - A validators error if any field or the CVV rule fails.
//   - store.ErrDuplicateCard if the owner already stores this number.
func (s *cardService) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	if card.OwnerID == 0 {
		log.Error().Str("func", "cardService.CreateCard").Msg("card has no owner")
		return models.Card{}, ErrInvalidDataProvided
	}

	if err := s.validator.Validate(ctx, card); err != nil {
		log.Warn().Err(err).
			Str("func", "cardService.CreateCard").
			Int64("owner_id", card.OwnerID).
			Msg("card failed validation")
		return models.Card{}, err
	}

	card.CardNumber = models.CardDigits(card.CardNumber)
	card.BankName = strings.TrimSpace(card.BankName)

	created, err := s.cardRepository.CreateCard(ctx, card)
	if err != nil {
		log.Err(err).
			Str("func", "cardService.CreateCard").
			Int64("owner_id", card.OwnerID).
			Msg("card creation ended with error")
		return models.Card{}, fmt.Errorf("card creation ended with error: %w", err)
	}

	return created, nil
}

// ListCards returns summaries of all cards owned by ownerID in creation order.
func (s *cardService) ListCards(ctx context.Context, ownerID int64) ([]models.CardSummary, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrInvalidDataProvided
	}

	summaries, err := s.cardRepository.ListCards(ctx, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "cardService.ListCards").
			Int64("owner_id", ownerID).
			Msg("card listing ended with error")
		return nil, fmt.Errorf("card listing ended with error: %w", err)
	}

	return summaries, nil
}

// FindCards returns the owner's cards matching the query as a bank-name
// substring or a card-number suffix. The query is trimmed first; an empty
// query is rejected rather than matching everything.
func (s *cardService) FindCards(ctx context.Context, ownerID int64, query string) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrInvalidDataProvided
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}

	cards, err := s.cardRepository.FindCards(ctx, ownerID, query)
	if err != nil {
		log.Err(err).
			Str("func", "cardService.FindCards").
			Int64("owner_id", ownerID).
			Msg("card search ended with error")
		return nil, fmt.Errorf("card search ended with error: %w", err)
	}

	return cards, nil
}

// GetCard returns one card by id, owner-scoped.
// Passes through store.ErrCardNotFound for missing or foreign records.
func (s *cardService) GetCard(ctx context.Context, ownerID int64, cardID string) (models.Card, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.Card{}, ErrInvalidDataProvided
	}
	if strings.TrimSpace(cardID) == "" {
		return models.Card{}, ErrEmptyCardID
	}

	card, err := s.cardRepository.GetCard(ctx, ownerID, cardID)
	if err != nil {
		log.Err(err).
			Str("func", "cardService.GetCard").
			Int64("owner_id", ownerID).
			Str("card_id", cardID).
			Msg("card lookup ended with error")
		return models.Card{}, fmt.Errorf("card lookup ended with error: %w", err)
	}

	return card, nil
}

// DeleteCard removes one card by id, owner-scoped. Deleting a missing or
// foreign card returns (false, nil): the operation is idempotent and never
// reveals other owners' data.
func (s *cardService) DeleteCard(ctx context.Context, ownerID int64, cardID string) (bool, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return false, ErrInvalidDataProvided
	}
	if strings.TrimSpace(cardID) == "" {
		return false, ErrEmptyCardID
	}

	deleted, err := s.cardRepository.DeleteCard(ctx, ownerID, cardID)
	if err != nil {
		log.Err(err).
			Str("func", "cardService.DeleteCard").
			Int64("owner_id", ownerID).
			Str("card_id", cardID).
			Msg("card deletion ended with error")
		return false, fmt.Errorf("card deletion ended with error: %w", err)
	}

	return deleted, nil
}
