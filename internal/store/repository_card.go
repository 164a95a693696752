// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/utils"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// cardRepository is the SQL-backed implementation of [CardRepository].
// It executes all card CRUD operations against the "cards" table using the
// embedded [*DB] connection; owner scoping is applied in every statement so
// no call can cross user boundaries regardless of its arguments.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (owner_id, card_id, etc.).
type cardRepository struct {
	*DB
	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	return &cardRepository{
		DB:            db,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// CreateCard persists a new card record, assigning the record id and the
// creation timestamp before the insert, and returns the stored card.
//
// A unique-constraint violation on (owner_id, card_number) is translated to
// [ErrDuplicateCard]; any other driver failure is wrapped in
// [ErrExecutingQuery].
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	card.ID = r.uuidGenerator.Generate()
	card.CreatedAt = time.Now().UTC()

	query, args, err := buildInsertCardQuery(card)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.CreateCard").
			Int64("owner_id", card.OwnerID).
			Msg("failed to build insert query")
		return models.Card{}, err
	}

	result, execErr := r.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		if r.errorClassificator.IsUniqueViolation(execErr) {
			log.Warn().
				Str("func", "cardRepository.CreateCard").
				Int64("owner_id", card.OwnerID).
				Msg("card already exists for this owner")
			return models.Card{}, ErrDuplicateCard
		}

		log.Err(execErr).
			Str("func", "cardRepository.CreateCard").
			Int64("owner_id", card.OwnerID).
			Msg("failed to execute insert query")
		return models.Card{}, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		log.Error().
			Str("func", "cardRepository.CreateCard").
			Int64("owner_id", card.OwnerID).
			Msg("insert affected no rows")
		return models.Card{}, ErrCardNotSaved
	}

	log.Info().
		Str("func", "cardRepository.CreateCard").
		Int64("owner_id", card.OwnerID).
		Str("card_id", card.ID).
		Msg("card saved")

	return card, nil
}

// ListCards returns summaries of every card owned by ownerID in creation
// order. Returns an empty slice when the owner stores nothing.
func (r *cardRepository) ListCards(ctx context.Context, ownerID int64) ([]models.CardSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCardsQuery(ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.ListCards").
			Int64("owner_id", ownerID).
			Msg("failed to build list query")
		return nil, err
	}

	cards, err := r.queryCards(ctx, query, args, "cardRepository.ListCards", ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CardSummary, 0, len(cards))
	for i := range cards {
		summaries = append(summaries, cards[i].Summary())
	}

	return summaries, nil
}

// FindCards returns the owner's cards matching the search term: bank-name
// substring (case-insensitive) or card-number suffix. An empty result is
// returned as an empty slice, never as an error.
func (r *cardRepository) FindCards(ctx context.Context, ownerID int64, term string) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindCardsQuery(ownerID, term)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.FindCards").
			Int64("owner_id", ownerID).
			Msg("failed to build find query")
		return nil, err
	}

	return r.queryCards(ctx, query, args, "cardRepository.FindCards", ownerID)
}

// GetCard returns a single card by id, owner-scoped. A missing or foreign
// record yields [ErrCardNotFound].
func (r *cardRepository) GetCard(ctx context.Context, ownerID int64, cardID string) (models.Card, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCardQuery(ownerID, cardID)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.GetCard").
			Int64("owner_id", ownerID).
			Msg("failed to build get query")
		return models.Card{}, err
	}

	var card models.Card
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&card.ID,
		&card.OwnerID,
		&card.BankName,
		&card.CardNumber,
		&card.Expiry,
		&card.CVV,
		&card.CreatedAt,
	)

	if errors.Is(scanErr, sql.ErrNoRows) {
		log.Warn().
			Str("func", "cardRepository.GetCard").
			Int64("owner_id", ownerID).
			Str("card_id", cardID).
			Msg("card not found")
		return models.Card{}, ErrCardNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "cardRepository.GetCard").
			Int64("owner_id", ownerID).
			Msg("failed to scan card row")
		return models.Card{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return card, nil
}

// DeleteCard removes one card by id, owner-scoped. The bool result is false
// for both a missing and a foreign record so that delete outcomes can never
// reveal whether another user's data exists.
func (r *cardRepository) DeleteCard(ctx context.Context, ownerID int64, cardID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCardQuery(ownerID, cardID)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.DeleteCard").
			Int64("owner_id", ownerID).
			Msg("failed to build delete query")
		return false, err
	}

	result, execErr := r.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "cardRepository.DeleteCard").
			Int64("owner_id", ownerID).
			Msg("failed to execute delete query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	affected, affErr := result.RowsAffected()
	if affErr != nil {
		log.Err(affErr).
			Str("func", "cardRepository.DeleteCard").
			Int64("owner_id", ownerID).
			Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, affErr)
	}

	if affected == 0 {
		log.Debug().
			Str("func", "cardRepository.DeleteCard").
			Int64("owner_id", ownerID).
			Str("card_id", cardID).
			Msg("nothing deleted: card missing or foreign")
		return false, nil
	}

	log.Info().
		Str("func", "cardRepository.DeleteCard").
		Int64("owner_id", ownerID).
		Str("card_id", cardID).
		Msg("card deleted")

	return true, nil
}

// queryCards executes a multi-row card SELECT and scans the result set.
func (r *cardRepository) queryCards(ctx context.Context, query string, args []any, caller string, ownerID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", caller).
			Int64("owner_id", ownerID).
			Msg("failed to execute card query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	cards := make([]models.Card, 0, 10)

	for rows.Next() {
		var card models.Card

		scanErr := rows.Scan(
			&card.ID,
			&card.OwnerID,
			&card.BankName,
			&card.CardNumber,
			&card.Expiry,
			&card.CVV,
			&card.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Int64("owner_id", ownerID).
				Msg("failed to scan card row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		cards = append(cards, card)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return cards, nil
}
