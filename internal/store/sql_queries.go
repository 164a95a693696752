// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/card-keeper-bot/models"
)

// cardColumns is the canonical column order shared by every SELECT and the
// row scanner in repository_card.go.
var cardColumns = []string{"id", "owner_id", "bank_name", "card_number", "expiry_date", "cvv", "created_at"}

// psql builds queries with $N placeholders. Both supported backends accept
// them: PostgreSQL natively and mattn/go-sqlite3 through its ordinal support.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildInsertCardQuery builds the INSERT for a new card record.
func buildInsertCardQuery(card models.Card) (string, []any, error) {
	query, args, err := psql.
		Insert("cards").
		Columns(cardColumns...).
		Values(card.ID, card.OwnerID, card.BankName, card.CardNumber, card.Expiry, card.CVV, card.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListCardsQuery builds the owner-scoped listing SELECT in creation
// order. The id tiebreak keeps the order stable for records created within
// the same timestamp granularity.
func buildListCardsQuery(ownerID int64) (string, []any, error) {
	query, args, err := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindCardsQuery builds the owner-scoped search SELECT. The term is
// matched case-insensitively as a bank-name substring, or as a suffix of the
// stored card number (which also covers exact-number matches). Card numbers
// are stored as bare digit strings, so the digit form of the term is used
// for the number branch.
func buildFindCardsQuery(ownerID int64, term string) (string, []any, error) {
	match := sq.Or{
		sq.Like{"LOWER(bank_name)": "%" + strings.ToLower(term) + "%"},
	}
	if digits := models.CardDigits(term); digits != "" {
		match = append(match, sq.Like{"card_number": "%" + digits})
	}

	query, args, err := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.And{sq.Eq{"owner_id": ownerID}, match}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildGetCardQuery builds the single-card SELECT, owner-scoped.
func buildGetCardQuery(ownerID int64, cardID string) (string, []any, error) {
	query, args, err := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"owner_id": ownerID, "id": cardID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteCardQuery builds the owner-scoped DELETE. The owner predicate
// is what makes foreign and missing records indistinguishable: both delete
// zero rows.
func buildDeleteCardQuery(ownerID int64, cardID string) (string, []any, error) {
	query, args, err := psql.
		Delete("cards").
		Where(sq.Eq{"owner_id": ownerID, "id": cardID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
