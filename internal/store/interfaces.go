package store

import (
	"context"

	"github.com/MKhiriev/card-keeper-bot/models"
)

// CardRepository is the persistence contract of the record store. Every
// method is scoped by the owner identifier; implementations must never
// return, mutate, or delete a card whose owner does not match.
type CardRepository interface {
	// CreateCard persists a new card and returns it with the store-assigned
	// ID and creation timestamp populated. Returns [ErrDuplicateCard] when
	// the owner already stores a card with the same number.
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)

	// ListCards returns summaries of all cards owned by ownerID in creation
	// order. An owner with no cards gets an empty slice, not an error.
	ListCards(ctx context.Context, ownerID int64) ([]models.CardSummary, error)

	// FindCards returns the owner's cards whose bank name contains query
	// (case-insensitively) or whose card number ends with it. An empty
	// result is not an error.
	FindCards(ctx context.Context, ownerID int64, query string) ([]models.Card, error)

	// GetCard returns one card by id, owner-scoped.
	// Returns [ErrCardNotFound] when absent or foreign.
	GetCard(ctx context.Context, ownerID int64, cardID string) (models.Card, error)

	// DeleteCard removes one card by id. The returned bool is false both
	// when the card does not exist and when it belongs to another owner;
	// the two cases are deliberately indistinguishable.
	DeleteCard(ctx context.Context, ownerID int64, cardID string) (bool, error)
}
