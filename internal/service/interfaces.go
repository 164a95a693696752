package service

import (
	"context"

	"github.com/MKhiriev/card-keeper-bot/models"
)

type CardService interface {
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)

	ListCards(ctx context.Context, ownerID int64) ([]models.CardSummary, error)
	FindCards(ctx context.Context, ownerID int64, query string) ([]models.Card, error)
	GetCard(ctx context.Context, ownerID int64, cardID string) (models.Card, error)

	DeleteCard(ctx context.Context, ownerID int64, cardID string) (bool, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
