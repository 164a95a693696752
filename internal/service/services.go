package service

import (
	"github.com/MKhiriev/card-keeper-bot/internal/config"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/store"
	"github.com/MKhiriev/card-keeper-bot/internal/validators"
)

type Services struct {
	CardService    CardService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		CardService:    NewCardService(storages.CardRepository, validators.NewCardValidator(), logger),
		AppInfoService: appInfoService,
	}, nil
}
