package service

import (
	"context"

	"github.com/MKhiriev/card-keeper-bot/internal/config"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
)

// appInfoService reports static build information. The version is fixed at
// construction; transports probe it through the open /api/version endpoint.
type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService requires a non-empty version: serving "unknown" build
// info would hide deployment mistakes.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", cfg.Version).Msg("app info service created")

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.appVersion
}
