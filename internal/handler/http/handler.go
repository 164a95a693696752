// Package http implements the HTTP ingress of the application. The messaging
// transport posts pre-parsed user actions to it and receives display
// instructions back. Authentication and request logging are handled at this
// layer before actions are forwarded to the dispatcher.
package http

import (
	"github.com/MKhiriev/card-keeper-bot/internal/config"
	"github.com/MKhiriev/card-keeper-bot/internal/dispatch"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/service"
)

type Handler struct {
	services   *service.Services
	dispatcher *dispatch.Dispatcher

	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, dispatcher *dispatch.Dispatcher, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		dispatcher:   dispatcher,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}
