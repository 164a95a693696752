package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/card-keeper-bot/internal/config"
	"github.com/MKhiriev/card-keeper-bot/internal/dispatch"
	"github.com/MKhiriev/card-keeper-bot/internal/form"
	handler "github.com/MKhiriev/card-keeper-bot/internal/handler/http"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/server"
	"github.com/MKhiriev/card-keeper-bot/internal/service"
	"github.com/MKhiriev/card-keeper-bot/internal/store"
	"github.com/MKhiriev/card-keeper-bot/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("card-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	forms := form.NewManager(services.CardService, cfg.Sessions.IdleTimeout, log)
	janitor := form.NewJanitor(ctx, forms, cfg.Sessions.SweepInterval, log)
	defer janitor.Stop()

	dispatcher := dispatch.NewDispatcher(services.CardService, forms, log)

	handlers := handler.NewHandler(services, dispatcher, cfg.App, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(janitor).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
