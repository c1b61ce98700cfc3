package main

import (
	"fmt"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/handler"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/server"
	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("memodeck-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	purgeWorker := workers.NewPurgeWorker(storages.EntityRepository, cfg.Workers, log)
	if err = purgeWorker.Start(); err != nil {
		log.Fatal().Err(err).Msg("error starting purge worker")
	}
	defer purgeWorker.Stop()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

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
