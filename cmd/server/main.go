package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/handler"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/server"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/workers"
	"github.com/MKhiriev/go-story-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const finalFlushTimeout = 30 * time.Second

func main() {
	build := models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	fmt.Print(build)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("story-sync-server", "info").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger("story-sync-server", cfg.Log.Level)
	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	ctx := log.WithContext(context.Background())

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	hub := collab.NewHub(log)
	sessions := collab.NewService(storages.DocumentRepository, storages.ProjectRepository, hub, cfg.Collaboration, log)

	housekeeping, err := workers.NewCollaborationWorker(sessions, cfg.Collaboration, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating collaboration worker")
	}

	handlers, err := handler.NewHandlers(services, sessions, hub, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(housekeeping), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()

	flushCtx, cancel := context.WithTimeout(ctx, finalFlushTimeout)
	defer cancel()
	if err = sessions.Flush(flushCtx); err != nil {
		log.Err(err).Msg("final flush of collaboration sessions failed")
	}
}
