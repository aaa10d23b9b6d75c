package http

import (
	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

type Handler struct {
	services *service.Services

	// collab and hub serve the realtime collaboration endpoint.
	collab         collab.Service
	hub            *collab.Hub
	outboundBuffer int

	// hashKey verifies the integrity hash of pushed batches. Empty disables
	// the check.
	hashKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, collabService collab.Service, hub *collab.Hub, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		collab:         collabService,
		hub:            hub,
		outboundBuffer: cfg.Collaboration.OutboundBuffer,
		hashKey:        cfg.App.HashKey,
		logger:         logger,
	}
}
