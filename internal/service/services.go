package service

import (
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
)

// Services groups the server side services used by the transport handlers
// and the collaboration engine.
type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	ProjectService ProjectService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	syncSvc := NewSyncValidationService().Wrap(NewSyncService(storages, storages.DB(), logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		SyncService:    syncSvc,
		ProjectService: NewProjectService(storages.ProjectRepository, logger),
		AppInfoService: appInfo,
	}, nil
}
