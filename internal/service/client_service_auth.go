package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

type clientAuthService struct {
	localStore *store.ClientStorages
	adapter    adapter.ServerAdapter
}

func NewClientAuthService(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter) ClientAuthService {
	return &clientAuthService{localStore: localStore, adapter: serverAdapter}
}

// Register implements [ClientAuthService]. A successful registration also
// logs the device in.
func (a *clientAuthService) Register(ctx context.Context, user models.User) error {
	token, err := a.adapter.Register(ctx, user)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	if err = a.localStore.Metadata.SaveToken(ctx, token.SignedString); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	// a fresh account has no projects yet
	if err = a.localStore.Metadata.SaveProjects(ctx, nil); err != nil {
		return fmt.Errorf("store project list: %w", err)
	}
	return nil
}

// Login implements [ClientAuthService]. A failed project refresh does not fail
// the login: the cached list stays unknown and enqueue access checks pass
// until the next refresh.
func (a *clientAuthService) Login(ctx context.Context, user models.User) (int64, error) {
	log := logger.FromContext(ctx)

	token, err := a.adapter.Login(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	if err = a.localStore.Metadata.SaveToken(ctx, token.SignedString); err != nil {
		return 0, fmt.Errorf("store session token: %w", err)
	}

	if _, err = a.RefreshProjects(ctx); err != nil {
		log.Warn().Err(err).Str("func", "clientAuthService.Login").Msg("could not refresh project list")
	}

	return token.UserID, nil
}

// RestoreSession implements [ClientAuthService].
func (a *clientAuthService) RestoreSession(ctx context.Context) (bool, error) {
	token, err := a.localStore.Metadata.GetToken(ctx)
	if errors.Is(err, store.ErrMetadataNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session token: %w", err)
	}

	a.adapter.SetToken(token)
	return true, nil
}

// RefreshProjects implements [ClientAuthService].
func (a *clientAuthService) RefreshProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := a.adapter.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", mapAdapterError(err))
	}

	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ProjectID)
	}
	if err = a.localStore.Metadata.SaveProjects(ctx, ids); err != nil {
		return nil, fmt.Errorf("store project list: %w", err)
	}
	return projects, nil
}

// UserID implements [ClientAuthService]. The id is read from the subject of
// the stored token without verifying its signature; the server verifies it
// on every request.
func (a *clientAuthService) UserID(ctx context.Context) (int64, error) {
	return sessionUserID(ctx, a.localStore.Metadata)
}

func sessionUserID(ctx context.Context, metadata store.MetadataStore) (int64, error) {
	token, err := metadata.GetToken(ctx)
	if errors.Is(err, store.ErrMetadataNotFound) {
		return 0, ErrNotLoggedIn
	}
	if err != nil {
		return 0, fmt.Errorf("load session token: %w", err)
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	return userID, nil
}
