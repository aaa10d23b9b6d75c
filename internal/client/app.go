package client

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/models"
)

type App struct {
	services *service.ClientServices
	closer   io.Closer
	logger   *logger.Logger
}

// NewApp builds the device runtime. closer releases the local stores; it may
// be nil.
func NewApp(services *service.ClientServices, closer io.Closer, logger *logger.Logger) *App {
	return &App{services: services, closer: closer, logger: logger}
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return a.logger.WithContext(ctx)
}

// restore loads the stored session token into the adapter. Commands that
// talk to the server fail early without one.
func (a *App) restore(ctx context.Context) error {
	ok, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return service.ErrNotLoggedIn
	}
	return nil
}

func (a *App) Register(ctx context.Context, user models.User) error {
	return a.services.AuthService.Register(a.withLogger(ctx), user)
}

func (a *App) Login(ctx context.Context, user models.User) (int64, error) {
	return a.services.AuthService.Login(a.withLogger(ctx), user)
}

func (a *App) Projects(ctx context.Context) ([]models.Project, error) {
	ctx = a.withLogger(ctx)
	if err := a.restore(ctx); err != nil {
		return nil, err
	}
	return a.services.AuthService.RefreshProjects(ctx)
}

// Enqueue works offline: the operation is persisted and pushed by the next
// round.
func (a *App) Enqueue(ctx context.Context, req models.EnqueueRequest) (string, error) {
	return a.services.Engine.EnqueueOperation(a.withLogger(ctx), req)
}

func (a *App) Sync(ctx context.Context) (models.SyncResult, error) {
	ctx = a.withLogger(ctx)
	if err := a.restore(ctx); err != nil {
		return models.SyncResult{}, err
	}
	// a fresh process has not probed the server yet
	return a.services.Engine.TriggerSync(ctx, true)
}

func (a *App) Status(ctx context.Context) (models.SyncStatus, error) {
	return a.services.Engine.GetSyncStatus(a.withLogger(ctx))
}

func (a *App) Conflicts(ctx context.Context, all bool) ([]models.ConflictRecord, error) {
	return a.services.SyncService.Conflicts(a.withLogger(ctx), !all)
}

func (a *App) Resolve(ctx context.Context, conflictID string, choice models.ConflictSide) (string, error) {
	ctx = a.withLogger(ctx)
	operationID, err := a.services.Engine.ResolveConflict(ctx, conflictID, choice)
	if err != nil {
		return "", err
	}
	a.services.Engine.Wait()
	return operationID, nil
}

// Run starts the connectivity monitor and the periodic sync job and blocks
// until ctx is cancelled. Background rounds are awaited before returning.
func (a *App) Run(ctx context.Context, onEvent func(models.SyncEvent)) error {
	ctx = a.withLogger(ctx)
	if err := a.restore(ctx); err != nil {
		return err
	}

	events, unsubscribe := a.services.Engine.Subscribe()
	defer unsubscribe()

	a.services.Connectivity.Start(ctx)
	a.services.SyncJob.Start(ctx)
	a.logger.Info().Str("func", "*App.Run").Msg("device sync started")

	defer func() {
		a.services.SyncJob.Stop()
		a.services.Connectivity.Stop()
		a.services.Engine.Wait()
		a.logger.Info().Str("func", "*App.Run").Msg("device sync stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if onEvent != nil {
				onEvent(event)
			}
		}
	}
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
