package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

type clientQueueService struct {
	localStore *store.ClientStorages
	devices    DeviceService
	validator  validators.Validator
	ids        *utils.UUIDGenerator

	now func() time.Time
}

func NewClientQueueService(localStore *store.ClientStorages, devices DeviceService) QueueService {
	return &clientQueueService{
		localStore: localStore,
		devices:    devices,
		validator:  validators.NewSyncValidator(),
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
	}
}

// Enqueue implements [QueueService]. It validates req, rejects operations on
// projects the user cannot access, fills in the identity fields and the base
// version, and returns once the operation is durably stored.
func (s *clientQueueService) Enqueue(ctx context.Context, req models.EnqueueRequest) (models.SyncOperation, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "clientQueueService.Enqueue").Msg("invalid operation")
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	userID, err := sessionUserID(ctx, s.localStore.Metadata)
	if err != nil {
		return models.SyncOperation{}, err
	}

	if err = s.checkAccess(ctx, req.ProjectID); err != nil {
		log.Err(err).Str("func", "clientQueueService.Enqueue").Int64("project_id", req.ProjectID).Msg("operation rejected")
		return models.SyncOperation{}, err
	}

	device, err := s.devices.Current(ctx)
	if err != nil {
		return models.SyncOperation{}, fmt.Errorf("resolve device: %w", err)
	}

	baseVersion, err := s.baseVersion(ctx, req.EntityType, req.EntityID)
	if err != nil {
		return models.SyncOperation{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	op := models.SyncOperation{
		ID:           s.ids.Generate(),
		Kind:         req.Kind,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		ProjectID:    req.ProjectID,
		Payload:      req.Payload,
		BaseVersion:  baseVersion,
		CreatedAt:    s.now().UTC(),
		DeviceID:     device.ID,
		UserID:       userID,
		RetryCount:   0,
		Priority:     priority,
		Dependencies: req.Dependencies,
		Status:       models.OperationPending,
	}

	stored, err := s.localStore.OperationQueue.Add(ctx, op)
	if err != nil {
		return models.SyncOperation{}, fmt.Errorf("store operation: %w", err)
	}

	// the cache reflects local edits right away
	local := models.EntityVersion{
		EntityType: stored.EntityType,
		EntityID:   stored.EntityID,
		ProjectID:  stored.ProjectID,
		Payload:    stored.Payload,
		Version:    stored.BaseVersion,
		DeviceID:   stored.DeviceID,
		Deleted:    stored.Kind == models.OperationDelete,
	}
	if err = cacheVersion(ctx, s.localStore.LocalEntities, local); err != nil {
		log.Warn().Err(err).Str("func", "clientQueueService.Enqueue").Msg("operation stored but entity cache not updated")
	}

	log.Debug().Str("func", "clientQueueService.Enqueue").
		Str("operation_id", stored.ID).
		Str("priority", string(stored.Priority)).
		Msg("operation enqueued")

	return stored, nil
}

// Dequeue implements [QueueService].
func (s *clientQueueService) Dequeue(ctx context.Context, operationID string) error {
	return s.localStore.OperationQueue.Delete(ctx, operationID)
}

// Pending implements [QueueService].
func (s *clientQueueService) Pending(ctx context.Context) ([]models.SyncOperation, error) {
	return s.localStore.OperationQueue.ListPending(ctx)
}

// Failed implements [QueueService].
func (s *clientQueueService) Failed(ctx context.Context) ([]models.SyncOperation, error) {
	return s.localStore.OperationQueue.ListFailed(ctx)
}

// checkAccess consults the cached project list. An unknown list allows the
// operation; the server checks membership again on push.
func (s *clientQueueService) checkAccess(ctx context.Context, projectID int64) error {
	projects, err := s.localStore.Metadata.GetProjects(ctx)
	if errors.Is(err, store.ErrMetadataNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load project list: %w", err)
	}

	if !slices.Contains(projects, projectID) {
		return fmt.Errorf("%w: project %d", ErrAccessDenied, projectID)
	}
	return nil
}

// baseVersion is the version of the latest snapshot of the entity, zero when
// the device never saw it.
func (s *clientQueueService) baseVersion(ctx context.Context, entityType, entityID string) (int64, error) {
	snap, err := s.localStore.SnapshotRepository.LatestSnapshot(ctx, entityType, entityID)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load latest snapshot: %w", err)
	}
	return snap.Version, nil
}
