package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

// changeFeedLimit bounds one pull. A full page moves the checkpoint only up
// to its last change, so the device picks up the rest on its next round.
const changeFeedLimit = 500

// Messages of per-operation results. They travel to devices, so they never
// carry driver details.
const (
	resultMsgStorageUnavailable = "storage temporarily unavailable"
	resultMsgRejected           = "operation rejected by storage"
)

// syncService is the concrete implementation of SyncService. It applies
// pushed operations one by one against the entity repository; every
// operation gets its own result and its own transaction.
type syncService struct {
	deviceRepository  store.DeviceRepository
	entityRepository  store.EntityRepository
	projectRepository store.ProjectRepository

	// classificator decides whether a failed apply is reported as a
	// retryable error or as an invalid operation.
	classificator store.ErrorClassificator

	now    func() time.Time
	logger *logger.Logger
}

// NewSyncService constructs a SyncService backed by the server storages.
func NewSyncService(storages *store.Storages, classificator store.ErrorClassificator, logger *logger.Logger) SyncService {
	return &syncService{
		deviceRepository:  storages.DeviceRepository,
		entityRepository:  storages.EntityRepository,
		projectRepository: storages.ProjectRepository,
		classificator:     classificator,
		now:               time.Now,
		logger:            logger,
	}
}

// ProcessBatch implements SyncService.
//
// The device descriptor is recorded first. Then, in request order, every
// operation is stamped with the caller's user id and device id, checked
// against project membership and applied. A failing operation never aborts
// the batch.
func (s *syncService) ProcessBatch(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	device := req.Device
	device.UserID = userID
	device.LastSeen = s.now().UTC()
	if err := s.deviceRepository.UpsertDevice(ctx, device); err != nil {
		log.Err(err).Str("func", "syncService.ProcessBatch").Str("device_id", device.ID).Msg("failed to record device")
		return models.PushResponse{}, fmt.Errorf("failed to record device: %w", err)
	}

	access := make(map[int64]bool)
	results := make([]models.OperationResult, 0, len(req.Operations))

	for _, op := range req.Operations {
		if err := ctx.Err(); err != nil {
			return models.PushResponse{}, err
		}

		op.UserID = userID
		op.DeviceID = device.ID

		results = append(results, s.apply(ctx, op, access))
	}

	log.Info().
		Str("func", "syncService.ProcessBatch").
		Int64("user_id", userID).
		Str("device_id", device.ID).
		Int("operations", len(results)).
		Msg("batch processed")

	return models.PushResponse{Results: results}, nil
}

func (s *syncService) apply(ctx context.Context, op models.SyncOperation, access map[int64]bool) models.OperationResult {
	log := logger.FromContext(ctx)

	allowed, checked := access[op.ProjectID]
	if !checked {
		var err error
		allowed, err = s.projectRepository.HasAccess(ctx, op.UserID, op.ProjectID)
		if err != nil {
			return s.failed(op, err)
		}
		access[op.ProjectID] = allowed
	}
	if !allowed {
		log.Warn().
			Str("func", "syncService.apply").
			Str("operation_id", op.ID).
			Int64("user_id", op.UserID).
			Int64("project_id", op.ProjectID).
			Msg("operation targets a foreign project")
		return models.OperationResult{OperationID: op.ID, Status: models.ResultInvalid, Error: ErrAccessDenied.Error()}
	}

	result, err := s.entityRepository.ApplyOperation(ctx, op)
	if err != nil {
		return s.failed(op, err)
	}
	return result
}

// failed turns a storage error into an operation result. Retryable errors
// let the device try again later, anything else fails the operation for good.
func (s *syncService) failed(op models.SyncOperation, err error) models.OperationResult {
	result := models.OperationResult{OperationID: op.ID}

	if s.classificator != nil && s.classificator.Classify(err) == store.Retryable {
		result.Status = models.ResultError
		result.Error = resultMsgStorageUnavailable
	} else {
		result.Status = models.ResultInvalid
		result.Error = resultMsgRejected
	}

	s.logger.Err(err).
		Str("func", "syncService.failed").
		Str("operation_id", op.ID).
		Str("status", string(result.Status)).
		Msg("operation failed")
	return result
}

// ChangesSince implements SyncService.
func (s *syncService) ChangesSince(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error) {
	changes, err := s.entityRepository.ChangesSince(ctx, userID, req.DeviceID, req.After, changeFeedLimit)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return models.PullResponse{}, err
		}
		return models.PullResponse{}, fmt.Errorf("failed to read change feed: %w", err)
	}

	cursor := req.After
	if len(changes) > 0 {
		cursor = changes[len(changes)-1].ChangeID
	}
	if len(changes) == changeFeedLimit {
		logger.FromContext(ctx).Debug().
			Str("func", "syncService.ChangesSince").
			Int64("user_id", userID).
			Int64("cursor", cursor).
			Msg("change feed page is full")
	}

	return models.PullResponse{Changes: changes, Cursor: cursor, ServerTime: s.now().UTC()}, nil
}
