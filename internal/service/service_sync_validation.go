package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

// operationFields are checked on every pushed operation. Device and user
// ids are stamped by the server, so they are not part of the check.
var operationFields = []string{
	validators.FieldID,
	validators.FieldKind,
	validators.FieldEntityType,
	validators.FieldEntityID,
	validators.FieldProjectID,
	validators.FieldPayload,
	validators.FieldBaseVersion,
	validators.FieldDependencies,
}

// SyncServiceWrapper decorates a SyncService with additional behaviour.
// It lives outside interfaces.go so the generated mocks never import this
// package.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// SyncValidationService rejects malformed batches before they reach the
// wrapped SyncService. A malformed envelope fails the whole request; a
// malformed operation gets an invalid result while the rest of the batch
// is still processed.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService() SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewSyncValidator(),
	}
}

func (v *SyncValidationService) ProcessBatch(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "SyncValidationService.ProcessBatch").Msg("invalid batch")
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	rejected := make(map[int]models.OperationResult)
	valid := make([]models.SyncOperation, 0, len(req.Operations))
	seen := make(map[string]struct{}, len(req.Operations))

	for i, op := range req.Operations {
		err := v.validator.Validate(ctx, op, operationFields...)
		if err == nil {
			if _, dup := seen[op.ID]; dup {
				err = fmt.Errorf("%w: duplicate id in batch", validators.ErrInvalidOperationID)
			}
		}
		if err != nil {
			log.Warn().Err(err).Str("func", "SyncValidationService.ProcessBatch").Str("operation_id", op.ID).Msg("invalid operation")
			rejected[i] = models.OperationResult{OperationID: op.ID, Status: models.ResultInvalid, Error: err.Error()}
			continue
		}
		seen[op.ID] = struct{}{}
		valid = append(valid, op)
	}

	if len(valid) == 0 {
		return models.PushResponse{Results: merge(len(req.Operations), rejected, nil)}, nil
	}

	inner := req
	inner.Operations = valid
	resp, err := v.inner.ProcessBatch(ctx, userID, inner)
	if err != nil {
		return models.PushResponse{}, err
	}

	return models.PushResponse{Results: merge(len(req.Operations), rejected, resp.Results)}, nil
}

// merge restores request order: rejected results keep their index, the
// results of the valid operations fill the remaining slots in order.
func merge(total int, rejected map[int]models.OperationResult, applied []models.OperationResult) []models.OperationResult {
	out := make([]models.OperationResult, 0, total)
	next := 0
	for i := range total {
		if r, ok := rejected[i]; ok {
			out = append(out, r)
			continue
		}
		if next < len(applied) {
			out = append(out, applied[next])
			next++
		}
	}
	return out
}

func (v *SyncValidationService) ChangesSince(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error) {
	if userID <= 0 {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if req.DeviceID == "" {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidDeviceID)
	}
	if req.After < 0 {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidCursor)
	}

	return v.inner.ChangesSince(ctx, userID, req)
}

func (v *SyncValidationService) Wrap(wrapped SyncService) SyncService {
	v.inner = wrapped
	return v
}
