package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

type clientSyncService struct {
	localStore *store.ClientStorages
	adapter    adapter.ServerAdapter
	devices    DeviceService
	queue      QueueService
	resolver   ConflictResolver
	events     EventPublisher
	retry      RetryPolicy
	ids        *utils.UUIDGenerator
	batchSize  int

	now func() time.Time
}

func NewClientSyncService(
	localStore *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	devices DeviceService,
	queue QueueService,
	events EventPublisher,
	cfg config.ClientWorkers,
) ClientSyncService {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &clientSyncService{
		localStore: localStore,
		adapter:    serverAdapter,
		devices:    devices,
		queue:      queue,
		resolver:   NewConflictResolver(),
		events:     events,
		retry:      NewRetryPolicy(cfg.MaxRetries, cfg.RetryBaseDelay),
		ids:        utils.NewUUIDGenerator(),
		batchSize:  batchSize,
		now:        time.Now,
	}
}

// Push implements [ClientSyncService].
func (s *clientSyncService) Push(ctx context.Context) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	var result models.SyncResult

	pending, err := s.localStore.OperationQueue.ListPending(ctx)
	if err != nil {
		return result, fmt.Errorf("list pending operations: %w", err)
	}
	if len(pending) == 0 {
		return result, nil
	}

	failedOps, err := s.localStore.OperationQueue.ListFailed(ctx)
	if err != nil {
		return result, fmt.Errorf("list failed operations: %w", err)
	}
	failed := make(map[string]struct{}, len(failedOps))
	for _, op := range failedOps {
		failed[op.ID] = struct{}{}
	}

	sched := ScheduleOperations(pending, failed, s.now())
	if sched.Fallback {
		log.Warn().Str("func", "clientSyncService.Push").
			Int("pending", len(pending)).
			Msg("unsatisfiable dependencies, remaining operations pushed in arrival order")
	}
	if len(sched.Held) > 0 {
		log.Debug().Str("func", "clientSyncService.Push").Int("held", len(sched.Held)).Msg("operations waiting for backoff")
	}
	if len(sched.Ready) == 0 {
		return result, nil
	}

	device, err := s.devices.Current(ctx)
	if err != nil {
		return result, fmt.Errorf("resolve device: %w", err)
	}

	for _, batch := range partition(sched.Ready, s.batchSize) {
		resp, err := s.adapter.PushBatch(ctx, models.PushRequest{Device: device, Operations: batch})
		if err != nil {
			log.Err(err).Str("func", "clientSyncService.Push").Int("batch_size", len(batch)).Msg("batch push failed, round stopped")
			return result, fmt.Errorf("push batch: %w", mapAdapterError(err))
		}
		result.Pushed += len(batch)

		byID := make(map[string]models.OperationResult, len(resp.Results))
		for _, res := range resp.Results {
			byID[res.OperationID] = res
		}

		for _, op := range batch {
			res, ok := byID[op.ID]
			if !ok {
				res = models.OperationResult{OperationID: op.ID, Status: models.ResultError, Error: "no result for operation"}
			}
			if err = s.handleResult(ctx, op, res, &result); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (s *clientSyncService) handleResult(ctx context.Context, op models.SyncOperation, res models.OperationResult, result *models.SyncResult) error {
	switch res.Status {
	case models.ResultSuccess:
		result.Acknowledged++
		return s.acknowledge(ctx, op, res.Version)

	case models.ResultConflict:
		if res.Remote == nil {
			return s.retryLater(ctx, op, "conflict without remote version", result)
		}
		result.Conflicts++
		return s.resolveConflict(ctx, op, *res.Remote)

	case models.ResultInvalid:
		result.PermanentErrors++
		return s.fail(ctx, op, res.Error)

	default:
		return s.retryLater(ctx, op, res.Error, result)
	}
}

// acknowledge removes op from the queue and records the acknowledged state
// as the new baseline of the entity.
func (s *clientSyncService) acknowledge(ctx context.Context, op models.SyncOperation, version int64) error {
	if err := s.queue.Dequeue(ctx, op.ID); err != nil {
		return fmt.Errorf("dequeue acknowledged operation: %w", err)
	}

	return s.storeVersion(ctx, models.EntityVersion{
		EntityType: op.EntityType,
		EntityID:   op.EntityID,
		ProjectID:  op.ProjectID,
		Payload:    op.Payload,
		Version:    version,
		DeviceID:   op.DeviceID,
		Deleted:    op.Kind == models.OperationDelete,
	}, true)
}

func (s *clientSyncService) resolveConflict(ctx context.Context, op models.SyncOperation, remote models.EntityVersion) error {
	log := logger.FromContext(ctx)

	local := models.EntityVersion{
		EntityType: op.EntityType,
		EntityID:   op.EntityID,
		ProjectID:  op.ProjectID,
		Payload:    op.Payload,
		Version:    op.BaseVersion,
		DeviceID:   op.DeviceID,
		Deleted:    op.Kind == models.OperationDelete,
	}

	record := models.ConflictRecord{
		ID:          s.ids.Generate(),
		OperationID: op.ID,
		Local:       local,
		Remote:      remote,
		Resolution:  s.resolver.Resolve(local, remote),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.localStore.ConflictRepository.SaveConflict(ctx, record); err != nil {
		return fmt.Errorf("save conflict: %w", err)
	}

	log.Info().Str("func", "clientSyncService.resolveConflict").
		Str("operation_id", op.ID).
		Str("winner", string(record.Resolution.Winner)).
		Str("reason", record.Resolution.Reason).
		Msg("conflict resolved")

	// the remote version becomes the baseline in every case; only the
	// entity cache depends on the winner
	switch {
	case record.Resolution.Winner == models.SideRemote:
		if err := s.queue.Dequeue(ctx, op.ID); err != nil {
			return fmt.Errorf("dequeue superseded operation: %w", err)
		}
		if err := s.storeVersion(ctx, remote, true); err != nil {
			return err
		}

	case record.Resolution.Strategy == models.StrategyManual:
		if err := s.queue.Dequeue(ctx, op.ID); err != nil {
			return fmt.Errorf("dequeue deferred operation: %w", err)
		}
		if err := s.storeVersion(ctx, remote, false); err != nil {
			return err
		}

	default:
		op.BaseVersion = remote.Version
		if record.Resolution.Winner == models.SideMerged {
			op.Payload = record.Resolution.MergedPayload
		}
		if err := s.localStore.OperationQueue.Put(ctx, op); err != nil {
			return fmt.Errorf("requeue operation: %w", err)
		}
		if err := s.storeVersion(ctx, remote, false); err != nil {
			return err
		}
		if record.Resolution.Winner == models.SideMerged {
			merged := local
			merged.Payload = op.Payload
			if err := cacheVersion(ctx, s.localStore.LocalEntities, merged); err != nil {
				return err
			}
		}
	}

	s.events.Publish(models.SyncEvent{Type: models.EventConflictResolved, OperationID: op.ID, Conflict: &record})
	return nil
}

func (s *clientSyncService) retryLater(ctx context.Context, op models.SyncOperation, errMsg string, result *models.SyncResult) error {
	next, permanent := s.retry.Next(op, errMsg, s.now())
	if err := s.localStore.OperationQueue.Put(ctx, next); err != nil {
		return fmt.Errorf("record retry: %w", err)
	}

	if permanent {
		result.PermanentErrors++
		logger.FromContext(ctx).Error().Str("func", "clientSyncService.retryLater").
			Str("operation_id", op.ID).
			Int("retry_count", next.RetryCount).
			Str("error", errMsg).
			Msg("retry cap reached, operation failed")
		s.events.Publish(models.SyncEvent{Type: models.EventPermanentError, OperationID: op.ID, Err: errMsg})
		return nil
	}

	result.Retried++
	return nil
}

func (s *clientSyncService) fail(ctx context.Context, op models.SyncOperation, errMsg string) error {
	op.Status = models.OperationFailed
	op.LastError = errMsg
	op.NextRetryAt = nil
	if err := s.localStore.OperationQueue.Put(ctx, op); err != nil {
		return fmt.Errorf("mark operation failed: %w", err)
	}

	logger.FromContext(ctx).Error().Str("func", "clientSyncService.fail").
		Str("operation_id", op.ID).
		Str("error", errMsg).
		Msg("operation rejected by server")
	s.events.Publish(models.SyncEvent{Type: models.EventPermanentError, OperationID: op.ID, Err: errMsg})
	return nil
}

// Pull implements [ClientSyncService]. Remote changes are not written over
// the cache of entities that still have pending local operations; those
// operations reach the server with a stale base version and go through
// conflict resolution.
func (s *clientSyncService) Pull(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	device, err := s.devices.Current(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve device: %w", err)
	}

	after, err := s.localStore.Metadata.GetChangeCursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("load change cursor: %w", err)
	}

	resp, err := s.adapter.PullChanges(ctx, models.PullRequest{DeviceID: device.ID, After: after})
	if err != nil {
		log.Err(err).Str("func", "clientSyncService.Pull").Msg("pull failed")
		return 0, fmt.Errorf("pull changes: %w", mapAdapterError(err))
	}

	pending, err := s.localStore.OperationQueue.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending operations: %w", err)
	}
	dirty := make(map[string]struct{}, len(pending))
	for _, op := range pending {
		dirty[models.EntityKey(op.EntityType, op.EntityID)] = struct{}{}
	}

	for _, change := range resp.Changes {
		_, isDirty := dirty[models.EntityKey(change.EntityType, change.EntityID)]
		remote := models.EntityVersion{
			EntityType: change.EntityType,
			EntityID:   change.EntityID,
			ProjectID:  change.ProjectID,
			Payload:    change.Payload,
			Version:    change.Version,
			DeviceID:   change.DeviceID,
			Deleted:    change.Kind == models.OperationDelete,
		}
		if err = s.storeVersion(ctx, remote, !isDirty); err != nil {
			return 0, err
		}

		s.events.Publish(models.SyncEvent{Type: models.EventRemoteChangeApplied, Change: &change})
	}

	cursor := resp.Cursor
	if len(resp.Changes) > 0 && cursor < resp.Changes[len(resp.Changes)-1].ChangeID {
		cursor = resp.Changes[len(resp.Changes)-1].ChangeID
	}
	if cursor > after {
		if err = s.localStore.Metadata.SetChangeCursor(ctx, cursor); err != nil {
			return 0, fmt.Errorf("save change cursor: %w", err)
		}
	}

	checkpoint := resp.ServerTime
	if checkpoint.IsZero() && len(resp.Changes) > 0 {
		checkpoint = resp.Changes[len(resp.Changes)-1].ChangedAt
	}
	if !checkpoint.IsZero() {
		if err = s.localStore.Metadata.SetLastSyncTimestamp(ctx, checkpoint); err != nil {
			return 0, fmt.Errorf("save last sync timestamp: %w", err)
		}
	}

	log.Debug().Str("func", "clientSyncService.Pull").Int("changes", len(resp.Changes)).Msg("remote changes applied")
	return len(resp.Changes), nil
}

// storeVersion saves a snapshot of v and, when updateCache is set, writes it
// to the entity cache.
func (s *clientSyncService) storeVersion(ctx context.Context, v models.EntityVersion, updateCache bool) error {
	_, err := s.localStore.SnapshotRepository.SaveSnapshot(ctx, models.EntitySnapshot{
		ProjectID:  v.ProjectID,
		EntityType: v.EntityType,
		EntityID:   v.EntityID,
		Payload:    v.Payload,
		Version:    v.Version,
		Deleted:    v.Deleted,
		CapturedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if !updateCache {
		return nil
	}
	return cacheVersion(ctx, s.localStore.LocalEntities, v)
}

func cacheVersion(ctx context.Context, entities store.LocalEntityStore, v models.EntityVersion) error {
	var err error
	if v.Deleted {
		err = entities.DeleteEntity(ctx, v.EntityType, v.EntityID)
	} else {
		err = entities.PutEntity(ctx, v)
	}
	if err != nil {
		return fmt.Errorf("update entity cache: %w", err)
	}
	return nil
}

// Conflicts implements [ClientSyncService].
func (s *clientSyncService) Conflicts(ctx context.Context, openOnly bool) ([]models.ConflictRecord, error) {
	if openOnly {
		return s.localStore.ConflictRepository.ListOpenConflicts(ctx)
	}
	return s.localStore.ConflictRepository.ListConflicts(ctx)
}

// ResolveConflict implements [ClientSyncService].
func (s *clientSyncService) ResolveConflict(ctx context.Context, conflictID string, choice models.ConflictSide) (models.SyncOperation, error) {
	if choice != models.SideLocal && choice != models.SideRemote {
		return models.SyncOperation{}, ErrInvalidChoice
	}

	record, err := s.localStore.ConflictRepository.GetConflict(ctx, conflictID)
	if err != nil {
		return models.SyncOperation{}, err
	}
	if record.Resolution.Strategy != models.StrategyManual {
		return models.SyncOperation{}, fmt.Errorf("%w: %s", ErrConflictNotManual, conflictID)
	}

	chosen := record.Local
	if choice == models.SideRemote {
		chosen = record.Remote
	}

	kind := models.OperationUpdate
	if chosen.Deleted || len(chosen.Payload) == 0 {
		kind = models.OperationDelete
	}

	op, err := s.queue.Enqueue(ctx, models.EnqueueRequest{
		Kind:       kind,
		EntityType: chosen.EntityType,
		EntityID:   chosen.EntityID,
		ProjectID:  chosen.ProjectID,
		Payload:    chosen.Payload,
		Priority:   models.PriorityHigh,
	})
	if err != nil {
		return models.SyncOperation{}, fmt.Errorf("enqueue decision: %w", err)
	}

	err = s.localStore.ConflictRepository.SaveDecision(ctx, models.ConflictDecision{
		ConflictID:  conflictID,
		Choice:      choice,
		OperationID: op.ID,
		DecidedAt:   s.now().UTC(),
	})
	if err != nil {
		if derr := s.queue.Dequeue(ctx, op.ID); derr != nil {
			err = errors.Join(err, derr)
		}
		return models.SyncOperation{}, err
	}

	if choice == models.SideRemote {
		if err = cacheVersion(ctx, s.localStore.LocalEntities, chosen); err != nil {
			return models.SyncOperation{}, err
		}
	}

	return op, nil
}
