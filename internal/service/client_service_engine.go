package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/rs/zerolog"
)

type syncEngine struct {
	localStore *store.ClientStorages
	queue      QueueService
	sync       ClientSyncService
	devices    DeviceService
	bus        *EventBus
	ids        *utils.UUIDGenerator

	online atomic.Bool
	wg     sync.WaitGroup

	// mu guards running and rerun. rerun is set when a background trigger
	// finds a round in progress; that round then runs once more.
	mu      sync.Mutex
	running bool
	rerun   bool

	logger *logger.Logger
}

// NewSyncEngine wires the engine. The device starts offline; the connectivity
// monitor or a forced round brings it online.
func NewSyncEngine(
	localStore *store.ClientStorages,
	queue QueueService,
	syncService ClientSyncService,
	devices DeviceService,
	bus *EventBus,
	logger *logger.Logger,
) SyncEngine {
	return &syncEngine{
		localStore: localStore,
		queue:      queue,
		sync:       syncService,
		devices:    devices,
		bus:        bus,
		ids:        utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

// EnqueueOperation implements [SyncEngine]. A high priority operation starts a
// round right away when the device is online.
func (e *syncEngine) EnqueueOperation(ctx context.Context, req models.EnqueueRequest) (string, error) {
	op, err := e.queue.Enqueue(ctx, req)
	if err != nil {
		return "", err
	}

	if op.Priority == models.PriorityHigh && e.online.Load() {
		e.triggerInBackground(ctx, "high priority operation")
	}
	return op.ID, nil
}

// TriggerSync implements [SyncEngine].
func (e *syncEngine) TriggerSync(ctx context.Context, force bool) (models.SyncResult, error) {
	return e.trigger(ctx, force, false)
}

// trigger runs a round unless one is in progress. With queueIfBusy the busy
// round is asked to run again once it finishes, so the request is not left
// for the next tick.
func (e *syncEngine) trigger(ctx context.Context, force, queueIfBusy bool) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	if !force && !e.online.Load() {
		log.Debug().Str("func", "syncEngine.trigger").Msg("offline, round skipped")
		return models.SyncResult{Skipped: true}, nil
	}

	e.mu.Lock()
	if e.running {
		e.rerun = e.rerun || queueIfBusy
		e.mu.Unlock()
		log.Debug().Str("func", "syncEngine.trigger").Bool("queued", queueIfBusy).Msg("round in progress, skipped")
		return models.SyncResult{Skipped: true}, nil
	}
	e.running = true
	e.mu.Unlock()

	for {
		result, err := e.runRound(ctx)

		e.mu.Lock()
		again := e.rerun && err == nil && e.online.Load()
		e.rerun = false
		if !again {
			e.running = false
		}
		e.mu.Unlock()

		if !again {
			return result, err
		}
		log.Debug().Str("func", "syncEngine.trigger").Msg("round requested while running, starting another")
	}
}

func (e *syncEngine) runRound(ctx context.Context) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	// the round id travels to the server as the request trace id
	roundID := e.ids.Generate()
	log = log.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", roundID)
	})
	ctx = utils.WithTraceID(log.WithContext(ctx), roundID)

	e.bus.Publish(models.SyncEvent{Type: models.EventSyncStarted})

	result, err := e.round(ctx)
	if err != nil {
		if errors.Is(err, ErrServerUnreachable) {
			e.online.Store(false)
		}
		log.Err(err).Str("func", "syncEngine.runRound").Msg("sync round failed")
		e.bus.Publish(models.SyncEvent{Type: models.EventSyncError, Result: &result, Err: err.Error()})
		return result, err
	}

	e.online.Store(true)
	log.Info().Str("func", "syncEngine.runRound").
		Int("pushed", result.Pushed).
		Int("acknowledged", result.Acknowledged).
		Int("conflicts", result.Conflicts).
		Int("pulled", result.Pulled).
		Msg("sync round completed")
	e.bus.Publish(models.SyncEvent{Type: models.EventSyncCompleted, Result: &result})
	return result, nil
}

func (e *syncEngine) round(ctx context.Context) (models.SyncResult, error) {
	result, err := e.sync.Push(ctx)
	if err != nil {
		return result, err
	}

	pulled, err := e.sync.Pull(ctx)
	result.Pulled = pulled
	if err != nil {
		return result, err
	}

	if err = e.devices.Touch(ctx, time.Now()); err != nil {
		return result, fmt.Errorf("update device last seen: %w", err)
	}
	return result, nil
}

// Subscribe implements [SyncEngine].
func (e *syncEngine) Subscribe() (<-chan models.SyncEvent, func()) {
	return e.bus.Subscribe()
}

// GetSyncStatus implements [SyncEngine].
func (e *syncEngine) GetSyncStatus(ctx context.Context) (models.SyncStatus, error) {
	pending, err := e.localStore.OperationQueue.CountByStatus(ctx, models.OperationPending)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("count pending operations: %w", err)
	}
	failed, err := e.localStore.OperationQueue.CountByStatus(ctx, models.OperationFailed)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("count failed operations: %w", err)
	}
	last, err := e.localStore.Metadata.GetLastSyncTimestamp(ctx)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("load last sync timestamp: %w", err)
	}

	status := models.SyncStatus{
		IsOnline:     e.online.Load(),
		PendingCount: pending,
		FailedCount:  failed,
		InProgress:   e.inProgress(),
	}
	if !last.IsZero() {
		status.LastSyncTimestamp = &last
	}
	return status, nil
}

// SetOnline implements [SyncEngine].
func (e *syncEngine) SetOnline(ctx context.Context, online bool) {
	was := e.online.Swap(online)
	if was == online {
		return
	}

	logger.FromContext(ctx).Info().Str("func", "syncEngine.SetOnline").Bool("online", online).Msg("connectivity changed")
	if online {
		e.triggerInBackground(ctx, "connectivity regained")
	}
}

// NotifyVisible implements [SyncEngine].
func (e *syncEngine) NotifyVisible(ctx context.Context) {
	if e.online.Load() {
		e.triggerInBackground(ctx, "visibility regained")
	}
}

// ResolveConflict implements [SyncEngine].
func (e *syncEngine) ResolveConflict(ctx context.Context, conflictID string, choice models.ConflictSide) (string, error) {
	op, err := e.sync.ResolveConflict(ctx, conflictID, choice)
	if err != nil {
		return "", err
	}
	if e.online.Load() {
		e.triggerInBackground(ctx, "conflict decision")
	}
	return op.ID, nil
}

func (e *syncEngine) inProgress() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Wait implements [SyncEngine].
func (e *syncEngine) Wait() {
	e.wg.Wait()
}

// triggerInBackground runs a round detached from the cancellation of ctx, so
// in-flight requests complete or time out on their own.
func (e *syncEngine) triggerInBackground(ctx context.Context, reason string) {
	bg := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if _, err := e.trigger(bg, false, true); err != nil {
			logger.FromContext(bg).Warn().Err(err).Str("func", "syncEngine.triggerInBackground").
				Str("reason", reason).Msg("background round failed")
		}
	}()
}
