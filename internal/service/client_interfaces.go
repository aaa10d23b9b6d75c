package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService logs the device user in against the server and keeps
// the session token in the local metadata store.
type ClientAuthService interface {
	Register(ctx context.Context, user models.User) error

	// Login authenticates the user, stores the token and refreshes the
	// cached list of accessible projects.
	Login(ctx context.Context, user models.User) (userID int64, err error)

	// RestoreSession loads a stored token into the adapter. It reports false
	// when the device was never logged in.
	RestoreSession(ctx context.Context) (bool, error)

	// RefreshProjects fetches the project list from the server and caches
	// the ids for enqueue-time access checks.
	RefreshProjects(ctx context.Context) ([]models.Project, error)

	// UserID returns the user of the stored session.
	UserID(ctx context.Context) (int64, error)
}

// DeviceService owns the identity of this device.
type DeviceService interface {
	// Current returns the persisted descriptor, generating and storing one
	// on first use.
	Current(ctx context.Context) (models.DeviceDescriptor, error)

	// Touch records a completed sync round as the last-seen time.
	Touch(ctx context.Context, at time.Time) error
}

// QueueService is the local durable queue of outgoing operations.
type QueueService interface {
	Enqueue(ctx context.Context, req models.EnqueueRequest) (models.SyncOperation, error)
	Dequeue(ctx context.Context, operationID string) error
	Pending(ctx context.Context) ([]models.SyncOperation, error)
	Failed(ctx context.Context) ([]models.SyncOperation, error)
}

// ConflictResolver picks a resolution for divergent versions of an entity.
// It is pure: persisting and applying the outcome is up to the caller.
type ConflictResolver interface {
	Resolve(local, remote models.EntityVersion) models.Resolution
}

// EventPublisher delivers sync events to subscribers.
type EventPublisher interface {
	Publish(event models.SyncEvent)
}

// ClientSyncService runs the steps of one sync round.
type ClientSyncService interface {
	// Push sends the scheduled pending operations in batches and handles
	// every per-operation result. A transport failure stops the push and
	// leaves the remaining queue untouched.
	Push(ctx context.Context) (models.SyncResult, error)

	// Pull applies remote changes made since the last sync checkpoint and
	// moves the checkpoint forward.
	Pull(ctx context.Context) (int, error)

	// Conflicts lists stored conflicts, only undecided manual ones when
	// openOnly is set.
	Conflicts(ctx context.Context, openOnly bool) ([]models.ConflictRecord, error)

	// ResolveConflict records the user's choice for a manual conflict and
	// enqueues the chosen payload as a new update.
	ResolveConflict(ctx context.Context, conflictID string, choice models.ConflictSide) (models.SyncOperation, error)
}

// SyncEngine is the device-facing entry point of the sync queue.
type SyncEngine interface {
	EnqueueOperation(ctx context.Context, req models.EnqueueRequest) (string, error)

	// TriggerSync runs one round unless another one is in progress. Offline
	// devices skip the round unless force is set.
	TriggerSync(ctx context.Context, force bool) (models.SyncResult, error)

	// Subscribe returns a buffered event channel and a function that
	// removes the subscription. Events are dropped for subscribers that do
	// not keep up.
	Subscribe() (<-chan models.SyncEvent, func())

	GetSyncStatus(ctx context.Context) (models.SyncStatus, error)

	// SetOnline records connectivity. An offline to online transition
	// starts a round in the background.
	SetOnline(ctx context.Context, online bool)

	// NotifyVisible starts a round in the background, as when the
	// application regains focus.
	NotifyVisible(ctx context.Context)

	ResolveConflict(ctx context.Context, conflictID string, choice models.ConflictSide) (string, error)

	// Wait blocks until background rounds started by the engine finish.
	Wait()
}

// ClientSyncJob triggers sync rounds periodically.
type ClientSyncJob interface {
	Start(ctx context.Context)
	Stop()
}

// ConnectivityMonitor probes the server and reports connectivity to the
// engine.
type ConnectivityMonitor interface {
	Start(ctx context.Context)
	Stop()

	// Probe checks the server once and returns the observed state.
	Probe(ctx context.Context) bool
}
