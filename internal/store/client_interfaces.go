package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// OperationQueueRepository is the durable local queue of sync operations.
// Every method runs in its own transaction.
type OperationQueueRepository interface {
	Add(ctx context.Context, op models.SyncOperation) (models.SyncOperation, error)
	Get(ctx context.Context, id string) (models.SyncOperation, error)
	Put(ctx context.Context, op models.SyncOperation) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error

	// ListPending returns the active queue ordered by priority bucket
	// (high, medium, low), then insertion order.
	ListPending(ctx context.Context) ([]models.SyncOperation, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]models.SyncOperation, error)
	ListFailed(ctx context.Context) ([]models.SyncOperation, error)
	CountByStatus(ctx context.Context, status models.OperationStatus) (int, error)
}

// ConflictRepository is the append-only conflict audit log.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, record models.ConflictRecord) error
	GetConflict(ctx context.Context, id string) (models.ConflictRecord, error)
	ListConflicts(ctx context.Context) ([]models.ConflictRecord, error)

	// ListOpenConflicts returns manual conflicts without a decision.
	ListOpenConflicts(ctx context.Context) ([]models.ConflictRecord, error)
	SaveDecision(ctx context.Context, decision models.ConflictDecision) error
}

// SnapshotRepository keeps the baselines of remotely changed entities.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot models.EntitySnapshot) (models.EntitySnapshot, error)
	LatestSnapshot(ctx context.Context, entityType, entityID string) (models.EntitySnapshot, error)
}

// LocalEntityStore is the device's projection of entity state.
type LocalEntityStore interface {
	PutEntity(ctx context.Context, entity models.EntityVersion) error
	GetEntity(ctx context.Context, entityType, entityID string) (models.EntityVersion, error)
	DeleteEntity(ctx context.Context, entityType, entityID string) error
}

// MetadataStore keeps small pieces of device state between runs.
type MetadataStore interface {
	GetDevice(ctx context.Context) (models.DeviceDescriptor, error)
	SaveDevice(ctx context.Context, device models.DeviceDescriptor) error

	GetLastSyncTimestamp(ctx context.Context) (time.Time, error)
	SetLastSyncTimestamp(ctx context.Context, ts time.Time) error

	GetChangeCursor(ctx context.Context) (int64, error)
	SetChangeCursor(ctx context.Context, changeID int64) error

	GetToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error

	// GetProjects returns the project ids the user had access to at the last
	// successful round; ErrMetadataNotFound when never fetched.
	GetProjects(ctx context.Context) ([]int64, error)
	SaveProjects(ctx context.Context, projectIDs []int64) error
}
