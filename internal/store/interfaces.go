package store

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// ProjectRepository stores projects and their membership. It is the access
// check behind both sync and collaboration.
type ProjectRepository interface {
	CreateProject(ctx context.Context, ownerID int64, name string) (models.Project, error)
	AddMember(ctx context.Context, projectID, userID int64, role models.ProjectRole) error
	ListForUser(ctx context.Context, userID int64) ([]models.Project, error)
	HasAccess(ctx context.Context, userID, projectID int64) (bool, error)
}

// DeviceRepository stores device descriptors reported with every push.
type DeviceRepository interface {
	UpsertDevice(ctx context.Context, device models.DeviceDescriptor) error
}

// EntityRepository is the server-side authority for synchronized entities.
type EntityRepository interface {
	// ApplyOperation applies op atomically and reports success (also for an
	// already applied id) or conflict with the current server version.
	ApplyOperation(ctx context.Context, op models.SyncOperation) (models.OperationResult, error)

	// ChangesSince lists changes visible to userID with a change id above
	// after and not made by excludeDeviceID, in change id order.
	ChangesSince(ctx context.Context, userID int64, excludeDeviceID string, after int64, limit uint64) ([]models.RemoteChange, error)
}

// DocumentRepository persists the canonical content of co-edited documents.
type DocumentRepository interface {
	GetDocument(ctx context.Context, documentID string) (models.Document, error)
	SaveDocument(ctx context.Context, doc models.Document) error
}
