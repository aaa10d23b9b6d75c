package service

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers users and issues the bearer tokens used by devices
// and collaboration connections.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService is the remote authority side of the sync protocol.
type SyncService interface {
	// ProcessBatch applies every operation of req in order and returns one
	// result per operation. A failing operation never aborts the batch.
	ProcessBatch(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)

	// ChangesSince returns changes made by other devices after the req.After
	// change id in projects the user belongs to.
	ChangesSince(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, userID int64, name string) (models.Project, error)
	ListProjects(ctx context.Context, userID int64) ([]models.Project, error)
	AddMember(ctx context.Context, ownerID, projectID, userID int64) error
	HasAccess(ctx context.Context, userID, projectID int64) (bool, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
