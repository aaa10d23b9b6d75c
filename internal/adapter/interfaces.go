// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the story-sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation built on resty ([NewHTTPServerAdapter]).
//
// Non-2xx replies come back as [*StatusError], which unwraps to the status
// sentinels in errors.go so callers can use [errors.Is]. A request that never reached the server is reported as
// [ErrNetwork]; the sync engine treats both [ErrNetwork] and
// [ErrServerUnavailable] as "retry later, change nothing".
package adapter

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the story-sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates the account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user and stores the returned bearer token.
	// The returned token carries the user id parsed from its subject.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// PushBatch sends one batch of operations. The integrity hash of the
	// operations is computed and attached automatically. The response holds
	// exactly one result per pushed operation.
	PushBatch(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// PullChanges fetches changes made by other devices after the req.After
	// change id.
	PullChanges(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// ListProjects returns the projects the current user is a member of.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// CreateProject creates a project owned by the current user.
	CreateProject(ctx context.Context, name string) (models.Project, error)

	// Health reports whether the server answers its health endpoint.
	Health(ctx context.Context) error
}
