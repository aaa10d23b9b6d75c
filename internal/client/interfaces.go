// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-story-sync/models"
)

// Client is what the command tree needs from a device runtime. [App] is the
// implementation backed by the local stores and the server adapter.
type Client interface {
	Register(ctx context.Context, user models.User) error
	Login(ctx context.Context, user models.User) (int64, error)
	Projects(ctx context.Context) ([]models.Project, error)

	Enqueue(ctx context.Context, req models.EnqueueRequest) (string, error)

	// Sync runs one round now, regardless of the observed connectivity.
	Sync(ctx context.Context) (models.SyncResult, error)
	Status(ctx context.Context) (models.SyncStatus, error)

	Conflicts(ctx context.Context, all bool) ([]models.ConflictRecord, error)
	Resolve(ctx context.Context, conflictID string, choice models.ConflictSide) (string, error)

	// Run keeps the device in sync until ctx is cancelled, passing every
	// sync event to onEvent.
	Run(ctx context.Context, onEvent func(models.SyncEvent)) error

	Close() error
}
