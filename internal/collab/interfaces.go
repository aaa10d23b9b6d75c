// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package collab implements live co-editing sessions.
//
// A session exists per document while at least one participant is active.
// It holds the canonical content in memory, the operation log since the
// document was loaded, the participant list and their cursors. Operations
// of one session are serialized by the session mutex; different sessions
// run in parallel.
//
// Delivery to other participants goes through a [Broadcaster]. The [Hub] is
// the in-process implementation used by the websocket handler.
package collab

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/collab_mock.go -package=mock

// Service is the collaborative session engine.
type Service interface {
	// JoinDocument attaches userID to the session of documentID, creating
	// the session on first join, and returns a full snapshot.
	JoinDocument(ctx context.Context, userID int64, displayName string, projectID int64, documentID string, kind models.DocumentKind) (models.JoinResult, error)

	UpdateCursor(ctx context.Context, userID int64, documentID string, cursor models.CursorPosition) error

	// SubmitTextOperation transforms op against every operation accepted
	// after op.BaseVersion, applies it and acknowledges it. Resubmitting an
	// already accepted operation id returns the original acknowledgement.
	SubmitTextOperation(ctx context.Context, userID int64, documentID string, op models.TextOperation) (models.OperationAck, error)

	// LeaveDocument marks userID inactive. The last active participant
	// leaving persists the content and ends the session.
	LeaveDocument(ctx context.Context, userID int64, documentID string) error

	GetActiveCollaborators(ctx context.Context, documentID string) ([]models.Participant, error)

	// ProjectOf returns the project of a live session.
	ProjectOf(ctx context.Context, documentID string) (int64, error)

	// Flush persists the content of every session changed since the last
	// flush.
	Flush(ctx context.Context) error

	// ReapInactive purges participants inactive for longer than the grace
	// period and ends sessions nobody is active in.
	ReapInactive(ctx context.Context, now time.Time) error
}

// Broadcaster delivers a session message to every subscriber of a document
// except the user exclude.
type Broadcaster interface {
	Broadcast(documentID string, msg models.SessionMessage, exclude int64)
}
