// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncEventType enumerates the lifecycle notifications of the sync engine.
type SyncEventType string

const (
	EventSyncStarted         SyncEventType = "sync-started"
	EventSyncCompleted       SyncEventType = "sync-completed"
	EventSyncError           SyncEventType = "sync-error"
	EventConflictResolved    SyncEventType = "conflict-resolved"
	EventRemoteChangeApplied SyncEventType = "remote-change-applied"
	EventPermanentError      SyncEventType = "permanent-error"
)

// SyncEvent is delivered to subscribers of the sync engine. Only the fields
// relevant to Type are set.
type SyncEvent struct {
	Type        SyncEventType   `json:"type"`
	OperationID string          `json:"operation_id,omitempty"`
	Conflict    *ConflictRecord `json:"conflict,omitempty"`
	Change      *RemoteChange   `json:"change,omitempty"`
	Result      *SyncResult     `json:"result,omitempty"`
	Err         string          `json:"error,omitempty"`
	At          time.Time       `json:"at"`
}
