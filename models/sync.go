// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// OperationResultStatus is the server verdict for one pushed operation.
type OperationResultStatus string

const (
	// ResultSuccess: the operation was applied (or had been applied before).
	ResultSuccess OperationResultStatus = "success"
	// ResultConflict: the server holds a divergent version of the entity.
	ResultConflict OperationResultStatus = "conflict"
	// ResultError: a transient failure, the operation may be retried.
	ResultError OperationResultStatus = "error"
	// ResultInvalid: the operation is malformed or not permitted and must
	// not be retried.
	ResultInvalid OperationResultStatus = "invalid"
)

// PushRequest is one batch of operations sent to the server in a single
// network exchange.
type PushRequest struct {
	Device     DeviceDescriptor `json:"device"`
	Operations []SyncOperation  `json:"operations"`

	// Hash is the hex HMAC-SHA256 of the JSON encoded Operations. It is
	// checked by the server before the batch is processed.
	Hash string `json:"hash,omitempty"`
}

// OperationResult is the per-operation part of a [PushResponse].
type OperationResult struct {
	OperationID string                `json:"operation_id"`
	Status      OperationResultStatus `json:"status"`
	Error       string                `json:"error,omitempty"`

	// Version is the entity version after a successful apply.
	Version int64 `json:"version,omitempty"`

	// Remote is the conflicting server version; set with ResultConflict.
	Remote *EntityVersion `json:"remote,omitempty"`
}

// PushResponse carries one result per pushed operation, in request order.
type PushResponse struct {
	Results []OperationResult `json:"results"`
}

// RemoteChange is one entry of the server change feed.
type RemoteChange struct {
	ChangeID   int64           `json:"change_id"`
	ProjectID  int64           `json:"project_id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Kind       OperationKind   `json:"kind"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Version    int64           `json:"version"`
	DeviceID   string          `json:"device_id"`
	ChangedAt  time.Time       `json:"changed_at"`
}

// PullRequest asks for every change with a ChangeID above After that was not
// made by DeviceID.
type PullRequest struct {
	DeviceID string `json:"device_id"`
	After    int64  `json:"after"`
}

// PullResponse is the server answer to a [PullRequest].
//
// Cursor is the ChangeID the device passes as After on its next pull once
// every change has been applied. ServerTime only feeds the last sync
// timestamp shown to the user.
type PullResponse struct {
	Changes    []RemoteChange `json:"changes"`
	Cursor     int64          `json:"cursor"`
	ServerTime time.Time      `json:"server_time"`
}

// SyncStatus is a point-in-time view of the device sync engine.
type SyncStatus struct {
	IsOnline          bool       `json:"is_online"`
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`
	PendingCount      int        `json:"pending_count"`
	FailedCount       int        `json:"failed_count"`
	InProgress        bool       `json:"in_progress"`
}

// SyncResult summarizes one sync round.
type SyncResult struct {
	Pushed          int `json:"pushed"`
	Acknowledged    int `json:"acknowledged"`
	Conflicts       int `json:"conflicts"`
	Retried         int `json:"retried"`
	PermanentErrors int `json:"permanent_errors"`
	Pulled          int `json:"pulled"`

	// Skipped is set when no round ran: another round was in progress or
	// the device is offline.
	Skipped bool `json:"skipped"`
}
