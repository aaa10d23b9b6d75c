// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// OperationKind is the kind of mutation a [SyncOperation] carries.
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// Valid reports whether k is one of the known operation kinds.
func (k OperationKind) Valid() bool {
	switch k {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Priority is the scheduling bucket of a queued operation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the ordering rank of the priority bucket: high sorts first.
// Unknown values sort together with medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// OperationStatus is the local lifecycle state of a queued operation.
type OperationStatus string

const (
	// OperationPending operations are part of the active queue.
	OperationPending OperationStatus = "pending"
	// OperationFailed operations exceeded the retry cap or were rejected as
	// invalid. They are kept for manual intervention but never pushed again.
	OperationFailed OperationStatus = "failed"
)

// SyncOperation is a single intended mutation of an entity produced on a
// device and pushed to the server.
//
// An operation is owned by the device that produced it until the server
// acknowledges it. It is persisted in the local queue immediately on enqueue
// and leaves the queue either acknowledged or permanently failed.
type SyncOperation struct {
	// ID is a UUIDv7 assigned on enqueue. It is also the idempotency key on
	// the server side.
	ID string `json:"id"`

	// Kind is create, update or delete.
	Kind OperationKind `json:"kind"`

	// EntityType names the mutated entity class (scene, note, character...).
	EntityType string `json:"entity_type"`

	// EntityID is the client-visible identifier of the mutated entity.
	EntityID string `json:"entity_id"`

	// ProjectID is the project the entity belongs to. Access to the project
	// is checked before the operation is accepted.
	ProjectID int64 `json:"project_id"`

	// Payload is the opaque entity body.
	Payload json.RawMessage `json:"payload,omitempty"`

	// BaseVersion is the server version of the entity the device saw last.
	// Zero means the device has never seen the entity.
	BaseVersion int64 `json:"base_version"`

	// CreatedAt is the enqueue time.
	CreatedAt time.Time `json:"created_at"`

	DeviceID string `json:"device_id"`
	UserID   int64  `json:"user_id"`

	// RetryCount is the number of failed push attempts reported by the server.
	RetryCount int `json:"retry_count"`

	Priority Priority `json:"priority"`

	// Dependencies lists operation ids that must be pushed before this one.
	Dependencies []string `json:"dependencies,omitempty"`

	// Local bookkeeping, never sent to the server.
	Seq         int64           `json:"-"`
	NextRetryAt *time.Time      `json:"-"`
	Status      OperationStatus `json:"-"`
	LastError   string          `json:"-"`
}

// DueAt reports whether the operation may be pushed at the given instant.
func (o SyncOperation) DueAt(now time.Time) bool {
	return o.NextRetryAt == nil || !o.NextRetryAt.After(now)
}

// EnqueueRequest carries the caller-provided part of a new [SyncOperation].
// Identity, timestamps and retry bookkeeping are assigned by the queue.
type EnqueueRequest struct {
	Kind         OperationKind   `json:"kind"`
	EntityType   string          `json:"entity_type"`
	EntityID     string          `json:"entity_id"`
	ProjectID    int64           `json:"project_id"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Priority     Priority        `json:"priority"`
	Dependencies []string        `json:"dependencies,omitempty"`
}
