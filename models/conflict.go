// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ResolutionStrategy names the rule that settled a conflict.
type ResolutionStrategy string

const (
	StrategyOverwrite ResolutionStrategy = "overwrite"
	StrategyMerge     ResolutionStrategy = "merge"
	StrategyManual    ResolutionStrategy = "manual"
)

// ConflictSide identifies the version that won a conflict.
type ConflictSide string

const (
	SideLocal  ConflictSide = "local"
	SideRemote ConflictSide = "remote"
	SideMerged ConflictSide = "merged"
)

// EntityVersion is one side of a conflict: the payload of an entity as the
// device or the server holds it.
type EntityVersion struct {
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	ProjectID  int64           `json:"project_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`

	// Version is the server-side version counter. Local versions carry the
	// base version the operation was computed against.
	Version  int64  `json:"version"`
	DeviceID string `json:"device_id,omitempty"`

	// Deleted marks a tombstoned remote entity.
	Deleted bool `json:"deleted,omitempty"`
}

// Resolution is the outcome of conflict resolution.
type Resolution struct {
	Strategy ResolutionStrategy `json:"strategy"`
	Winner   ConflictSide       `json:"winner"`

	// MergedPayload is set only when Winner is SideMerged.
	MergedPayload json.RawMessage `json:"merged_payload,omitempty"`

	// Reason is a human-readable explanation of which rule fired.
	Reason string `json:"reason"`

	// RequiresReview is set when the user has to look at the result:
	// merges with conflict markers and manual deferrals.
	RequiresReview bool `json:"requires_review"`
}

// ConflictRecord is the audit entry persisted for every conflict the server
// reported. It is never mutated after it is written.
type ConflictRecord struct {
	ID          string        `json:"id"`
	OperationID string        `json:"operation_id"`
	Local       EntityVersion `json:"local"`
	Remote      EntityVersion `json:"remote"`
	Resolution  Resolution    `json:"resolution"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ConflictDecision records how the user settled a manually deferred
// conflict. It lives apart from the immutable [ConflictRecord].
type ConflictDecision struct {
	ConflictID  string       `json:"conflict_id"`
	Choice      ConflictSide `json:"choice"`
	OperationID string       `json:"operation_id"`
	DecidedAt   time.Time    `json:"decided_at"`
}
