// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// EntitySnapshot is a point-in-time copy of a remote entity captured when a
// remote change is applied locally. The latest snapshot of an entity is the
// baseline for the next operation on it.
type EntitySnapshot struct {
	ID         int64           `json:"id"`
	ProjectID  int64           `json:"project_id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Version    int64           `json:"version"`
	Deleted    bool            `json:"deleted"`
	CapturedAt time.Time       `json:"captured_at"`
}

// EntityKey builds the key used for an entity in local caches.
func EntityKey(entityType, entityID string) string {
	return entityType + "/" + entityID
}
