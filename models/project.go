// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProjectRole is the access level of a project member.
type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleEditor ProjectRole = "editor"
)

// Project groups the entities and documents a set of users may sync and
// co-edit.
type Project struct {
	ProjectID int64       `json:"project_id"`
	Name      string      `json:"name"`
	Role      ProjectRole `json:"role,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
