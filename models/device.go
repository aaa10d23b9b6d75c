// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProtocolVersion is the sync protocol version spoken by this build.
const ProtocolVersion = 1

// Platform is the class of a synchronizing device.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformTablet  Platform = "tablet"
	PlatformMobile  Platform = "mobile"
	PlatformOther   Platform = "other"
)

// ParsePlatform maps free-form input to a known platform, defaulting to
// [PlatformOther].
func ParsePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformDesktop, PlatformTablet, PlatformMobile:
		return Platform(s)
	}
	return PlatformOther
}

// DeviceDescriptor identifies a synchronizing device.
//
// The ID is generated once on first run and persisted locally. LastSeen is
// refreshed after every successful sync round. Descriptors are never removed
// automatically.
type DeviceDescriptor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Platform        Platform  `json:"platform"`
	LastSeen        time.Time `json:"last_seen"`
	ProtocolVersion int       `json:"protocol_version"`

	// UserID is the owning account. Filled on the server only.
	UserID int64 `json:"-"`
}
