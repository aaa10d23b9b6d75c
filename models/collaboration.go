// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// DocumentKind is the class of a co-editable document.
type DocumentKind string

const (
	DocumentScene     DocumentKind = "scene"
	DocumentNote      DocumentKind = "note"
	DocumentCharacter DocumentKind = "character"
	DocumentLocation  DocumentKind = "location"
)

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentScene, DocumentNote, DocumentCharacter, DocumentLocation:
		return true
	}
	return false
}

// Participant is a user attached to a collaboration session.
// Participants that disconnect are marked inactive and purged later.
type Participant struct {
	UserID       int64     `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	JoinedAt     time.Time `json:"joined_at"`
	LastActivity time.Time `json:"last_activity"`
	Active       bool      `json:"active"`
}

// CursorPosition is the caret and selection of a participant.
type CursorPosition struct {
	Position       int `json:"position"`
	SelectionStart int `json:"selection_start"`
	SelectionEnd   int `json:"selection_end"`
}

// Document is the canonical persisted content of a co-editable document.
type Document struct {
	ID        string       `json:"id"`
	ProjectID int64        `json:"project_id"`
	Kind      DocumentKind `json:"kind"`
	Content   string       `json:"content"`
	Version   int64        `json:"version"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// JoinRequest is the payload of a join message.
type JoinRequest struct {
	ProjectID    int64        `json:"project_id"`
	DocumentID   string       `json:"document_id"`
	DocumentKind DocumentKind `json:"document_kind"`
	DisplayName  string       `json:"display_name"`
}

// JoinResult is the snapshot handed to a participant on join, so late
// joiners never replay history.
type JoinResult struct {
	SessionID    string                   `json:"session_id"`
	DocumentID   string                   `json:"document_id"`
	Participants []Participant            `json:"participants"`
	Cursors      map[int64]CursorPosition `json:"cursors"`
	Version      int64                    `json:"version"`
	Content      string                   `json:"content"`
}

// OperationAck acknowledges an accepted text operation.
type OperationAck struct {
	// OperationID is the id the client submitted.
	OperationID string `json:"operation_id"`
	// Applied is the transformed operation as it was appended to the log.
	Applied TextOperation `json:"applied"`
	Version int64         `json:"version"`
}

// SessionMessageType enumerates realtime channel messages.
type SessionMessageType string

const (
	// client to server
	MessageJoin      SessionMessageType = "join"
	MessageLeave     SessionMessageType = "leave"
	MessageCursor    SessionMessageType = "cursor"
	MessageOperation SessionMessageType = "operation"

	// server to client
	MessageJoined            SessionMessageType = "joined"
	MessageParticipantJoined SessionMessageType = "participant-joined"
	MessageParticipantLeft   SessionMessageType = "participant-left"
	MessageAck               SessionMessageType = "ack"
	MessageVersionConflict   SessionMessageType = "version-conflict"
	MessageError             SessionMessageType = "error"
)

// SessionMessage is the envelope of every realtime channel message.
type SessionMessage struct {
	Type       SessionMessageType `json:"type"`
	DocumentID string             `json:"document_id"`
	UserID     int64              `json:"user_id,omitempty"`
	Payload    json.RawMessage    `json:"payload,omitempty"`
}
