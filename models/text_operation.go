// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TextOperationKind is the kind of a keystroke-level edit.
type TextOperationKind string

const (
	TextInsert TextOperationKind = "insert"
	TextDelete TextOperationKind = "delete"
	TextRetain TextOperationKind = "retain"
)

// TextOperation is a single edit within a collaboration session.
//
// Positions and lengths are counted in runes. BaseVersion is the document
// version the author computed the edit against; Version is assigned by the
// session when the operation is accepted. Operations are never mutated: a
// transformed copy carries a new ID.
type TextOperation struct {
	ID          string            `json:"id"`
	AuthorID    int64             `json:"author_id"`
	Kind        TextOperationKind `json:"kind"`
	Position    int               `json:"position"`
	Content     string            `json:"content,omitempty"`
	Length      int               `json:"length,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	BaseVersion int64             `json:"base_version"`
	Version     int64             `json:"version,omitempty"`
}

// InsertedLength returns the rune count of an insert, zero otherwise.
func (o TextOperation) InsertedLength() int {
	if o.Kind != TextInsert {
		return 0
	}
	return len([]rune(o.Content))
}
