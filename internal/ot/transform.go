// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ot implements the single-pass operational transform used by
// collaboration sessions.
//
// An incoming operation computed against version V is transformed against
// every operation accepted after V, in log order. Positions and lengths are
// rune offsets.
//
// Rules, for a prior operation P and an incoming operation O:
//   - P insert before O: O shifts forward by the inserted length. At equal
//     positions two inserts are ordered by author id, the lower id first.
//   - P insert strictly inside an O delete range: O grows to cover it.
//   - P delete entirely before O: O shifts back by the deleted length.
//   - O starts inside a P delete range: O moves to the start of that range;
//     an insert there is dropped (turned into a retain) and a delete loses
//     the overlapping part.
//
// Both arrival orders of two concurrent operations produce the same document.
package ot

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/models"
)

var (
	ErrUnknownKind      = errors.New("unknown text operation kind")
	ErrNegativePosition = errors.New("negative position")
)

// Transform returns a copy of op adjusted for the already applied prior
// operation. The ID of the returned copy is left untouched; the caller
// assigns a new one.
func Transform(op, prior models.TextOperation) models.TextOperation {
	out := op

	switch prior.Kind {
	case models.TextInsert:
		n := prior.InsertedLength()
		switch {
		case prior.Position < op.Position:
			out.Position += n
		case prior.Position == op.Position:
			if op.Kind != models.TextInsert || insertsFirst(prior, op) {
				out.Position += n
			}
		case op.Kind == models.TextDelete && prior.Position < op.Position+op.Length:
			out.Length += n
		}

	case models.TextDelete:
		start, end := prior.Position, prior.Position+prior.Length
		switch {
		case end <= op.Position:
			out.Position -= prior.Length
		case start < op.Position:
			// op starts inside the deleted range
			out.Position = start
			switch op.Kind {
			case models.TextInsert:
				out.Kind = models.TextRetain
				out.Content = ""
			case models.TextDelete:
				overlap := min(op.Position+op.Length, end) - op.Position
				out.Length -= overlap
			}
		case op.Kind == models.TextDelete && start < op.Position+op.Length:
			overlap := min(op.Position+op.Length, end) - start
			out.Length -= overlap
		}
	}

	if out.Position < 0 {
		out.Position = 0
	}
	if out.Length < 0 {
		out.Length = 0
	}

	return out
}

// TransformAll transforms op against every entry of log accepted after
// op.BaseVersion, in log order.
func TransformAll(op models.TextOperation, log []models.TextOperation) models.TextOperation {
	for _, prior := range log {
		if prior.Version <= op.BaseVersion {
			continue
		}
		op = Transform(op, prior)
	}
	return op
}

// Apply applies op to doc and returns the new content.
// Positions past the end of the document are clamped to it.
func Apply(doc string, op models.TextOperation) (string, error) {
	if op.Position < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativePosition, op.Position)
	}

	runes := []rune(doc)
	pos := min(op.Position, len(runes))

	switch op.Kind {
	case models.TextInsert:
		ins := []rune(op.Content)
		out := make([]rune, 0, len(runes)+len(ins))
		out = append(out, runes[:pos]...)
		out = append(out, ins...)
		out = append(out, runes[pos:]...)
		return string(out), nil
	case models.TextDelete:
		end := min(pos+max(op.Length, 0), len(runes))
		out := make([]rune, 0, len(runes)-(end-pos))
		out = append(out, runes[:pos]...)
		out = append(out, runes[end:]...)
		return string(out), nil
	case models.TextRetain:
		return doc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, op.Kind)
	}
}

// insertsFirst breaks the tie between two inserts at the same position.
// The lower author id goes first; an author's own earlier insert always
// precedes the later one.
func insertsFirst(prior, op models.TextOperation) bool {
	return prior.AuthorID <= op.AuthorID
}
