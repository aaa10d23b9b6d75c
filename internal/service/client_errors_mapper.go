// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/store"
)

// badRequestErrors maps 400 bodies the client can act on.
var badRequestErrors = map[string]error{
	app.MsgHashMismatch:          ErrHashMismatch,
	app.MsgVersionIsNotSpecified: ErrVersionIsNotSpecified,
	app.MsgInvalidDataProvided:   ErrInvalidDataProvided,
	app.MsgEmptyBatch:            ErrInvalidDataProvided,
	app.MsgBatchTooLarge:         ErrInvalidDataProvided,
	app.MsgUnsupportedProtocol:   ErrInvalidDataProvided,
	app.MsgInvalidCursor:         ErrInvalidDataProvided,
	app.MsgInvalidProjectName:    ErrInvalidDataProvided,
}

// mapAdapterError turns a transport failure into a service error. Errors it
// does not recognise are returned unchanged.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}
	if adapter.IsTransient(err) {
		return errors.Join(ErrServerUnreachable, err)
	}

	msg := adapter.ServerMessage(err)
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		mapped, ok := badRequestErrors[msg]
		if !ok {
			return err
		}
		if mapped == ErrInvalidDataProvided {
			return errors.Join(mapped, err)
		}
		return mapped
	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidLoginPassword {
			return ErrWrongPassword
		}
		return ErrTokenIsExpiredOrInvalid
	case errors.Is(err, adapter.ErrForbidden):
		return ErrAccessDenied
	case errors.Is(err, adapter.ErrConflict) && msg == app.MsgLoginAlreadyExists:
		return store.ErrLoginAlreadyExists
	}
	return err
}
