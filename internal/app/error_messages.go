// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// story-sync server handlers, middleware and the client error mapper.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// The client maps them back to service errors, so the wording is part of the
// wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID
	// extracted from the JWT claim but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAccessDenied is returned when the authenticated user is not a member
	// of the project an operation or document belongs to.
	MsgAccessDenied = "access denied"

	// MsgVersionIsNotSpecified is returned when the server was started
	// without a build version.
	MsgVersionIsNotSpecified = "version is not specified"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgHashMismatch is returned when the integrity hash of a pushed batch
	// does not match the operations it carries.
	MsgHashMismatch = "hash mismatch"

	// MsgUnsupportedProtocol is returned when a device speaks a different
	// sync protocol version than the server.
	MsgUnsupportedProtocol = "unsupported protocol version"

	// MsgEmptyBatch is returned for a push request without operations.
	MsgEmptyBatch = "no operations provided"

	// MsgBatchTooLarge is returned for a push request exceeding the server
	// batch limit.
	MsgBatchTooLarge = "too many operations in one batch"

	// MsgInvalidCursor is returned when the change feed cursor is not a
	// non-negative change id.
	MsgInvalidCursor = "invalid change feed cursor"

	// MsgInvalidProjectName is returned when a project is created without a
	// name.
	MsgInvalidProjectName = "invalid project name"

	// MsgDocumentNotFound is returned when a collaboration lookup targets a
	// document without a live session.
	MsgDocumentNotFound = "document not found"

	// MsgVersionConflict is returned when a text operation was computed
	// against a version the session cannot transform from. The client should
	// rejoin the document.
	MsgVersionConflict = "version conflict, please rejoin"
)
