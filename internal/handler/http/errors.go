// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors of the auth middlewares. Their text is the 401 body.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	// ErrEmptyToken is a websocket upgrade with neither the header nor the
	// token query parameter.
	ErrEmptyToken = errors.New("empty token")
)
