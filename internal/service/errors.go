package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrAccessDenied is returned when the user is not a member of the
	// project an operation targets. Such operations are never queued.
	ErrAccessDenied = errors.New("access denied")

	ErrHashMismatch = errors.New("batch hash mismatch")

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	// ErrNotLoggedIn is returned by client services that need the user id of
	// the stored session token.
	ErrNotLoggedIn = errors.New("not logged in")

	ErrServerUnreachable = errors.New("server unreachable")

	ErrConflictNotManual = errors.New("conflict does not require a decision")
	ErrInvalidChoice     = errors.New("choice must be local or remote")
)
