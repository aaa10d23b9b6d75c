package collab

import "errors"

var (
	// ErrAccessDenied is returned when the user is not a member of the
	// project the document belongs to.
	ErrAccessDenied = errors.New("access denied")

	// ErrProjectMismatch is returned when a document is joined through a
	// project it does not belong to.
	ErrProjectMismatch = errors.New("document belongs to another project")

	ErrSessionNotFound = errors.New("collaboration session not found")
	ErrNotParticipant  = errors.New("user is not an active participant")

	// ErrVersionConflict is returned for an operation computed against a
	// version the session cannot transform from. The client rejoins and
	// continues from the returned snapshot.
	ErrVersionConflict = errors.New("version conflict")

	ErrInvalidOperation = errors.New("invalid text operation")
	ErrInvalidRequest   = errors.New("invalid collaboration request")
)
