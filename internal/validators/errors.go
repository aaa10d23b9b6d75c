package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidOperationID   = errors.New("invalid operation id")
	ErrInvalidKind          = errors.New("invalid operation kind")
	ErrInvalidEntityType    = errors.New("entity type is required")
	ErrInvalidEntityID      = errors.New("entity id is required")
	ErrInvalidProjectID     = errors.New("invalid project id")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidPayload       = errors.New("payload must be a JSON object")
	ErrInvalidBaseVersion   = errors.New("invalid base version")
	ErrInvalidDependencies  = errors.New("invalid dependencies")
	ErrInvalidDeviceID      = errors.New("invalid device id")
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidCursor        = errors.New("change feed cursor must not be negative")
	ErrUnsupportedProtocol  = errors.New("unsupported protocol version")
	ErrEmptyOperations      = errors.New("operations list cannot be empty")
	ErrTooManyOperations    = errors.New("too many operations in one batch")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrInvalidLength        = errors.New("delete length must be positive")
	ErrEmptyContent         = errors.New("insert content is required")
	ErrInvalidDocumentID    = errors.New("document id is required")
	ErrInvalidDocumentKind  = errors.New("invalid document kind")
	ErrInvalidSelection     = errors.New("invalid selection")
	ErrInvalidConflictID    = errors.New("conflict id is required")
	ErrInvalidConflictSide  = errors.New("choice must be local or remote")
	ErrInvalidProjectName   = errors.New("project name is required")
	ErrInvalidLoginPassword = errors.New("login and password are required")
)
