package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrOperationNotFound is returned when a queued operation id is unknown
	// to the local queue.
	ErrOperationNotFound = errors.New("sync operation was not found")

	// ErrOperationExists is returned when an operation id is enqueued twice.
	ErrOperationExists = errors.New("sync operation already exists")

	// ErrConflictNotFound is returned for an unknown conflict record id.
	ErrConflictNotFound = errors.New("conflict record was not found")

	// ErrConflictAlreadyDecided is returned when a manual conflict already
	// has a recorded decision.
	ErrConflictAlreadyDecided = errors.New("conflict was already decided")

	// ErrSnapshotNotFound is returned when no snapshot of an entity exists.
	ErrSnapshotNotFound = errors.New("entity snapshot was not found")

	// ErrEntityNotFound is returned by the local entity cache.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrDocumentNotFound is returned when a co-edited document has never
	// been persisted.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrProjectMismatch is returned when a document is addressed through a
	// project it does not belong to.
	ErrProjectMismatch = errors.New("document belongs to another project")

	// ErrMetadataNotFound is returned when a metadata key was never written.
	ErrMetadataNotFound = errors.New("metadata was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingValue is returned when a value cannot be serialized for
	// storage.
	ErrEncodingValue = errors.New("failed to encode value")

	// ErrDecodingValue is returned when a stored value cannot be decoded.
	ErrDecodingValue = errors.New("failed to decode value")
)
