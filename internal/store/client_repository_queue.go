package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// operationQueueRepository keeps the device's pending operations in SQLite.
// Operations survive restarts; the seq column preserves arrival order within
// a priority bucket.
type operationQueueRepository struct {
	*DB
	logger *logger.Logger
}

func NewOperationQueueRepository(db *DB, logger *logger.Logger) OperationQueueRepository {
	return &operationQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func (q *operationQueueRepository) Add(ctx context.Context, op models.SyncOperation) (models.SyncOperation, error) {
	log := logger.FromContext(ctx)

	if op.Status == "" {
		op.Status = models.OperationPending
	}

	deps, err := encodeDependencies(op.Dependencies)
	if err != nil {
		return models.SyncOperation{}, err
	}

	tx, err := q.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "operationQueueRepository.Add").Msg("failed to begin transaction")
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertOperation,
		op.ID,
		op.Kind,
		op.EntityType,
		op.EntityID,
		op.ProjectID,
		[]byte(op.Payload),
		op.BaseVersion,
		op.CreatedAt.UTC(),
		op.DeviceID,
		op.UserID,
		op.RetryCount,
		op.Priority,
		op.Priority.Rank(),
		deps,
		nullTime(op.NextRetryAt),
		op.Status,
		op.LastError,
	)
	if err != nil {
		log.Err(err).
			Str("func", "operationQueueRepository.Add").
			Str("operation_id", op.ID).
			Msg("failed to insert operation")
		if sqliteUniqueViolation(err) {
			return models.SyncOperation{}, fmt.Errorf("%w: %s", ErrOperationExists, op.ID)
		}
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if op.Seq, err = res.LastInsertId(); err != nil {
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "operationQueueRepository.Add").Msg("failed to commit transaction")
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return op, nil
}

func (q *operationQueueRepository) Get(ctx context.Context, id string) (models.SyncOperation, error) {
	op, err := scanOperation(q.QueryRowContext(ctx, getOperation, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncOperation{}, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "operationQueueRepository.Get").
			Str("operation_id", id).
			Msg("failed to get operation")
		return models.SyncOperation{}, err
	}
	return op, nil
}

// Put overwrites the mutable part of a queued operation: retry bookkeeping,
// status, base version and payload.
func (q *operationQueueRepository) Put(ctx context.Context, op models.SyncOperation) error {
	log := logger.FromContext(ctx)

	deps, err := encodeDependencies(op.Dependencies)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, updateOperation,
		[]byte(op.Payload),
		op.BaseVersion,
		op.RetryCount,
		op.Priority,
		op.Priority.Rank(),
		deps,
		nullTime(op.NextRetryAt),
		op.Status,
		op.LastError,
		op.ID,
	)
	if err != nil {
		log.Err(err).Str("func", "operationQueueRepository.Put").Str("operation_id", op.ID).Msg("failed to update operation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrOperationNotFound, op.ID)
	}

	return nil
}

// Delete removes an operation. Removing an unknown id is not an error.
func (q *operationQueueRepository) Delete(ctx context.Context, id string) error {
	if _, err := q.ExecContext(ctx, deleteOperation, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "operationQueueRepository.Delete").
			Str("operation_id", id).
			Msg("failed to delete operation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (q *operationQueueRepository) Clear(ctx context.Context) error {
	if _, err := q.ExecContext(ctx, clearOperations); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "operationQueueRepository.Clear").Msg("failed to clear queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (q *operationQueueRepository) ListPending(ctx context.Context) ([]models.SyncOperation, error) {
	return q.list(ctx, "operationQueueRepository.ListPending", listOperationsByStatus, models.OperationPending)
}

func (q *operationQueueRepository) ListFailed(ctx context.Context) ([]models.SyncOperation, error) {
	return q.list(ctx, "operationQueueRepository.ListFailed", listOperationsByStatus, models.OperationFailed)
}

func (q *operationQueueRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]models.SyncOperation, error) {
	return q.list(ctx, "operationQueueRepository.ListCreatedSince", listOperationsCreatedSince, since.UTC())
}

func (q *operationQueueRepository) CountByStatus(ctx context.Context, status models.OperationStatus) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, countOperationsByStatus, status).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "operationQueueRepository.CountByStatus").
			Str("status", string(status)).
			Msg("failed to count operations")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (q *operationQueueRepository) list(ctx context.Context, fn, query string, args ...any) ([]models.SyncOperation, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query operations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ops := make([]models.SyncOperation, 0, 16)
	for rows.Next() {
		op, scanErr := scanOperation(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan operation row")
			return nil, scanErr
		}
		ops = append(ops, op)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ops, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (models.SyncOperation, error) {
	var (
		op        models.SyncOperation
		payload   []byte
		deps      string
		nextRetry sql.NullTime
	)

	err := row.Scan(
		&op.Seq,
		&op.ID,
		&op.Kind,
		&op.EntityType,
		&op.EntityID,
		&op.ProjectID,
		&payload,
		&op.BaseVersion,
		&op.CreatedAt,
		&op.DeviceID,
		&op.UserID,
		&op.RetryCount,
		&op.Priority,
		&deps,
		&nextRetry,
		&op.Status,
		&op.LastError,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncOperation{}, err
	}
	if err != nil {
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if len(payload) > 0 {
		op.Payload = payload
	}
	if nextRetry.Valid {
		t := nextRetry.Time
		op.NextRetryAt = &t
	}
	if err = json.Unmarshal([]byte(deps), &op.Dependencies); err != nil {
		return models.SyncOperation{}, fmt.Errorf("%w: dependencies: %w", ErrDecodingValue, err)
	}
	if len(op.Dependencies) == 0 {
		op.Dependencies = nil
	}

	return op, nil
}

func encodeDependencies(deps []string) (string, error) {
	if len(deps) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(deps)
	if err != nil {
		return "", fmt.Errorf("%w: dependencies: %w", ErrEncodingValue, err)
	}
	return string(raw), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
