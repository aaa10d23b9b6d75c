package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// entityRepository is the PostgreSQL-backed authority for synchronized
// entities. Each pushed operation is applied in its own transaction that
// locks the entity row, so concurrent pushes of the same entity serialize.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	logger.Debug().Msg("creating entity repository")
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

type storedEntity struct {
	payload  []byte
	version  int64
	deleted  bool
	deviceID string
}

// ApplyOperation applies op unless the entity moved on since op.BaseVersion
// on another device.
//
// An operation id that was applied before is acknowledged again with the
// version it produced. A delete of an unknown entity leaves a tombstone; an
// update of an unknown entity creates it.
func (e *entityRepository) ApplyOperation(ctx context.Context, op models.SyncOperation) (models.OperationResult, error) {
	log := logger.FromContext(ctx)
	result := models.OperationResult{OperationID: op.ID}

	tx, err := e.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("failed to begin transaction")
		return result, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// idempotency
	var appliedVersion int64
	err = tx.QueryRowContext(ctx, findAppliedOperation, op.ID).Scan(&appliedVersion)
	switch {
	case err == nil:
		log.Debug().Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("operation was already applied")
		result.Status = models.ResultSuccess
		result.Version = appliedVersion
		return result, nil
	case !errors.Is(err, sql.ErrNoRows):
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("failed to check applied operation")
		return result, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var current storedEntity
	exists := true
	err = tx.QueryRowContext(ctx, lockEntity, op.ProjectID, op.EntityType, op.EntityID).
		Scan(&current.payload, &current.version, &current.deleted, &current.deviceID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		exists = false
	case err != nil:
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("entity_id", op.EntityID).Msg("failed to lock entity")
		return result, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if exists && conflicts(op, current) {
		result.Status = models.ResultConflict
		result.Remote = &models.EntityVersion{
			EntityType: op.EntityType,
			EntityID:   op.EntityID,
			ProjectID:  op.ProjectID,
			Payload:    current.payload,
			Version:    current.version,
			DeviceID:   current.deviceID,
			Deleted:    current.deleted,
		}
		log.Info().
			Str("func", "entityRepository.ApplyOperation").
			Str("operation_id", op.ID).
			Int64("base_version", op.BaseVersion).
			Int64("current_version", current.version).
			Msg("conflicting operation")
		return result, nil
	}

	newVersion := current.version + 1
	deleted := op.Kind == models.OperationDelete
	payload := nullableJSON(op.Payload)
	if deleted && len(op.Payload) == 0 {
		payload = nullableJSON(current.payload)
	}

	if _, err = tx.ExecContext(ctx, upsertEntity,
		op.ProjectID, op.EntityType, op.EntityID, payload, newVersion, deleted, op.DeviceID,
	); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("failed to upsert entity")
		return result, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertAppliedOperation, op.ID, op.UserID, op.DeviceID, newVersion); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("failed to record applied operation")
		return result, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// the change row goes last: the feed lock is held only until commit
	if _, err = tx.ExecContext(ctx, lockChangeFeed); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("failed to lock change feed")
		return result, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, insertEntityChange,
		op.ProjectID, op.EntityType, op.EntityID, op.Kind, payload, newVersion, op.DeviceID, op.UserID,
	); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Str("operation_id", op.ID).Msg("failed to record change")
		return result, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("failed to commit transaction")
		return result, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	result.Status = models.ResultSuccess
	result.Version = newVersion
	return result, nil
}

// conflicts reports whether the stored entity diverged from what the device
// based op on. A device never conflicts with its own writes, and a create
// may revive a tombstone.
func conflicts(op models.SyncOperation, current storedEntity) bool {
	if current.deviceID == op.DeviceID {
		return false
	}
	if current.deleted && op.Kind == models.OperationCreate {
		return false
	}
	return op.BaseVersion != current.version
}

func (e *entityRepository) ChangesSince(ctx context.Context, userID int64, excludeDeviceID string, after int64, limit uint64) ([]models.RemoteChange, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChangesSinceQuery(userID, excludeDeviceID, after, limit)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ChangesSince").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.ChangesSince").
			Int64("user_id", userID).
			Int64("after", after).
			Msg("failed to execute change feed query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	changes := make([]models.RemoteChange, 0, 50)
	for rows.Next() {
		var (
			change  models.RemoteChange
			payload []byte
		)
		err = rows.Scan(
			&change.ChangeID,
			&change.ProjectID,
			&change.EntityType,
			&change.EntityID,
			&change.Kind,
			&payload,
			&change.Version,
			&change.DeviceID,
			&change.ChangedAt,
		)
		if err != nil {
			log.Err(err).Str("func", "entityRepository.ChangesSince").Msg("failed to scan change row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		change.Payload = payload
		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "entityRepository.ChangesSince").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, nil
}
