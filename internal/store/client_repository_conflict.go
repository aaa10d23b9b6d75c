package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/mattn/go-sqlite3"
)

// conflictRepository is the append-only conflict audit log. Records are
// never updated; decisions on manual conflicts live in their own table.
type conflictRepository struct {
	*DB
}

func NewConflictRepository(db *DB) ConflictRepository {
	return &conflictRepository{DB: db}
}

func (c *conflictRepository) SaveConflict(ctx context.Context, record models.ConflictRecord) error {
	log := logger.FromContext(ctx)

	local, err := json.Marshal(record.Local)
	if err != nil {
		return fmt.Errorf("%w: local version: %w", ErrEncodingValue, err)
	}
	remote, err := json.Marshal(record.Remote)
	if err != nil {
		return fmt.Errorf("%w: remote version: %w", ErrEncodingValue, err)
	}

	_, err = c.ExecContext(ctx, insertConflict,
		record.ID,
		record.OperationID,
		record.Local.EntityType,
		record.Local.EntityID,
		string(local),
		string(remote),
		record.Resolution.Strategy,
		record.Resolution.Winner,
		[]byte(record.Resolution.MergedPayload),
		record.Resolution.Reason,
		record.Resolution.RequiresReview,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.SaveConflict").
			Str("conflict_id", record.ID).
			Str("operation_id", record.OperationID).
			Msg("failed to insert conflict record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *conflictRepository) GetConflict(ctx context.Context, id string) (models.ConflictRecord, error) {
	record, err := scanConflict(c.QueryRowContext(ctx, getConflict, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, fmt.Errorf("%w: %s", ErrConflictNotFound, id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "conflictRepository.GetConflict").Str("conflict_id", id).Msg("failed to get conflict")
		return models.ConflictRecord{}, err
	}
	return record, nil
}

func (c *conflictRepository) ListConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	return c.list(ctx, "conflictRepository.ListConflicts", listConflicts)
}

func (c *conflictRepository) ListOpenConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	return c.list(ctx, "conflictRepository.ListOpenConflicts", listOpenConflicts)
}

// SaveDecision records the user's choice for a manual conflict. A conflict
// can be decided once.
func (c *conflictRepository) SaveDecision(ctx context.Context, decision models.ConflictDecision) error {
	_, err := c.ExecContext(ctx, insertConflictDecision,
		decision.ConflictID,
		decision.Choice,
		decision.OperationID,
		decision.DecidedAt.UTC(),
	)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "conflictRepository.SaveDecision").
		Str("conflict_id", decision.ConflictID).
		Msg("failed to insert conflict decision")

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return fmt.Errorf("%w: %s", ErrConflictNotFound, decision.ConflictID)
	}
	if sqliteUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrConflictAlreadyDecided, decision.ConflictID)
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (c *conflictRepository) list(ctx context.Context, fn, query string) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := c.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ConflictRecord, 0, 8)
	for rows.Next() {
		record, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan conflict row")
			return nil, scanErr
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func scanConflict(row rowScanner) (models.ConflictRecord, error) {
	var (
		record        models.ConflictRecord
		local, remote string
		merged        []byte
	)

	err := row.Scan(
		&record.ID,
		&record.OperationID,
		&local,
		&remote,
		&record.Resolution.Strategy,
		&record.Resolution.Winner,
		&merged,
		&record.Resolution.Reason,
		&record.Resolution.RequiresReview,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, err
	}
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(local), &record.Local); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: local version: %w", ErrDecodingValue, err)
	}
	if err = json.Unmarshal([]byte(remote), &record.Remote); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: remote version: %w", ErrDecodingValue, err)
	}
	if len(merged) > 0 {
		record.Resolution.MergedPayload = merged
	}

	return record, nil
}
