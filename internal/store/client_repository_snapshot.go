package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type snapshotRepository struct {
	*DB
}

func NewSnapshotRepository(db *DB) SnapshotRepository {
	return &snapshotRepository{DB: db}
}

func (s *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot models.EntitySnapshot) (models.EntitySnapshot, error) {
	res, err := s.ExecContext(ctx, insertSnapshot,
		snapshot.ProjectID,
		snapshot.EntityType,
		snapshot.EntityID,
		[]byte(snapshot.Payload),
		snapshot.Version,
		snapshot.Deleted,
		snapshot.CapturedAt.UTC(),
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "snapshotRepository.SaveSnapshot").
			Str("entity", models.EntityKey(snapshot.EntityType, snapshot.EntityID)).
			Msg("failed to insert snapshot")
		return models.EntitySnapshot{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if snapshot.ID, err = res.LastInsertId(); err != nil {
		return models.EntitySnapshot{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return snapshot, nil
}

// LatestSnapshot returns the most recently captured snapshot of an entity.
func (s *snapshotRepository) LatestSnapshot(ctx context.Context, entityType, entityID string) (models.EntitySnapshot, error) {
	var (
		snapshot models.EntitySnapshot
		payload  []byte
	)

	err := s.QueryRowContext(ctx, latestSnapshot, entityType, entityID).Scan(
		&snapshot.ID,
		&snapshot.ProjectID,
		&snapshot.EntityType,
		&snapshot.EntityID,
		&payload,
		&snapshot.Version,
		&snapshot.Deleted,
		&snapshot.CapturedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EntitySnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "snapshotRepository.LatestSnapshot").
			Str("entity", models.EntityKey(entityType, entityID)).
			Msg("failed to get snapshot")
		return models.EntitySnapshot{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if len(payload) > 0 {
		snapshot.Payload = payload
	}
	return snapshot, nil
}
