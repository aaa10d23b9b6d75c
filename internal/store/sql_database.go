package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/migrations"
)

// DB wraps a database handle together with the driver specific error
// classifier. The same type serves the server PostgreSQL database and the
// client SQLite queue.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the server schema.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

// MigrateClient applies the local queue schema.
func (db *DB) MigrateClient(ctx context.Context) error {
	return migrations.MigrateClient(ctx, db.DB)
}

// Retryable reports whether err is a transient database failure.
func (db *DB) Retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// Classify implements [ErrorClassificator] with the driver classifier of db.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
