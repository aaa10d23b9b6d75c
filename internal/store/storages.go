package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

// Storages groups the server repositories that share one PostgreSQL
// connection.
type Storages struct {
	UserRepository     UserRepository
	ProjectRepository  ProjectRepository
	DeviceRepository   DeviceRepository
	EntityRepository   EntityRepository
	DocumentRepository DocumentRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// every repository to the connection.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		ProjectRepository:  NewProjectRepository(db, logger),
		DeviceRepository:   NewDeviceRepository(db),
		EntityRepository:   NewEntityRepository(db, logger),
		DocumentRepository: NewDocumentRepository(db),
		db:                 db,
	}
}

// DB exposes the shared connection for retry classification.
func (s *Storages) DB() *DB {
	return s.db
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
