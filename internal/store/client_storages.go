package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
//
// The queue, conflict log and snapshots live in SQLite; the entity cache and
// the device metadata live in bbolt.
type ClientStorages struct {
	OperationQueue     OperationQueueRepository
	ConflictRepository ConflictRepository
	SnapshotRepository SnapshotRepository
	LocalEntities      LocalEntityStore
	Metadata           MetadataStore

	sqlite *DB
	bolt   *BoltDB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to cfg.SQLitePath, creating the database
//     file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Opens the bbolt file at cfg.BoltPath.
//
// Returns an error if either store cannot be opened or migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateClient(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	bolt, err := NewConnectBolt(cfg.BoltPath, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt connection error: %w", err)
	}

	return &ClientStorages{
		OperationQueue:     NewOperationQueueRepository(db, logger),
		ConflictRepository: NewConflictRepository(db),
		SnapshotRepository: NewSnapshotRepository(db),
		LocalEntities:      NewLocalEntityStore(bolt),
		Metadata:           NewMetadataStore(bolt),
		sqlite:             db,
		bolt:               bolt,
	}, nil
}

func (s *ClientStorages) Close() error {
	var errs []error
	if s.sqlite != nil {
		errs = append(errs, s.sqlite.Close())
	}
	if s.bolt != nil {
		errs = append(errs, s.bolt.Close())
	}
	return errors.Join(errs...)
}
