package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"go.etcd.io/bbolt"
)

var (
	bucketEntities = []byte("entities")
	bucketMetadata = []byte("metadata")
)

const (
	keyDevice            = "device"
	keyLastSyncTimestamp = "last_sync_timestamp"
	keyChangeCursor      = "change_cursor"
	keyToken             = "token"
	keyProjects          = "projects"
)

// BoltDB is the embedded key/value store behind the local entity cache and
// the device metadata.
type BoltDB struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewConnectBolt opens (or creates) the bbolt file at path and makes sure
// every bucket exists.
func NewConnectBolt(path string, log *logger.Logger) (*BoltDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bolt dir: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewConnectBolt").Str("path", path).Msg("failed to open bolt db")
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketEntities, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewConnectBolt").Str("path", path).Msg("opened bolt db")
	return &BoltDB{db: db, logger: log}, nil
}

func (b *BoltDB) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *BoltDB) put(bucket []byte, key string, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%s bucket not found", bucket)
		}
		return bkt.Put([]byte(key), value)
	})
}

// get returns a copy of the stored value, nil when the key is absent.
func (b *BoltDB) get(bucket []byte, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%s bucket not found", bucket)
		}
		if v := bkt.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Local entity cache
// ─────────────────────────────────────────────────────────────────────────────

type localEntityStore struct {
	*BoltDB
}

func NewLocalEntityStore(db *BoltDB) LocalEntityStore {
	return &localEntityStore{BoltDB: db}
}

func (s *localEntityStore) PutEntity(ctx context.Context, entity models.EntityVersion) error {
	raw, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	key := models.EntityKey(entity.EntityType, entity.EntityID)
	if err = s.put(bucketEntities, key, raw); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localEntityStore.PutEntity").Str("entity", key).Msg("failed to put entity")
		return fmt.Errorf("failed to put entity %s: %w", key, err)
	}
	return nil
}

func (s *localEntityStore) GetEntity(ctx context.Context, entityType, entityID string) (models.EntityVersion, error) {
	key := models.EntityKey(entityType, entityID)

	raw, err := s.get(bucketEntities, key)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localEntityStore.GetEntity").Str("entity", key).Msg("failed to get entity")
		return models.EntityVersion{}, fmt.Errorf("failed to get entity %s: %w", key, err)
	}
	if raw == nil {
		return models.EntityVersion{}, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
	}

	var entity models.EntityVersion
	if err = json.Unmarshal(raw, &entity); err != nil {
		return models.EntityVersion{}, fmt.Errorf("%w: %w", ErrDecodingValue, err)
	}
	return entity, nil
}

func (s *localEntityStore) DeleteEntity(ctx context.Context, entityType, entityID string) error {
	key := models.EntityKey(entityType, entityID)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketEntities)
		if bkt == nil {
			return fmt.Errorf("%s bucket not found", bucketEntities)
		}
		return bkt.Delete([]byte(key))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localEntityStore.DeleteEntity").Str("entity", key).Msg("failed to delete entity")
		return fmt.Errorf("failed to delete entity %s: %w", key, err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Metadata
// ─────────────────────────────────────────────────────────────────────────────

type metadataStore struct {
	*BoltDB
}

func NewMetadataStore(db *BoltDB) MetadataStore {
	return &metadataStore{BoltDB: db}
}

func (s *metadataStore) GetDevice(ctx context.Context) (models.DeviceDescriptor, error) {
	var device models.DeviceDescriptor
	if err := s.getJSON(keyDevice, &device); err != nil {
		return models.DeviceDescriptor{}, err
	}
	return device, nil
}

func (s *metadataStore) SaveDevice(ctx context.Context, device models.DeviceDescriptor) error {
	return s.putJSON(ctx, keyDevice, device)
}

// GetLastSyncTimestamp returns the zero time when no round ever completed.
func (s *metadataStore) GetLastSyncTimestamp(ctx context.Context) (time.Time, error) {
	raw, err := s.get(bucketMetadata, keyLastSyncTimestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}
	if len(raw) != 8 {
		return time.Time{}, nil
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(raw))).UTC(), nil
}

func (s *metadataStore) SetLastSyncTimestamp(ctx context.Context, ts time.Time) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(ts.UnixNano()))

	if err := s.put(bucketMetadata, keyLastSyncTimestamp, raw); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "metadataStore.SetLastSyncTimestamp").Msg("failed to save last sync timestamp")
		return fmt.Errorf("failed to save last sync timestamp: %w", err)
	}
	return nil
}

// GetChangeCursor returns the last change id applied from the server feed,
// zero before the first pull.
func (s *metadataStore) GetChangeCursor(ctx context.Context) (int64, error) {
	raw, err := s.get(bucketMetadata, keyChangeCursor)
	if err != nil {
		return 0, fmt.Errorf("failed to get change cursor: %w", err)
	}
	if len(raw) != 8 {
		return 0, nil
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func (s *metadataStore) SetChangeCursor(ctx context.Context, changeID int64) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(changeID))

	if err := s.put(bucketMetadata, keyChangeCursor, raw); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "metadataStore.SetChangeCursor").Msg("failed to save change cursor")
		return fmt.Errorf("failed to save change cursor: %w", err)
	}
	return nil
}

func (s *metadataStore) GetToken(ctx context.Context) (string, error) {
	raw, err := s.get(bucketMetadata, keyToken)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	if raw == nil {
		return "", fmt.Errorf("%w: %s", ErrMetadataNotFound, keyToken)
	}
	return string(raw), nil
}

func (s *metadataStore) SaveToken(ctx context.Context, token string) error {
	if err := s.put(bucketMetadata, keyToken, []byte(token)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "metadataStore.SaveToken").Msg("failed to save token")
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *metadataStore) GetProjects(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.getJSON(keyProjects, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *metadataStore) SaveProjects(ctx context.Context, projectIDs []int64) error {
	if projectIDs == nil {
		projectIDs = []int64{}
	}
	return s.putJSON(ctx, keyProjects, projectIDs)
}

func (s *metadataStore) getJSON(key string, dst any) error {
	raw, err := s.get(bucketMetadata, key)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: %s", ErrMetadataNotFound, key)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecodingValue, key, err)
	}
	return nil
}

func (s *metadataStore) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodingValue, key, err)
	}
	if err = s.put(bucketMetadata, key, raw); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "metadataStore.putJSON").Str("key", key).Msg("failed to save metadata")
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
