package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type deviceRepository struct {
	*DB
}

func NewDeviceRepository(db *DB) DeviceRepository {
	return &deviceRepository{DB: db}
}

// UpsertDevice registers the device on first push and refreshes its
// descriptor afterwards.
func (d *deviceRepository) UpsertDevice(ctx context.Context, device models.DeviceDescriptor) error {
	_, err := d.ExecContext(ctx, upsertDevice,
		device.ID,
		device.UserID,
		device.Name,
		device.Platform,
		device.ProtocolVersion,
		device.LastSeen,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "deviceRepository.UpsertDevice").
			Str("device_id", device.ID).
			Msg("failed to upsert device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
