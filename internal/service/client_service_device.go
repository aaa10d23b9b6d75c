package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

type clientDeviceService struct {
	metadata store.MetadataStore
	ids      *utils.UUIDGenerator
	cfg      config.ClientDevice

	mu     sync.Mutex
	cached *models.DeviceDescriptor
}

func NewClientDeviceService(metadata store.MetadataStore, cfg config.ClientDevice) DeviceService {
	return &clientDeviceService{metadata: metadata, ids: utils.NewUUIDGenerator(), cfg: cfg}
}

// Current implements [DeviceService]. The id is generated once and never
// changes; name and platform follow the configuration.
func (s *clientDeviceService) Current(ctx context.Context) (models.DeviceDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current(ctx)
}

// Touch implements [DeviceService].
func (s *clientDeviceService) Touch(ctx context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, err := s.current(ctx)
	if err != nil {
		return err
	}

	device.LastSeen = at.UTC()
	if err = s.metadata.SaveDevice(ctx, device); err != nil {
		return fmt.Errorf("save device: %w", err)
	}
	s.cached = &device
	return nil
}

func (s *clientDeviceService) current(ctx context.Context) (models.DeviceDescriptor, error) {
	if s.cached != nil {
		return *s.cached, nil
	}

	device, err := s.metadata.GetDevice(ctx)
	switch {
	case errors.Is(err, store.ErrMetadataNotFound):
		device = models.DeviceDescriptor{ID: s.ids.Generate()}
		logger.FromContext(ctx).Info().Str("func", "clientDeviceService.Current").
			Str("device_id", device.ID).Msg("registered new device")
	case err != nil:
		return models.DeviceDescriptor{}, fmt.Errorf("load device: %w", err)
	}

	device.Name = strings.TrimSpace(s.cfg.Name)
	if device.Name == "" {
		device.Name = "device-" + device.ID[:8]
	}
	device.Platform = s.cfg.Platform
	if device.Platform == "" {
		device.Platform = models.PlatformOther
	}
	device.ProtocolVersion = models.ProtocolVersion

	if err = s.metadata.SaveDevice(ctx, device); err != nil {
		return models.DeviceDescriptor{}, fmt.Errorf("save device: %w", err)
	}

	s.cached = &device
	return device, nil
}
