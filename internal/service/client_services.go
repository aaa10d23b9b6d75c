package service

import (
	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
)

// ClientServices groups the device side services. Engine is the entry point
// of the application layer; the other services are exposed for the CLI.
type ClientServices struct {
	AuthService   ClientAuthService
	DeviceService DeviceService
	QueueService  QueueService
	SyncService   ClientSyncService
	Engine        SyncEngine
	SyncJob       ClientSyncJob
	Connectivity  ConnectivityMonitor
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	bus := NewEventBus(0, logger)
	devices := NewClientDeviceService(localStore.Metadata, cfg.Device)
	queue := NewClientQueueService(localStore, devices)
	syncSvc := NewClientSyncService(localStore, serverAdapter, devices, queue, bus, cfg.Workers)
	engine := NewSyncEngine(localStore, queue, syncSvc, devices, bus, logger)

	return &ClientServices{
		AuthService:   NewClientAuthService(localStore, serverAdapter),
		DeviceService: devices,
		QueueService:  queue,
		SyncService:   syncSvc,
		Engine:        engine,
		SyncJob:       NewClientSyncJob(engine, cfg.Workers.SyncInterval),
		Connectivity:  NewConnectivityMonitor(serverAdapter, engine, cfg.Workers.ConnectivityInterval),
	}
}
