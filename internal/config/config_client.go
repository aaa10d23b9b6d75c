package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	SQLitePath string
	BoltPath   string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval         time.Duration
	ConnectivityInterval time.Duration
	BatchSize            int
	MaxRetries           int
	RetryBaseDelay       time.Duration
}

// ClientDevice is the descriptor template of the local device.
type ClientDevice struct {
	Name     string
	Platform models.Platform
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Log     Log
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Device  ClientDevice
}

// GetClientConfig builds and validates a client-specific config view.
//
// Sources are environment variables, the JSON file at jsonPath (or the one
// named by CONFIG) and defaults. Command-line flags are handled by the
// client's command tree and applied by the caller.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONPath(jsonPath).
		withJSON().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Log: cfg.Log,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			SQLitePath: cfg.Storage.Local.SQLitePath,
			BoltPath:   cfg.Storage.Local.BoltPath,
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
			BatchSize:            cfg.Workers.BatchSize,
			MaxRetries:           cfg.Workers.MaxRetries,
			RetryBaseDelay:       cfg.Workers.RetryBaseDelay,
		},
		Device: ClientDevice{
			Name:     cfg.Device.Name,
			Platform: models.ParsePlatform(cfg.Device.Platform),
		},
	}
}
