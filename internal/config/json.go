package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and string
// durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		HashKey       string   `json:"hash_key"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Log struct {
		Level      string `json:"level"`
		FilePath   string `json:"file_path"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
		MaxAgeDays int    `json:"max_age_days"`
	} `json:"log,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			SQLitePath string `json:"sqlite_path"`
			BoltPath   string `json:"bolt_path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		ConnectivityInterval Duration `json:"connectivity_interval"`
		BatchSize            int      `json:"batch_size"`
		MaxRetries           int      `json:"max_retries"`
		RetryBaseDelay       Duration `json:"retry_base_delay"`
	} `json:"workers,omitempty"`

	Collaboration struct {
		InactiveGrace  Duration `json:"inactive_grace"`
		FlushSchedule  string   `json:"flush_schedule"`
		ReapSchedule   string   `json:"reap_schedule"`
		OutboundBuffer int      `json:"outbound_buffer"`
	} `json:"collaboration,omitempty"`

	Device struct {
		Name     string `json:"name"`
		Platform string `json:"platform"`
	} `json:"device,omitempty"`
}

// parseJSON reads the config file shared by server and client. Unknown keys
// are rejected so a misspelt interval does not silently fall back to its
// default.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	decoder := json.NewDecoder(jsonFile)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			HashKey:       jsonCfg.App.HashKey,
			Version:       jsonCfg.App.Version,
		},
		Log: Log{
			Level:      jsonCfg.Log.Level,
			FilePath:   jsonCfg.Log.FilePath,
			MaxSizeMB:  jsonCfg.Log.MaxSizeMB,
			MaxBackups: jsonCfg.Log.MaxBackups,
			MaxAgeDays: jsonCfg.Log.MaxAgeDays,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				SQLitePath: jsonCfg.Storage.Local.SQLitePath,
				BoltPath:   jsonCfg.Storage.Local.BoltPath,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			GRPCAddress:     jsonCfg.Server.GRPCAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:         time.Duration(jsonCfg.Workers.SyncInterval),
			ConnectivityInterval: time.Duration(jsonCfg.Workers.ConnectivityInterval),
			BatchSize:            jsonCfg.Workers.BatchSize,
			MaxRetries:           jsonCfg.Workers.MaxRetries,
			RetryBaseDelay:       time.Duration(jsonCfg.Workers.RetryBaseDelay),
		},
		Collaboration: Collaboration{
			InactiveGrace:  time.Duration(jsonCfg.Collaboration.InactiveGrace),
			FlushSchedule:  jsonCfg.Collaboration.FlushSchedule,
			ReapSchedule:   jsonCfg.Collaboration.ReapSchedule,
			OutboundBuffer: jsonCfg.Collaboration.OutboundBuffer,
		},
		Device: Device{
			Name:     jsonCfg.Device.Name,
			Platform: jsonCfg.Device.Platform,
		},
	}

	return cfg, nil
}

// Duration reads "30s" style strings as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return json.Unmarshal(b, (*time.Duration)(d))
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
