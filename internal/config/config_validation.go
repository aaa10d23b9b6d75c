// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// check is one validation rule. A failing rule wraps kind with reason.
type check struct {
	ok     bool
	kind   error
	reason string
}

func runChecks(checks ...check) error {
	var errs []error
	for _, c := range checks {
		if !c.ok {
			errs = append(errs, fmt.Errorf("%w: %s", c.kind, c.reason))
		}
	}
	return errors.Join(errs...)
}

// validate reports every problem of the merged server configuration at once.
func (cfg *StructuredConfig) validate() error {
	return runChecks(
		check{cfg.Storage.DB.DSN != "", ErrInvalidStorageConfigs, "database dsn is required"},
		check{cfg.App.TokenSignKey != "", ErrInvalidAppConfigs, "token sign key is required"},
		check{cfg.App.TokenDuration > 0, ErrInvalidAppConfigs, "token duration must be positive"},
		check{cfg.Server.HTTPAddress != "", ErrInvalidServerConfigs, "http address is required"},
		check{cfg.Collaboration.FlushSchedule != "", ErrInvalidCollaborationConfigs, "flush schedule is required"},
		check{cfg.Collaboration.ReapSchedule != "", ErrInvalidCollaborationConfigs, "reap schedule is required"},
	)
}

func (cfg *ClientConfig) validate() error {
	sqlite := cfg.Storage.SQLitePath
	return runChecks(
		// the queue must survive restarts
		check{sqlite != "" && !strings.Contains(sqlite, "memory"), ErrInvalidStorageConfigs, "sqlite path must be a file"},
		check{cfg.Storage.BoltPath != "", ErrInvalidStorageConfigs, "bolt path is required"},
		check{cfg.Adapter.HTTPAddress != "", ErrInvalidAdapterConfigs, "server address is required"},
		check{cfg.Adapter.RequestTimeout > 0, ErrInvalidAdapterConfigs, "request timeout must be positive"},
		check{cfg.Workers.SyncInterval > 0, ErrInvalidWorkerConfigs, "sync interval must be positive"},
		check{cfg.Workers.BatchSize > 0, ErrInvalidWorkerConfigs, "batch size must be positive"},
		check{cfg.Workers.MaxRetries > 0, ErrInvalidWorkerConfigs, "max retries must be positive"},
		check{cfg.App.HashKey != "", ErrInvalidAppConfigs, "hash key is required"},
	)
}
