// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment through the `env` and
// `envPrefix` tags.
func parseEnv(cfg any) error {
	return parseEnvironment(cfg, nil)
}

// parseEnvironment reads cfg from environ, or from the process environment
// when environ is nil. The error names every malformed field, not only the
// first one.
func parseEnvironment(cfg any, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
