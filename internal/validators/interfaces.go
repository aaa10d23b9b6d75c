// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the models that cross a trust boundary: queued
// and pushed sync operations on one side, collaboration messages and text
// operations on the other. Services call a Validator before touching
// storage, so repositories can assume well-formed input.
package validators

import "context"

// Validator checks obj. Field names narrow the check to the listed parts of
// obj; none means everything.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
