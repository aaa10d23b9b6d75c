// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the device side runtime and its command tree.
//
// One-shot commands (enqueue, sync, status, conflicts, resolve) open the
// local stores, do their work and exit. The run command keeps the sync job
// and the connectivity monitor going until interrupted.
package client
