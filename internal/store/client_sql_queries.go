// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	operationColumns = `
			seq,
			id,
			kind,
			entity_type,
			entity_id,
			project_id,
			payload,
			base_version,
			created_at,
			device_id,
			user_id,
			retry_count,
			priority,
			dependencies,
			next_retry_at,
			status,
			last_error`

	insertOperation = `
		INSERT INTO sync_operations (
			id,
			kind,
			entity_type,
			entity_id,
			project_id,
			payload,
			base_version,
			created_at,
			device_id,
			user_id,
			retry_count,
			priority,
			priority_rank,
			dependencies,
			next_retry_at,
			status,
			last_error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getOperation = `SELECT ` + operationColumns + `
		FROM sync_operations
		WHERE id = ?;`

	updateOperation = `
		UPDATE sync_operations SET
			payload = ?,
			base_version = ?,
			retry_count = ?,
			priority = ?,
			priority_rank = ?,
			dependencies = ?,
			next_retry_at = ?,
			status = ?,
			last_error = ?
		WHERE id = ?;`

	deleteOperation = `DELETE FROM sync_operations WHERE id = ?;`

	clearOperations = `DELETE FROM sync_operations;`

	listOperationsByStatus = `SELECT ` + operationColumns + `
		FROM sync_operations
		WHERE status = ?
		ORDER BY priority_rank ASC, seq ASC;`

	listOperationsCreatedSince = `SELECT ` + operationColumns + `
		FROM sync_operations
		WHERE created_at >= ?
		ORDER BY created_at ASC, seq ASC;`

	countOperationsByStatus = `SELECT COUNT(*) FROM sync_operations WHERE status = ?;`

	conflictColumns = `
			c.id,
			c.operation_id,
			c.local_version,
			c.remote_version,
			c.strategy,
			c.winner,
			c.merged_payload,
			c.reason,
			c.requires_review,
			c.created_at`

	insertConflict = `
		INSERT INTO conflict_records (
			id,
			operation_id,
			entity_type,
			entity_id,
			local_version,
			remote_version,
			strategy,
			winner,
			merged_payload,
			reason,
			requires_review,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getConflict = `SELECT ` + conflictColumns + `
		FROM conflict_records c
		WHERE c.id = ?;`

	listConflicts = `SELECT ` + conflictColumns + `
		FROM conflict_records c
		ORDER BY c.created_at ASC, c.rowid ASC;`

	listOpenConflicts = `SELECT ` + conflictColumns + `
		FROM conflict_records c
		LEFT JOIN conflict_decisions d ON d.conflict_id = c.id
		WHERE c.strategy = 'manual' AND d.conflict_id IS NULL
		ORDER BY c.created_at ASC, c.rowid ASC;`

	insertConflictDecision = `
		INSERT INTO conflict_decisions (conflict_id, choice, operation_id, decided_at)
		VALUES (?, ?, ?, ?);`

	insertSnapshot = `
		INSERT INTO entity_snapshots (project_id, entity_type, entity_id, payload, version, deleted, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);`

	latestSnapshot = `
		SELECT id, project_id, entity_type, entity_id, payload, version, deleted, captured_at
		FROM entity_snapshots
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY id DESC
		LIMIT 1;`
)
